// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Package services adapts Fieldfeed's long-running components to the
// suture.Service interface so they can live in the supervision tree.
//
// Each wrapper depends on a small local interface rather than the concrete
// component, keeping this package free of store and transport imports and
// making the wrappers testable with mocks.
package services
