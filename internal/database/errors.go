// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package database

import "errors"

// ErrNotFound indicates the referenced content item does not exist or is
// soft-deleted.
var ErrNotFound = errors.New("content item not found")
