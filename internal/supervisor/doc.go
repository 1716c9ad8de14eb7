// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Package supervisor builds the Suture supervision tree for the Fieldfeed
// server.
//
// The tree has three layers under the root:
//
//   - data: content store upkeep (Badger value-log GC)
//   - messaging: the engagement event processor
//   - api: the HTTP server
//
// Layering isolates failures: a crashing event processor restarts without
// touching the HTTP listener, and vice versa. Supervisor lifecycle events
// are logged through sutureslog into the zerolog pipeline.
//
// Long-running components are wrapped as suture.Service implementations in
// the services subpackage and added to the appropriate layer:
//
//	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
//	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
//	errCh := tree.ServeBackground(ctx)
package supervisor
