// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/fieldfeed/internal/feed"
)

// viewerIDHeader identifies the viewer on every endpoint. Absence means an
// anonymous request; authentication happens upstream of this service.
const viewerIDHeader = "X-Viewer-ID"

// parseFeedRequest maps query parameters onto a feed request. Limit and
// offset parsing is forgiving: unparsable values fall back to the
// defaults rather than erroring, matching the clamping behavior of the
// engine.
func parseFeedRequest(r *http.Request, defaultSize int) feed.Request {
	q := r.URL.Query()

	req := feed.Request{
		ViewerID: r.Header.Get(viewerIDHeader),
		Sort:     q.Get("sort"),
		Cursor:   q.Get("cursor"),
		Category: q.Get("category"),
		Crop:     q.Get("crop"),
		Region:   q.Get("region"),
	}

	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			req.Limit = limit
		}
	}

	if raw := q.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			req.Offset = &offset
		}
	}

	// page/page_size select offset mode one-based; page_size doubles as the
	// limit. An explicit offset wins over page.
	if raw := q.Get("page_size"); raw != "" && req.Limit == 0 {
		if size, err := strconv.Atoi(raw); err == nil {
			req.Limit = size
		}
	}
	if raw := q.Get("page"); raw != "" && req.Offset == nil {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			size := req.Limit
			if size <= 0 {
				// The engine's configured default page size; the engine
				// still clamps the final limit itself.
				size = defaultSize
			}
			offset := (page - 1) * size
			req.Offset = &offset
		}
	}

	return req
}

// ingestContentRequest is the POST /content body.
type ingestContentRequest struct {
	AuthorID string   `json:"author_id" validate:"required,max=128"`
	Title    string   `json:"title" validate:"required,max=300"`
	Body     string   `json:"body" validate:"max=20000"`
	Tags     []string `json:"tags" validate:"max=16,dive,max=64"`
	Region   string   `json:"region" validate:"max=64"`
}

// ingestEngagementRequest is the POST /content/{id}/engagement body.
type ingestEngagementRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=like comment share view"`
	Count int64  `json:"count" validate:"omitempty,ne=0"`
}

// putProfileRequest is the PUT /viewers/{id}/profile body.
type putProfileRequest struct {
	Tags      []string `json:"tags" validate:"max=32,dive,max=64"`
	Region    string   `json:"region" validate:"max=64"`
	Following []string `json:"following" validate:"max=1000,dive,max=128"`
}

// putExclusionsRequest is the PUT /viewers/{id}/exclusions body.
type putExclusionsRequest struct {
	HiddenItemIDs  []string `json:"hidden_item_ids" validate:"max=1000,dive,uuid"`
	MutedAuthorIDs []string `json:"muted_author_ids" validate:"max=1000,dive,max=128"`
}
