// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/fieldfeed/internal/database"
	"github.com/tomtom215/fieldfeed/internal/eventprocessor"
	"github.com/tomtom215/fieldfeed/internal/feed"
	"github.com/tomtom215/fieldfeed/internal/logging"
	"github.com/tomtom215/fieldfeed/internal/models"
	"github.com/tomtom215/fieldfeed/internal/validation"
)

// ContentStore is the content-side surface the handlers need. Implemented
// by the DuckDB store.
type ContentStore interface {
	InsertContentItem(ctx context.Context, item models.ContentItem) (models.ContentItem, error)
	GetContentItem(ctx context.Context, id uuid.UUID) (models.ContentItem, error)
	SoftDeleteContentItem(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

// PreferenceWriter is the write side of the viewer preference store.
type PreferenceWriter interface {
	SetProfile(ctx context.Context, viewerID string, profile models.ViewerProfile) error
	SetExclusions(ctx context.Context, viewerID string, set models.ExclusionSet) error
}

// EngagementPublisher publishes engagement events onto the bus.
type EngagementPublisher interface {
	PublishEngagement(event eventprocessor.EngagementEvent) error
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	feed      *feed.Service
	content   ContentStore
	prefs     PreferenceWriter
	publisher EngagementPublisher
}

// NewHandler creates the API handler set.
func NewHandler(feedSvc *feed.Service, content ContentStore, prefs PreferenceWriter, publisher EngagementPublisher) *Handler {
	return &Handler{
		feed:      feedSvc,
		content:   content,
		prefs:     prefs,
		publisher: publisher,
	}
}

// Feed serves GET /api/v1/feed.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	page, err := h.feed.GetFeed(r.Context(), parseFeedRequest(r, h.feed.DefaultLimit()))
	if err != nil {
		switch {
		case feed.IsInvalidCursor(err):
			rw.Error(http.StatusBadRequest, ErrCodeInvalidCursor, "pagination cursor is malformed or does not match the requested sort; restart from the first page")
		case errors.Is(err, feed.ErrUpstreamUnavailable):
			logging.Err(err).Msg("feed read failed upstream")
			rw.ServiceUnavailable("content store is temporarily unavailable")
		default:
			logging.Err(err).Msg("feed read failed")
			rw.InternalError("failed to build feed")
		}
		return
	}

	rw.Success(page)
}

// IngestContent serves POST /api/v1/content.
func (h *Handler) IngestContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ingestContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("request body is not valid JSON")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	}

	item, err := h.content.InsertContentItem(r.Context(), models.ContentItem{
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Body:     req.Body,
		Tags:     req.Tags,
		Region:   req.Region,
	})
	if err != nil {
		logging.Err(err).Msg("content ingestion failed")
		rw.InternalError("failed to store content item")
		return
	}

	rw.Created(item)
}

// GetContent serves GET /api/v1/content/{id}.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := parseIDParam(rw, r)
	if !ok {
		return
	}

	item, err := h.content.GetContentItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			rw.NotFound("content item not found")
			return
		}
		logging.Err(err).Msg("content lookup failed")
		rw.InternalError("failed to load content item")
		return
	}

	rw.Success(item)
}

// DeleteContent serves DELETE /api/v1/content/{id}. Deletion is soft: the
// item disappears from feeds but cursors that reference it stay valid.
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := parseIDParam(rw, r)
	if !ok {
		return
	}

	if err := h.content.SoftDeleteContentItem(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			rw.NotFound("content item not found")
			return
		}
		logging.Err(err).Msg("content deletion failed")
		rw.InternalError("failed to delete content item")
		return
	}

	rw.NoContent()
}

// IngestEngagement serves POST /api/v1/content/{id}/engagement. The event
// is published onto the bus and applied asynchronously, so the response is
// 202 rather than 200.
func (h *Handler) IngestEngagement(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := parseIDParam(rw, r)
	if !ok {
		return
	}

	var req ingestEngagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("request body is not valid JSON")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	}

	event := eventprocessor.NewEngagementEvent(id, r.Header.Get(viewerIDHeader), req.Kind)
	if req.Count != 0 {
		event.Count = req.Count
	}

	if err := h.publisher.PublishEngagement(event); err != nil {
		logging.Err(err).Msg("engagement publish failed")
		rw.ServiceUnavailable("engagement pipeline is temporarily unavailable")
		return
	}

	rw.Accepted(map[string]string{"event_id": event.EventID})
}

// PutProfile serves PUT /api/v1/viewers/{id}/profile.
func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	viewerID := chi.URLParam(r, "id")

	var req putProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("request body is not valid JSON")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	}

	profile := models.ViewerProfile{
		Tags:      normalizeTags(req.Tags),
		Region:    feed.NormalizeTag(req.Region),
		Following: req.Following,
	}
	if err := h.prefs.SetProfile(r.Context(), viewerID, profile); err != nil {
		logging.Err(err).Msg("profile update failed")
		rw.InternalError("failed to store viewer profile")
		return
	}

	rw.Success(profile)
}

// PutExclusions serves PUT /api/v1/viewers/{id}/exclusions.
func (h *Handler) PutExclusions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	viewerID := chi.URLParam(r, "id")

	var req putExclusionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("request body is not valid JSON")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	}

	set := models.ExclusionSet{
		HiddenItemIDs:  req.HiddenItemIDs,
		MutedAuthorIDs: req.MutedAuthorIDs,
	}
	if err := h.prefs.SetExclusions(r.Context(), viewerID, set); err != nil {
		logging.Err(err).Msg("exclusion update failed")
		rw.InternalError("failed to store exclusion set")
		return
	}

	rw.Success(set)
}

// HealthLive serves GET /api/v1/health/live: process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady serves GET /api/v1/health/ready: dependencies answer.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if err := h.content.Ping(r.Context()); err != nil {
		logging.Err(err).Msg("readiness check failed")
		rw.ServiceUnavailable("content store is not ready")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}

func parseIDParam(rw *ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		rw.BadRequest("id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := feed.NormalizeTag(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}
