// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package eventprocessor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/fieldfeed/internal/models"
	"github.com/tomtom215/fieldfeed/internal/validation"
)

// Engagement event kinds.
const (
	KindLike    = "like"
	KindComment = "comment"
	KindShare   = "share"
	KindView    = "view"
)

// EngagementEvent is one interaction with a content item. Count is usually
// 1; batch producers may aggregate. A negative count retracts (un-like).
type EngagementEvent struct {
	EventID    string    `json:"event_id" validate:"required,uuid"`
	ItemID     string    `json:"item_id" validate:"required,uuid"`
	ViewerID   string    `json:"viewer_id,omitempty"`
	Kind       string    `json:"kind" validate:"required,oneof=like comment share view"`
	Count      int64     `json:"count" validate:"required"`
	OccurredAt time.Time `json:"occurred_at" validate:"required"`
}

// NewEngagementEvent builds a single-interaction event with a fresh event
// id, occurring now.
func NewEngagementEvent(itemID uuid.UUID, viewerID, kind string) EngagementEvent {
	return EngagementEvent{
		EventID:    uuid.NewString(),
		ItemID:     itemID.String(),
		ViewerID:   viewerID,
		Kind:       kind,
		Count:      1,
		OccurredAt: time.Now().UTC(),
	}
}

// Validate checks the event's structure. Invalid events are unprocessable
// and must not be retried.
func (e EngagementEvent) Validate() error {
	return validation.ValidateStruct(&e)
}

// Delta converts the event into the counter delta the content store
// applies.
func (e EngagementEvent) Delta() (models.EngagementDelta, error) {
	itemID, err := uuid.Parse(e.ItemID)
	if err != nil {
		return models.EngagementDelta{}, fmt.Errorf("malformed item id %q: %w", e.ItemID, err)
	}

	delta := models.EngagementDelta{ItemID: itemID}
	switch e.Kind {
	case KindLike:
		delta.Likes = e.Count
	case KindComment:
		delta.Comments = e.Count
	case KindShare:
		delta.Shares = e.Count
	case KindView:
		delta.Views = e.Count
	default:
		return models.EngagementDelta{}, fmt.Errorf("unknown engagement kind %q", e.Kind)
	}
	return delta, nil
}
