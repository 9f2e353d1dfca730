// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

type EventName string

const (
	PropertyView     EventName = "property_view"
	PropertySaved    EventName = "property_saved"
	PropertyUnsaved  EventName = "property_unsaved"
	InquirySent      EventName = "inquiry_sent"
	PropertyReported EventName = "property_reported"
	SellerContacted  EventName = "seller_contacted"
	SearchPerformed  EventName = "search_performed"
	FilterApplied    EventName = "filter_applied"
	PropertyShared   EventName = "property_shared"
	Login            EventName = "login"
	Logout           EventName = "logout"
	Register         EventName = "register"
)

// Tracker records events into a Queue on behalf of the current user.
// Failures are logged and never returned.
type Tracker struct {
	queue  *Queue
	userID func() string
	now    func() time.Time
}

// NewTracker returns a tracker. userID may be nil for anonymous tracking.
func NewTracker(q *Queue, userID func() string) *Tracker {
	if q == nil {
		q = NewQueue(nil)
	}
	if userID == nil {
		userID = func() string { return "" }
	}
	return &Tracker{queue: q, userID: userID, now: time.Now}
}

// Track records name with data. Keys with empty values are dropped.
func (t *Tracker) Track(ctx context.Context, name EventName, data map[string]any) {
	if t == nil {
		return
	}
	ev := Event{
		ID:        uuid.NewString(),
		Name:      name,
		Data:      compact(data),
		UserID:    t.userID(),
		Timestamp: t.now().UTC(),
	}
	tflog.Debug(ctx, "analytics event", map[string]interface{}{"event": string(name), "user_id": ev.UserID})
	if err := t.queue.Append(ctx, ev); err != nil {
		tflog.Warn(ctx, "analytics event not recorded", map[string]interface{}{
			"event": string(name),
			"error": err.Error(),
		})
	}
}

func compact(data map[string]any) map[string]any {
	if len(data) == 0 {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		switch x := v.(type) {
		case nil:
			continue
		case string:
			if x == "" {
				continue
			}
		case map[string]any:
			if len(x) == 0 {
				continue
			}
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Queue returns the recorded events, oldest first.
func (t *Tracker) Queue(ctx context.Context) []Event {
	events, err := t.queue.Events(ctx)
	if err != nil {
		tflog.Warn(ctx, "analytics queue not readable", map[string]interface{}{"error": err.Error()})
		return []Event{}
	}
	return events
}

// Clear empties the queue.
func (t *Tracker) Clear(ctx context.Context) {
	if err := t.queue.Clear(ctx); err != nil {
		tflog.Warn(ctx, "analytics queue not cleared", map[string]interface{}{"error": err.Error()})
	}
}

func (t *Tracker) TrackPropertyView(ctx context.Context, propertyID, title string) {
	t.Track(ctx, PropertyView, map[string]any{"propertyId": propertyID, "propertyTitle": title})
}

func (t *Tracker) TrackInquirySent(ctx context.Context, propertyID, sellerID string) {
	t.Track(ctx, InquirySent, map[string]any{"propertyId": propertyID, "sellerId": sellerID})
}

func (t *Tracker) TrackPropertySaved(ctx context.Context, propertyID string) {
	t.Track(ctx, PropertySaved, map[string]any{"propertyId": propertyID})
}

func (t *Tracker) TrackPropertyUnsaved(ctx context.Context, propertyID string) {
	t.Track(ctx, PropertyUnsaved, map[string]any{"propertyId": propertyID})
}

func (t *Tracker) TrackPropertyReported(ctx context.Context, propertyID, reason string) {
	t.Track(ctx, PropertyReported, map[string]any{"propertyId": propertyID, "reason": reason})
}

func (t *Tracker) TrackSearch(ctx context.Context, query string, filters map[string]any) {
	t.Track(ctx, SearchPerformed, map[string]any{"searchQuery": query, "filters": compact(filters)})
}

func (t *Tracker) TrackSellerContacted(ctx context.Context, sellerID, propertyID string) {
	t.Track(ctx, SellerContacted, map[string]any{"sellerId": sellerID, "propertyId": propertyID})
}

func (t *Tracker) TrackPropertyShared(ctx context.Context, propertyID, platform string) {
	t.Track(ctx, PropertyShared, map[string]any{"propertyId": propertyID, "platform": platform})
}

func (t *Tracker) TrackLogin(ctx context.Context, method string) {
	t.Track(ctx, Login, map[string]any{"method": method})
}
