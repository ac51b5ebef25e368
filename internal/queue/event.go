// Package queue carries engagement events over RabbitMQ: the publisher side
// stands in for the direct store write, the consumer persists what arrives.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iliyamo/artistlink/internal/model"
)

// Event kinds.
const (
	KindPageView    = "page_view"
	KindButtonClick = "button_click"
)

// EngagementEvent is the wire form of a page view or a button click.  The
// id is assigned by the publisher so a redelivered message keeps its
// identity when it reaches the store.
type EngagementEvent struct {
	Kind       string  `json:"kind"`
	ID         string  `json:"id"`
	ArtistID   string  `json:"artist_id"`
	Referrer   *string `json:"referrer,omitempty"`
	UserAgent  *string `json:"user_agent,omitempty"`
	ButtonType string  `json:"button_type,omitempty"`
	OccurredAt string  `json:"occurred_at"` // RFC 3339, UTC
}

func PageViewEvent(v *model.PageView) EngagementEvent {
	return EngagementEvent{
		Kind:       KindPageView,
		ID:         v.ID,
		ArtistID:   v.ArtistID,
		Referrer:   v.Referrer,
		UserAgent:  v.UserAgent,
		OccurredAt: v.ViewedAt.UTC().Format(time.RFC3339Nano),
	}
}

func ButtonClickEvent(c *model.ButtonClick) EngagementEvent {
	return EngagementEvent{
		Kind:       KindButtonClick,
		ID:         c.ID,
		ArtistID:   c.ArtistID,
		ButtonType: c.ButtonType,
		OccurredAt: c.ClickedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Decode parses a message body and checks the fields every kind needs.
func Decode(body []byte) (EngagementEvent, error) {
	var ev EngagementEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("unmarshal: %w", err)
	}
	if ev.ArtistID == "" {
		return ev, fmt.Errorf("event %q: missing artist_id", ev.ID)
	}
	switch ev.Kind {
	case KindPageView, KindButtonClick:
	default:
		return ev, fmt.Errorf("event %q: unknown kind %q", ev.ID, ev.Kind)
	}
	return ev, nil
}

func (ev EngagementEvent) occurredAt() time.Time {
	t, err := time.Parse(time.RFC3339Nano, ev.OccurredAt)
	if err != nil {
		return time.Time{} // the repository stamps the current time
	}
	return t.UTC()
}

// PageView converts a page_view event back into the model.
func (ev EngagementEvent) PageView() *model.PageView {
	return &model.PageView{
		ID:        ev.ID,
		ArtistID:  ev.ArtistID,
		Referrer:  ev.Referrer,
		UserAgent: ev.UserAgent,
		ViewedAt:  ev.occurredAt(),
	}
}

// ButtonClick converts a button_click event back into the model.
func (ev EngagementEvent) ButtonClick() *model.ButtonClick {
	return &model.ButtonClick{
		ID:         ev.ID,
		ArtistID:   ev.ArtistID,
		ButtonType: ev.ButtonType,
		ClickedAt:  ev.occurredAt(),
	}
}
