package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/model"
)

// EngagementSink durably records engagement events.  The repository writes
// straight to the store; the queue publisher relays to a consumer that does.
type EngagementSink interface {
	SavePageView(ctx context.Context, v *model.PageView) error
	SaveButtonClick(ctx context.Context, c *model.ButtonClick) error
}

// Tracker records engagement events without ever blocking or failing the
// caller.  Each call starts one background write bounded by timeout; a
// failed write is logged and dropped, never retried.  Every call produces
// exactly one event, so reloading a page yields two page views.
type Tracker struct {
	sink    EngagementSink
	log     *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewTracker(sink EngagementSink, log *logger.Logger, timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Tracker{sink: sink, log: log, timeout: timeout}
}

// RecordPageView records one view of the artist's public page.
func (t *Tracker) RecordPageView(ctx context.Context, artistID, referrer, userAgent string) {
	if strings.TrimSpace(artistID) == "" {
		t.log.Error("page view dropped: missing artist id")
		return
	}
	v := &model.PageView{
		ArtistID:  artistID,
		Referrer:  optional(referrer),
		UserAgent: optional(userAgent),
		ViewedAt:  time.Now().UTC(),
	}
	t.dispatch(ctx, artistID, "page_view", func(ctx context.Context) error {
		return t.sink.SavePageView(ctx, v)
	})
}

// RecordButtonClick records one press of a tracked button.
func (t *Tracker) RecordButtonClick(ctx context.Context, artistID, buttonType string) {
	if strings.TrimSpace(artistID) == "" {
		t.log.Error("button click dropped: missing artist id", "button_type", buttonType)
		return
	}
	c := &model.ButtonClick{
		ArtistID:   artistID,
		ButtonType: buttonType,
		ClickedAt:  time.Now().UTC(),
	}
	t.dispatch(ctx, artistID, "button_click", func(ctx context.Context) error {
		return t.sink.SaveButtonClick(ctx, c)
	})
}

// dispatch runs write on its own goroutine.  The context is detached from
// the request so the write outlives the response, but keeps its values.
func (t *Tracker) dispatch(parent context.Context, artistID, kind string, write func(context.Context) error) {
	ctx := context.WithoutCancel(parent)
	t.wg.Add(1)
	log := t.log.WithFields(map[string]any{"artist_id": artistID, "kind": kind})
	go func() {
		defer t.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error("engagement write panicked", "panic", r)
			}
		}()
		ctx, cancel := context.WithTimeout(ctx, t.timeout)
		defer cancel()
		if err := write(ctx); err != nil {
			log.Warn("engagement write failed", "error", err)
		}
	}()
}

// Wait blocks until every in-flight write has finished.
func (t *Tracker) Wait() { t.wg.Wait() }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
