package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/model"
)

// Publisher sends engagement events to a durable queue.  It satisfies the
// same contract as the direct store writer, so the tracker does not know
// which one it was given.
//
// One connection is shared by all publishes and re-dialed after it drops.
// Each publish opens its own channel since channels are not safe for
// concurrent use.
type Publisher struct {
	url   string
	queue string
	log   *logger.Logger

	mu   sync.Mutex
	conn *amqp.Connection
}

func NewPublisher(url, queue string, log *logger.Logger) *Publisher {
	return &Publisher{url: url, queue: queue, log: log}
}

// SavePageView publishes v as a page_view event.
func (p *Publisher) SavePageView(ctx context.Context, v *model.PageView) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.ViewedAt.IsZero() {
		v.ViewedAt = time.Now().UTC()
	}
	return p.publish(ctx, PageViewEvent(v))
}

// SaveButtonClick publishes c as a button_click event.
func (p *Publisher) SaveButtonClick(ctx context.Context, c *model.ButtonClick) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.ClickedAt.IsZero() {
		c.ClickedAt = time.Now().UTC()
	}
	return p.publish(ctx, ButtonClickEvent(c))
}

// maxDial bounds a dial when the publish context carries no deadline.
const maxDial = 5 * time.Second

// connection returns the shared connection, dialing a new one when it is
// missing or closed.  The dial runs without the lock and never outlasts
// ctx, so a dead broker cannot stall callers past their own deadline.
func (p *Publisher) connection(ctx context.Context) (*amqp.Connection, error) {
	p.mu.Lock()
	if p.conn != nil && !p.conn.IsClosed() {
		conn := p.conn
		p.mu.Unlock()
		return conn, nil
	}
	p.mu.Unlock()

	timeout := maxDial
	if dl, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(dl))
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("dial broker: %w", context.DeadlineExceeded)
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil && !p.conn.IsClosed() {
		// another publish won the race
		_ = conn.Close()
		return p.conn, nil
	}
	p.conn = conn
	return conn, nil
}

func (p *Publisher) publish(ctx context.Context, ev EngagementEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := p.connection(ctx)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         ev.Kind,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	p.log.Debug("engagement event published", "kind", ev.Kind, "artist_id", ev.ArtistID, "id", ev.ID)
	return nil
}

// Close releases the shared connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Close()
}
