package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/model"
)

// Sink persists decoded events.  The repository satisfies it.
type Sink interface {
	SavePageView(ctx context.Context, v *model.PageView) error
	SaveButtonClick(ctx context.Context, c *model.ButtonClick) error
}

// StartEngagementConsumer consumes queue until ctx is cancelled, writing
// every event to sink.  It redials with exponential backoff (capped at 30s)
// whenever the broker is unreachable or the delivery channel closes.  A
// message that fails to decode or store is rejected without requeue, so a
// failed engagement write is dropped rather than retried.
func StartEngagementConsumer(ctx context.Context, url, queue string, sink Sink, log *logger.Logger, writeTimeout time.Duration) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("engagement consumer: dial failed", "error", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, queue, sink, log, writeTimeout)
		_ = conn.Close()
		if err == nil {
			return
		}
		log.Warn("engagement consumer: loop ended, reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return
		}
	}
}

// consumeLoop returns nil only when ctx is done.
func consumeLoop(ctx context.Context, conn *amqp.Connection, queue string, sink Sink, log *logger.Logger, writeTimeout time.Duration) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("engagement consumer: set QoS failed", "error", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	log.Info("engagement consumer started", "queue", queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
			err := handleMessage(wctx, d.Body, sink)
			cancel()
			if err != nil {
				log.Warn("engagement consumer: message dropped", "message_id", d.MessageId, "error", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleMessage(ctx context.Context, body []byte, sink Sink) error {
	ev, err := Decode(body)
	if err != nil {
		return err
	}
	switch ev.Kind {
	case KindPageView:
		return sink.SavePageView(ctx, ev.PageView())
	default:
		return sink.SaveButtonClick(ctx, ev.ButtonClick())
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
