package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/avstrong/hotel/internal/booking"
)

const DefaultQueue = "booking.confirmed"

type AMQPConf struct {
	URL   string
	Queue string
}

// AMQP publishes to a durable queue on the default exchange. Each publication
// opens its own connection.
type AMQP struct {
	conf AMQPConf
}

func NewAMQP(conf AMQPConf) *AMQP {
	if conf.Queue == "" {
		conf.Queue = DefaultQueue
	}

	return &AMQP{conf: conf}
}

func (p *AMQP) PublishBookingConfirmed(ctx context.Context, b booking.Booking) error {
	msg, err := p.message(b)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.conf.URL)
	if err != nil {
		return fmt.Errorf("dial amqp: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.conf.Queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("declare queue %s: %w", p.conf.Queue, err)
	}

	if err := ch.PublishWithContext(ctx, "", p.conf.Queue, false, false, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", p.conf.Queue, err)
	}

	return nil
}

func (p *AMQP) message(b booking.Booking) (amqp.Publishing, error) {
	body, err := json.Marshal(NewBookingConfirmedEvent(b))
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal booking %d event: %w", b.ID, err)
	}

	//nolint:exhaustruct
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    fmt.Sprintf("booking-%d", b.ID),
		Type:         booking.EventBookingCommitted,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}
