package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/ghost-funnel/internal/usecase"
)

// EventProducer publica os eventos do motor (ready, leadMoved, snapshots,
// error) no exchange de eventos.
type EventProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewEventProducer(conn *amqp.Connection, ch *amqp.Channel) *EventProducer {
	return &EventProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *EventProducer) Publish(ctx context.Context, event usecase.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao converter evento: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		EventsExchange,
		EventKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
