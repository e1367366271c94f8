package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// Eventos do motor para o controlador.
	EventsExchange = "ex.funnel.events"
	EventKey       = "k.funnel.event"

	// Comandos do controlador para o motor.
	CommandExchange = "ex.funnel"
	CommandQueue    = "q.funnel.commands"
	CommandKey      = "k.funnel.command"

	// Comandos malformados caem na DLQ em vez de travar a fila.
	DLXName = "ex.funnel.dlx"
	DLQName = "q.funnel.commands.dlq"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(user, pass, host, port string) (*RabbitMQ, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, pass, host, port)

	conn, err := amqp.Dial(dsn)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir canal: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		return nil, err
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

func setupTopology(ch *amqp.Channel) error {
	err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil)
	if err != nil {
		return err
	}

	_, err = ch.QueueDeclare(DLQName, true, false, false, false, nil)
	if err != nil {
		return err
	}

	err = ch.QueueBind(DLQName, CommandKey, DLXName, false, nil)
	if err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": CommandKey,
	}

	err = ch.ExchangeDeclare(CommandExchange, "direct", true, false, false, false, nil)
	if err != nil {
		return err
	}

	_, err = ch.QueueDeclare(CommandQueue, true, false, false, false, args)
	if err != nil {
		return err
	}

	err = ch.QueueBind(CommandQueue, CommandKey, CommandExchange, false, nil)
	if err != nil {
		return err
	}

	// O exchange de eventos é fanout: cada controlador pendura a sua
	// própria fila e recebe todos os eventos.
	return ch.ExchangeDeclare(EventsExchange, "fanout", true, false, false, false, nil)
}
