package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/ghost-funnel/internal/usecase"
)

// CommandHandler despacha um comando do controlador. O handler trata as
// próprias falhas (vira evento error), por isso não retorna erro.
type CommandHandler interface {
	Handle(ctx context.Context, cmd usecase.Command)
}

// Worker consome a fila de comandos do controlador.
type Worker struct {
	Channel *amqp.Channel
	Handler CommandHandler
}

func NewWorker(ch *amqp.Channel, handler CommandHandler) *Worker {
	return &Worker{
		Channel: ch,
		Handler: handler,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	log.Printf(" [*] Aguardando comandos na fila '%s'", queueName)

	for d := range msgs {
		var cmd usecase.Command
		if err := json.Unmarshal(d.Body, &cmd); err != nil {
			log.Printf("❌ Comando com JSON inválido: %s", err)
			// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
			d.Nack(false, false)
			continue
		}

		log.Printf("📥 Comando recebido: %s", cmd.Action)
		w.Handler.Handle(context.Background(), cmd)
		d.Ack(false)
	}
}
