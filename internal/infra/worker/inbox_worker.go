package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/ghost-funnel/internal/entity"
	"github.com/xavierca1/ghost-funnel/internal/infra/http/middleware"
	"github.com/xavierca1/ghost-funnel/internal/infra/mail"
	"github.com/xavierca1/ghost-funnel/internal/usecase"
)

type InboxClient interface {
	FetchUnread() ([]mail.InboundEmail, error)
	MarkRead(uid int) error
}

type InteractionProcessor interface {
	Execute(ctx context.Context, input usecase.ProcessInteractionInput) string
}

// InboxWorker consulta a caixa de entrada a cada minuto e encaminha cada
// e-mail não lido ao processador de interações.
type InboxWorker struct {
	Inbox        InboxClient
	Processor    InteractionProcessor
	TickInterval time.Duration
}

func NewInboxWorker(inbox InboxClient, processor InteractionProcessor) *InboxWorker {
	return &InboxWorker{
		Inbox:        inbox,
		Processor:    processor,
		TickInterval: time.Minute,
	}
}

func (w *InboxWorker) Start(ctx context.Context) {
	log.Printf("🕒 Worker de e-mails iniciado (a cada %s)", w.TickInterval)

	ticker := time.NewTicker(w.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Worker de e-mails encerrado")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *InboxWorker) run(ctx context.Context) {
	emails, err := w.Inbox.FetchUnread()
	if err != nil {
		log.Printf("❌ Erro ao verificar e-mails: %v", err)
		middleware.RecordIntegrationError("imap")
		return
	}

	for _, email := range emails {
		log.Printf("[Email] Recebido de %s: %s", email.From, email.Subject)
		middleware.RecordInteraction(string(entity.SourceEmail))

		w.Processor.Execute(ctx, usecase.ProcessInteractionInput{
			Identifier: email.From,
			Name:       email.Name,
			Message:    email.Snippet,
			Source:     entity.SourceEmail,
		})

		// Marca como lido mesmo quando o processamento degradou: o log
		// de interações já registrou a mensagem e reprocessar geraria
		// respostas duplicadas.
		if err := w.Inbox.MarkRead(email.UID); err != nil {
			log.Printf("⚠️ Erro ao marcar e-mail %d como lido: %v", email.UID, err)
		}
	}
}
