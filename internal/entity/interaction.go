package entity

import (
	"context"
	"time"
)

// Source identifica o canal de origem de uma interação.
type Source string

const (
	SourceWhatsApp Source = "whatsapp"
	SourceEmail    Source = "email"
)

// Interaction é um registro imutável de uma mensagem recebida e da
// resposta enviada. Response fica nulo quando a resposta ainda não foi
// gerada (e-mails aguardando processamento).
type Interaction struct {
	ID        int64     `json:"id"`
	ContactID string    `json:"contact_id"`
	Source    Source    `json:"source"`
	Message   string    `json:"message"`
	Response  *string   `json:"response,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type InteractionRepositoryInterface interface {
	Log(ctx context.Context, contactID string, source Source, message string, response *string) error
}
