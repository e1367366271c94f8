package entity

import (
	"context"
	"time"
)

// UnknownName é o nome atribuído a contatos criados a partir de uma
// mensagem de um remetente desconhecido.
const UnknownName = "Desconhecido"

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LeadRow é uma linha do snapshot de leads enviado ao controlador.
type LeadRow struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Stage     Stage      `json:"stage,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type ContactRepositoryInterface interface {
	// Upsert cria o contato ou preenche nome/e-mail ainda vazios.
	// Nunca sobrescreve um nome ou e-mail já conhecido.
	Upsert(ctx context.Context, contact *Contact) error
	FindByPhone(ctx context.Context, phone string) (*Contact, error)
	FindByEmail(ctx context.Context, email string) (*Contact, error)
	LoadLeads(ctx context.Context) ([]LeadRow, error)
}
