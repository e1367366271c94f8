package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ghost-funnel/internal/entity"
)

// Command é uma ação enviada pelo controlador ao motor do funil.
type Command struct {
	Action    string       `json:"action"`
	ContactID string       `json:"contact_id,omitempty"`
	Stage     entity.Stage `json:"stage,omitempty"`
}

const (
	ActionMoveLead         = "moveLead"
	ActionLoadLeads        = "loadLeads"
	ActionLoadAppointments = "loadAppointments"
)

// Event é uma notificação assíncrona do motor para o controlador.
type Event struct {
	Type      string       `json:"type"`
	ContactID string       `json:"contact_id,omitempty"`
	Stage     entity.Stage `json:"stage,omitempty"`
	Data      any          `json:"data,omitempty"`
	Code      string       `json:"code,omitempty"`
	Message   string       `json:"message,omitempty"`
}

const (
	EventReady            = "ready"
	EventLeadMoved        = "leadMoved"
	EventLeadsData        = "leadsData"
	EventAppointmentsData = "appointmentsData"
	EventError            = "error"
)

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// ReplyGenerator é o colaborador de IA que redige respostas.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, identifier, message string, source entity.Source) (string, error)
}

type ChatSender interface {
	SendMessage(ctx context.Context, to, text string) error
}

type EmailSender interface {
	Send(to, subject, body string) error
}

// StageMover é o único escritor de etapas do funil (FunnelService).
type StageMover interface {
	MoveToStage(ctx context.Context, contactID string, stage entity.Stage) bool
}

// OperatorNotifier avisa o operador sobre uma reunião recém-agendada.
type OperatorNotifier interface {
	NotifyNewAppointment(ctx context.Context, name, phone string, dateTime time.Time)
}
