package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/xavierca1/ghost-funnel/internal/entity"
)

// ControlUseCase atende os comandos do controlador (moveLead, loadLeads,
// loadAppointments). Enquanto o bootstrap não termina, todo comando é
// respondido com um evento de erro; comandos não são enfileirados.
type ControlUseCase struct {
	Contacts     entity.ContactRepositoryInterface
	Appointments entity.AppointmentRepositoryInterface
	Stages       StageMover
	Events       EventPublisher
	Now          func() time.Time

	ready atomic.Bool
}

func NewControlUseCase(
	contacts entity.ContactRepositoryInterface,
	appointments entity.AppointmentRepositoryInterface,
	stages StageMover,
	events EventPublisher,
) *ControlUseCase {
	return &ControlUseCase{
		Contacts:     contacts,
		Appointments: appointments,
		Stages:       stages,
		Events:       events,
		Now:          time.Now,
	}
}

// SetReady marca o fim do bootstrap e publica o evento ready, uma única
// vez. Não existe caminho de volta para o estado inicial.
func (c *ControlUseCase) SetReady(ctx context.Context) {
	if c.ready.Swap(true) {
		return
	}
	if err := c.Events.Publish(ctx, Event{Type: EventReady}); err != nil {
		log.Printf("⚠️ Erro ao publicar evento ready: %v", err)
	}
}

func (c *ControlUseCase) Ready() bool {
	return c.ready.Load()
}

// Handle despacha um comando. Toda falha vira um evento error para o
// controlador; nada é propagado ao chamador.
func (c *ControlUseCase) Handle(ctx context.Context, cmd Command) {
	if !c.ready.Load() {
		c.publishError(ctx, NewDomainError("not_ready", "Motor do funil ainda não inicializado"))
		return
	}

	switch cmd.Action {
	case ActionMoveLead:
		c.moveLead(ctx, cmd)
	case ActionLoadLeads:
		c.loadLeads(ctx)
	case ActionLoadAppointments:
		c.loadAppointments(ctx)
	default:
		c.publishError(ctx, NewDomainError("unknown_action", fmt.Sprintf("Ação desconhecida: %s", cmd.Action)))
	}
}

func (c *ControlUseCase) moveLead(ctx context.Context, cmd Command) {
	if cmd.ContactID == "" || !cmd.Stage.Valid() {
		c.publishError(ctx, NewDomainError("invalid_command",
			fmt.Sprintf("Comando moveLead inválido (contato %q, etapa %q)", cmd.ContactID, cmd.Stage)))
		return
	}

	if !c.Stages.MoveToStage(ctx, cmd.ContactID, cmd.Stage) {
		c.publishError(ctx, NewTechnicalError("move_failed",
			fmt.Sprintf("Falha ao mover contato %s para %s", cmd.ContactID, cmd.Stage)))
		return
	}

	// Movimento manual para reuniao_agendada também marca a reunião,
	// como no fluxo automático.
	if cmd.Stage == entity.StageReuniaoAgendada {
		dateTime := c.Now().Add(appointmentLeadTime)
		if err := c.Appointments.Create(ctx, cmd.ContactID, dateTime); err != nil {
			log.Printf("⚠️ Erro ao criar reunião para %s: %v", cmd.ContactID, err)
			c.publishError(ctx, NewTechnicalError("appointment_failed",
				fmt.Sprintf("Falha ao criar reunião para %s", cmd.ContactID)))
		}
	}
}

func (c *ControlUseCase) loadLeads(ctx context.Context) {
	rows, err := c.Contacts.LoadLeads(ctx)
	if err != nil {
		log.Printf("❌ Erro ao carregar leads: %v", err)
		c.publishError(ctx, NewTechnicalError("load_failed", "Falha ao carregar leads"))
		return
	}
	c.publish(ctx, Event{Type: EventLeadsData, Data: rows})
}

func (c *ControlUseCase) loadAppointments(ctx context.Context) {
	rows, err := c.Appointments.LoadAll(ctx)
	if err != nil {
		log.Printf("❌ Erro ao carregar reuniões: %v", err)
		c.publishError(ctx, NewTechnicalError("load_failed", "Falha ao carregar reuniões"))
		return
	}
	c.publish(ctx, Event{Type: EventAppointmentsData, Data: rows})
}

func (c *ControlUseCase) publish(ctx context.Context, event Event) {
	if err := c.Events.Publish(ctx, event); err != nil {
		log.Printf("⚠️ Erro ao publicar evento %s: %v", event.Type, err)
	}
}

func (c *ControlUseCase) publishError(ctx context.Context, err error) {
	log.Printf("⚠️ Comando rejeitado: %s", err)

	event := Event{Type: EventError, Message: err.Error()}
	var de *DomainError
	var te *TechnicalError
	switch {
	case errors.As(err, &de):
		event.Code = de.Code
	case errors.As(err, &te):
		event.Code = te.Code
	}
	c.publish(ctx, event)
}
