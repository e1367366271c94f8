package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/ghost-funnel/internal/entity"
)

const (
	// FallbackReply substitui qualquer resposta inválida ou falha do
	// gerador de IA.
	FallbackReply = "Desculpe, não consegui gerar uma resposta válida."

	// ProcessingErrorReply é devolvida quando a própria interação não
	// pôde ser processada (ex.: contato não resolvido).
	ProcessingErrorReply = "Erro ao processar sua mensagem. Tente novamente."

	// AvailabilityMenu é enviado ao lead no momento do agendamento.
	AvailabilityMenu = "Perfeito! Vamos agendar sua reunião. Aqui estão as opções:\n" +
		"- Segunda a Sexta: 9:00 às 16:00 (horário cheio)\n" +
		"- Sábado: 9:00 às 11:00 (horário cheio)\n" +
		"- Domingo: sem disponibilidade\n" +
		"Me diga o dia e horário que prefere!"

	replySubject = "Resposta Automática"
)

// appointmentLeadTime: reuniões são marcadas um dia à frente; o horário
// exato é combinado depois pelo menu de disponibilidade.
const appointmentLeadTime = 24 * time.Hour

type ProcessInteractionInput struct {
	// Identifier é o endereço no canal de origem: telefone (whatsapp)
	// ou e-mail.
	Identifier string
	// Name é o nome de exibição, quando o canal o fornece.
	Name    string
	Message string
	Source  entity.Source
}

// ProcessInteractionUseCase liga uma mensagem recebida à resposta da IA,
// ao log de interações e à transição de etapa do funil.
type ProcessInteractionUseCase struct {
	Contacts     entity.ContactRepositoryInterface
	Funnel       entity.FunnelRepositoryInterface
	Interactions entity.InteractionRepositoryInterface
	Appointments entity.AppointmentRepositoryInterface
	Stages       StageMover
	AI           ReplyGenerator
	Chat         ChatSender
	Mail         EmailSender
	Notifier     OperatorNotifier
	Now          func() time.Time
}

func NewProcessInteractionUseCase(
	contacts entity.ContactRepositoryInterface,
	funnel entity.FunnelRepositoryInterface,
	interactions entity.InteractionRepositoryInterface,
	appointments entity.AppointmentRepositoryInterface,
	stages StageMover,
	ai ReplyGenerator,
	chat ChatSender,
	mail EmailSender,
	notifier OperatorNotifier,
) *ProcessInteractionUseCase {
	return &ProcessInteractionUseCase{
		Contacts:     contacts,
		Funnel:       funnel,
		Interactions: interactions,
		Appointments: appointments,
		Stages:       stages,
		AI:           ai,
		Chat:         chat,
		Mail:         mail,
		Notifier:     notifier,
		Now:          time.Now,
	}
}

// Execute processa uma mensagem de ponta a ponta e devolve o texto da
// resposta. Falhas em etapas intermediárias degradam o resultado (texto
// de fallback, entrega pulada) mas nunca abortam a interação inteira.
func (uc *ProcessInteractionUseCase) Execute(ctx context.Context, input ProcessInteractionInput) string {
	contact, err := uc.resolveContact(ctx, input)
	if err != nil {
		log.Printf("❌ Erro ao processar interação de %s: %v", input.Identifier, err)
		return ProcessingErrorReply
	}

	currentStage, err := uc.Funnel.GetStage(ctx, contact.ID)
	if err != nil {
		log.Printf("⚠️ Erro ao ler etapa de %s: %v", contact.ID, err)
	}
	if currentStage == "" {
		currentStage = entity.StageContatoInicial
	}

	reply := uc.generateReply(ctx, input)

	// O log precisa refletir toda mensagem recebida, mesmo que a
	// entrega ou a transição falhem depois.
	if err := uc.Interactions.Log(ctx, contact.ID, input.Source, input.Message, &reply); err != nil {
		log.Printf("⚠️ Erro ao registrar interação de %s: %v", contact.ID, err)
	}

	uc.deliver(ctx, contact, input.Source, reply)

	uc.advance(ctx, contact, currentStage, input)

	return reply
}

func (uc *ProcessInteractionUseCase) resolveContact(ctx context.Context, input ProcessInteractionInput) (*entity.Contact, error) {
	var existing *entity.Contact
	var err error

	if input.Source == entity.SourceEmail {
		existing, err = uc.Contacts.FindByEmail(ctx, input.Identifier)
	} else {
		existing, err = uc.Contacts.FindByPhone(ctx, input.Identifier)
	}
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	name := input.Name
	if name == "" {
		name = entity.UnknownName
	}

	contact := &entity.Contact{
		ID:   uuid.New().String(),
		Name: name,
	}
	if input.Source == entity.SourceEmail {
		contact.Email = input.Identifier
	} else {
		contact.Phone = input.Identifier
	}

	// O upsert é idempotente: a unicidade do endereço garante que duas
	// chamadas concorrentes convergem para a mesma linha.
	if err := uc.Contacts.Upsert(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (uc *ProcessInteractionUseCase) generateReply(ctx context.Context, input ProcessInteractionInput) string {
	reply, err := uc.AI.GenerateReply(ctx, input.Identifier, input.Message, input.Source)
	if err != nil {
		log.Printf("⚠️ Erro na IA para %s: %v", input.Identifier, err)
		return FallbackReply
	}
	if strings.TrimSpace(reply) == "" {
		return FallbackReply
	}
	log.Printf("[%s] Resposta da IA para %s: %q", input.Source, input.Identifier, reply)
	return reply
}

func (uc *ProcessInteractionUseCase) deliver(ctx context.Context, contact *entity.Contact, source entity.Source, text string) {
	switch source {
	case entity.SourceWhatsApp:
		if uc.Chat == nil || contact.Phone == "" {
			return
		}
		if err := uc.Chat.SendMessage(ctx, contact.Phone, text); err != nil {
			log.Printf("⚠️ Erro ao enviar WhatsApp para %s: %v", contact.Phone, err)
		}
	case entity.SourceEmail:
		if uc.Mail == nil || contact.Email == "" {
			return
		}
		if err := uc.Mail.Send(contact.Email, replySubject, text); err != nil {
			log.Printf("⚠️ Erro ao enviar e-mail para %s: %v", contact.Email, err)
		}
	}
}

func (uc *ProcessInteractionUseCase) advance(ctx context.Context, contact *entity.Contact, current entity.Stage, input ProcessInteractionInput) {
	next := entity.NextStage(current, input.Message)
	if next == current {
		if current == entity.StageReuniaoAgendada {
			log.Printf("Contato %s já tem reunião agendada.", contact.ID)
		}
		return
	}

	uc.Stages.MoveToStage(ctx, contact.ID, next)

	if next != entity.StageReuniaoAgendada {
		return
	}

	dateTime := uc.Now().Add(appointmentLeadTime)
	if err := uc.Appointments.Create(ctx, contact.ID, dateTime); err != nil {
		log.Printf("⚠️ Erro ao criar reunião para %s: %v", contact.ID, err)
		return
	}

	// A reunião já está persistida; o menu e a notificação assumem isso.
	uc.deliver(ctx, contact, input.Source, AvailabilityMenu)

	if uc.Notifier != nil {
		uc.Notifier.NotifyNewAppointment(ctx, contact.Name, contact.Phone, dateTime)
	}
}
