package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ghost-funnel/internal/entity"
)

func newProcessFixture() (*ProcessInteractionUseCase, *MockContactRepository, *MockFunnelRepository, *MockInteractionRepository, *MockAppointmentRepository, *MockStageMover, *MockReplyGenerator, *MockChatSender, *MockOperatorNotifier) {
	contacts := new(MockContactRepository)
	funnel := new(MockFunnelRepository)
	interactions := new(MockInteractionRepository)
	appointments := new(MockAppointmentRepository)
	stages := new(MockStageMover)
	ai := new(MockReplyGenerator)
	chat := new(MockChatSender)
	notifier := new(MockOperatorNotifier)

	uc := NewProcessInteractionUseCase(contacts, funnel, interactions, appointments, stages, ai, chat, nil, notifier)
	return uc, contacts, funnel, interactions, appointments, stages, ai, chat, notifier
}

func TestExecuteFalhaDaIAUsaFallbackEAindaRegistra(t *testing.T) {
	uc, contacts, funnel, interactions, _, stages, ai, chat, _ := newProcessFixture()

	contact := &entity.Contact{ID: "c1", Name: "Maria", Phone: "+5511999990000"}
	contacts.On("FindByPhone", mock.Anything, "+5511999990000").Return(contact, nil)
	funnel.On("GetStage", mock.Anything, "c1").Return(entity.StageResposta, nil)
	ai.On("GenerateReply", mock.Anything, "+5511999990000", "não, obrigado", entity.SourceWhatsApp).
		Return("", errors.New("timeout na IA"))
	interactions.On("Log", mock.Anything, "c1", entity.SourceWhatsApp, "não, obrigado",
		mock.MatchedBy(func(r *string) bool { return r != nil && *r == FallbackReply })).Return(nil)
	chat.On("SendMessage", mock.Anything, "+5511999990000", FallbackReply).Return(nil)
	stages.On("MoveToStage", mock.Anything, "c1", entity.StageLeadsEsqueceram).Return(true)

	reply := uc.Execute(context.Background(), ProcessInteractionInput{
		Identifier: "+5511999990000",
		Message:    "não, obrigado",
		Source:     entity.SourceWhatsApp,
	})

	assert.Equal(t, FallbackReply, reply)
	interactions.AssertExpectations(t)
	stages.AssertExpectations(t)
}

func TestExecuteAgendamentoCriaReuniaoEnviaMenuENotifica(t *testing.T) {
	uc, contacts, funnel, interactions, appointments, stages, ai, chat, notifier := newProcessFixture()

	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	uc.Now = func() time.Time { return base }

	contact := &entity.Contact{ID: "c2", Name: "João", Phone: "+5511988887777"}
	contacts.On("FindByPhone", mock.Anything, "+5511988887777").Return(contact, nil)
	funnel.On("GetStage", mock.Anything, "c2").Return(entity.StageLeadQuente, nil)
	ai.On("GenerateReply", mock.Anything, "+5511988887777", "vamos agendar", entity.SourceWhatsApp).
		Return("Combinado!", nil)
	interactions.On("Log", mock.Anything, "c2", entity.SourceWhatsApp, "vamos agendar", mock.Anything).Return(nil)
	chat.On("SendMessage", mock.Anything, "+5511988887777", "Combinado!").Return(nil)
	stages.On("MoveToStage", mock.Anything, "c2", entity.StageReuniaoAgendada).Return(true)
	appointments.On("Create", mock.Anything, "c2", base.Add(24*time.Hour)).Return(nil)
	chat.On("SendMessage", mock.Anything, "+5511988887777", AvailabilityMenu).Return(nil)
	notifier.On("NotifyNewAppointment", mock.Anything, "João", "+5511988887777", base.Add(24*time.Hour)).Return()

	reply := uc.Execute(context.Background(), ProcessInteractionInput{
		Identifier: "+5511988887777",
		Message:    "vamos agendar",
		Source:     entity.SourceWhatsApp,
	})

	assert.Equal(t, "Combinado!", reply)
	appointments.AssertExpectations(t)
	chat.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestExecuteContatoExistenteNaoDuplica(t *testing.T) {
	uc, contacts, funnel, interactions, _, stages, ai, chat, _ := newProcessFixture()

	contact := &entity.Contact{ID: "c3", Name: "Ana", Phone: "+5511977776666"}
	contacts.On("FindByPhone", mock.Anything, "+5511977776666").Return(contact, nil)
	funnel.On("GetStage", mock.Anything, "c3").Return(entity.Stage(""), nil)
	ai.On("GenerateReply", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("Olá!", nil)
	interactions.On("Log", mock.Anything, "c3", entity.SourceWhatsApp, "oi", mock.Anything).Return(nil)
	chat.On("SendMessage", mock.Anything, "+5511977776666", "Olá!").Return(nil)
	stages.On("MoveToStage", mock.Anything, "c3", entity.StageResposta).Return(true)

	uc.Execute(context.Background(), ProcessInteractionInput{
		Identifier: "+5511977776666",
		Message:    "oi",
		Source:     entity.SourceWhatsApp,
	})

	contacts.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestExecuteContatoNovoECriadoComNomePadrao(t *testing.T) {
	uc, contacts, funnel, interactions, _, stages, ai, chat, _ := newProcessFixture()

	contacts.On("FindByPhone", mock.Anything, "+5511966665555").Return(nil, nil)
	contacts.On("Upsert", mock.Anything, mock.MatchedBy(func(c *entity.Contact) bool {
		return c.Phone == "+5511966665555" && c.Name == entity.UnknownName && c.ID != ""
	})).Return(nil)
	funnel.On("GetStage", mock.Anything, mock.Anything).Return(entity.Stage(""), nil)
	ai.On("GenerateReply", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("Bem-vindo!", nil)
	interactions.On("Log", mock.Anything, mock.Anything, entity.SourceWhatsApp, "olá", mock.Anything).Return(nil)
	chat.On("SendMessage", mock.Anything, "+5511966665555", "Bem-vindo!").Return(nil)
	stages.On("MoveToStage", mock.Anything, mock.Anything, entity.StageResposta).Return(true)

	uc.Execute(context.Background(), ProcessInteractionInput{
		Identifier: "+5511966665555",
		Message:    "olá",
		Source:     entity.SourceWhatsApp,
	})

	contacts.AssertExpectations(t)
}

func TestExecuteFalhaAoResolverContato(t *testing.T) {
	uc, contacts, _, _, _, _, _, _, _ := newProcessFixture()

	contacts.On("FindByPhone", mock.Anything, "+5511955554444").Return(nil, errors.New("banco fora do ar"))

	reply := uc.Execute(context.Background(), ProcessInteractionInput{
		Identifier: "+5511955554444",
		Message:    "oi",
		Source:     entity.SourceWhatsApp,
	})

	assert.Equal(t, ProcessingErrorReply, reply)
}

func TestExecuteEmailRespondePorSMTP(t *testing.T) {
	contacts := new(MockContactRepository)
	funnel := new(MockFunnelRepository)
	interactions := new(MockInteractionRepository)
	appointments := new(MockAppointmentRepository)
	stages := new(MockStageMover)
	ai := new(MockReplyGenerator)
	mailSender := new(MockEmailSender)
	uc := NewProcessInteractionUseCase(contacts, funnel, interactions, appointments, stages, ai, nil, mailSender, nil)

	contact := &entity.Contact{ID: "c4", Name: "Lucas", Email: "lucas@example.com"}
	contacts.On("FindByEmail", mock.Anything, "lucas@example.com").Return(contact, nil)
	funnel.On("GetStage", mock.Anything, "c4").Return(entity.StageContatoInicial, nil)
	ai.On("GenerateReply", mock.Anything, "lucas@example.com", "quanto custa?", entity.SourceEmail).
		Return("Depende do plano.", nil)
	interactions.On("Log", mock.Anything, "c4", entity.SourceEmail, "quanto custa?", mock.Anything).Return(nil)
	mailSender.On("Send", "lucas@example.com", "Resposta Automática", "Depende do plano.").Return(nil)
	stages.On("MoveToStage", mock.Anything, "c4", entity.StageResposta).Return(true)

	reply := uc.Execute(context.Background(), ProcessInteractionInput{
		Identifier: "lucas@example.com",
		Message:    "quanto custa?",
		Source:     entity.SourceEmail,
	})

	assert.Equal(t, "Depende do plano.", reply)
	mailSender.AssertExpectations(t)
}

func TestExecuteReuniaoJaAgendadaNaoTransiciona(t *testing.T) {
	uc, contacts, funnel, interactions, appointments, stages, ai, chat, _ := newProcessFixture()

	contact := &entity.Contact{ID: "c5", Name: "Bia", Phone: "+5511944443333"}
	contacts.On("FindByPhone", mock.Anything, "+5511944443333").Return(contact, nil)
	funnel.On("GetStage", mock.Anything, "c5").Return(entity.StageReuniaoAgendada, nil)
	ai.On("GenerateReply", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("Até lá!", nil)
	interactions.On("Log", mock.Anything, "c5", entity.SourceWhatsApp, "sim", mock.Anything).Return(nil)
	chat.On("SendMessage", mock.Anything, "+5511944443333", "Até lá!").Return(nil)

	uc.Execute(context.Background(), ProcessInteractionInput{
		Identifier: "+5511944443333",
		Message:    "sim",
		Source:     entity.SourceWhatsApp,
	})

	stages.AssertNotCalled(t, "MoveToStage", mock.Anything, mock.Anything, mock.Anything)
	appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}
