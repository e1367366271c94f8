package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ghost-funnel/internal/entity"
)

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Upsert(ctx context.Context, contact *entity.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindByPhone(ctx context.Context, phone string) (*entity.Contact, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) LoadLeads(ctx context.Context) ([]entity.LeadRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadRow), args.Error(1)
}

// MockFunnelRepository
type MockFunnelRepository struct {
	mock.Mock
}

func (m *MockFunnelRepository) GetStage(ctx context.Context, contactID string) (entity.Stage, error) {
	args := m.Called(ctx, contactID)
	return args.Get(0).(entity.Stage), args.Error(1)
}

func (m *MockFunnelRepository) SetStage(ctx context.Context, contactID string, stage entity.Stage) error {
	args := m.Called(ctx, contactID, stage)
	return args.Error(0)
}

func (m *MockFunnelRepository) SetNurtureOffset(ctx context.Context, contactID string, offset int) error {
	args := m.Called(ctx, contactID, offset)
	return args.Error(0)
}

func (m *MockFunnelRepository) QueryForgotten(ctx context.Context) ([]entity.ForgottenLead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ForgottenLead), args.Error(1)
}

func (m *MockFunnelRepository) QueryRecentlyDiscarded(ctx context.Context, since time.Time) ([]entity.DiscardedLead, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DiscardedLead), args.Error(1)
}

func (m *MockFunnelRepository) QueryStaleForgotten(ctx context.Context, olderThan time.Time) ([]entity.StaleLead, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.StaleLead), args.Error(1)
}

// MockInteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) Log(ctx context.Context, contactID string, source entity.Source, message string, response *string) error {
	args := m.Called(ctx, contactID, source, message, response)
	return args.Error(0)
}

// MockAppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, contactID string, dateTime time.Time) error {
	args := m.Called(ctx, contactID, dateTime)
	return args.Error(0)
}

func (m *MockAppointmentRepository) QueryUpcoming(ctx context.Context, from, to time.Time) ([]entity.UpcomingAppointment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UpcomingAppointment), args.Error(1)
}

func (m *MockAppointmentRepository) LoadAll(ctx context.Context) ([]entity.AppointmentRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AppointmentRow), args.Error(1)
}

// MockStageMover
type MockStageMover struct {
	mock.Mock
}

func (m *MockStageMover) MoveToStage(ctx context.Context, contactID string, stage entity.Stage) bool {
	args := m.Called(ctx, contactID, stage)
	return args.Bool(0)
}

// MockReplyGenerator
type MockReplyGenerator struct {
	mock.Mock
}

func (m *MockReplyGenerator) GenerateReply(ctx context.Context, identifier, message string, source entity.Source) (string, error) {
	args := m.Called(ctx, identifier, message, source)
	return args.String(0), args.Error(1)
}

// MockChatSender
type MockChatSender struct {
	mock.Mock
}

func (m *MockChatSender) SendMessage(ctx context.Context, to, text string) error {
	args := m.Called(ctx, to, text)
	return args.Error(0)
}

// MockEmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

// MockOperatorNotifier
type MockOperatorNotifier struct {
	mock.Mock
}

func (m *MockOperatorNotifier) NotifyNewAppointment(ctx context.Context, name, phone string, dateTime time.Time) {
	m.Called(ctx, name, phone, dateTime)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
