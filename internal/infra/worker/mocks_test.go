package worker

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ghost-funnel/internal/entity"
)

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
