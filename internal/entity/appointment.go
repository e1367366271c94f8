package entity

import (
	"context"
	"time"
)

type Appointment struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id"`
	DateTime  time.Time `json:"date_time"`
	CreatedAt time.Time `json:"created_at"`
}

// AppointmentRow é uma linha do snapshot de reuniões enviado ao controlador.
type AppointmentRow struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone,omitempty"`
	DateTime time.Time `json:"date_time"`
}

// UpcomingAppointment é uma reunião dentro da janela de lembretes.
type UpcomingAppointment struct {
	ID        string
	ContactID string
	Name      string
	Phone     string
	DateTime  time.Time
}

type AppointmentRepositoryInterface interface {
	Create(ctx context.Context, contactID string, dateTime time.Time) error
	QueryUpcoming(ctx context.Context, from, to time.Time) ([]UpcomingAppointment, error)
	LoadAll(ctx context.Context) ([]AppointmentRow, error)
}
