package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/ghost-funnel/internal/entity"
)

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, contactID string, dateTime time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO appointments (id, contact_id, date_time)
		VALUES ($1, $2, $3)
	`, uuid.New().String(), contactID, dateTime)
	return err
}

func (r *AppointmentRepository) QueryUpcoming(ctx context.Context, from, to time.Time) ([]entity.UpcomingAppointment, error) {
	query := `
		SELECT a.id, a.contact_id, c.name, c.phone, a.date_time
		FROM appointments a
		JOIN contacts c ON a.contact_id = c.id
		WHERE a.date_time BETWEEN $1 AND $2
	`

	rows, err := r.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []entity.UpcomingAppointment
	for rows.Next() {
		var a entity.UpcomingAppointment
		var phone sql.NullString
		if err := rows.Scan(&a.ID, &a.ContactID, &a.Name, &phone, &a.DateTime); err != nil {
			return nil, err
		}
		a.Phone = phone.String
		appts = append(appts, a)
	}

	return appts, rows.Err()
}

// LoadAll monta o snapshot de reuniões do controlador, mais próxima primeiro.
func (r *AppointmentRepository) LoadAll(ctx context.Context) ([]entity.AppointmentRow, error) {
	query := `
		SELECT a.id, c.name, c.phone, a.date_time
		FROM appointments a
		JOIN contacts c ON a.contact_id = c.id
		ORDER BY a.date_time ASC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []entity.AppointmentRow
	for rows.Next() {
		var row entity.AppointmentRow
		var phone sql.NullString
		if err := rows.Scan(&row.ID, &row.Name, &phone, &row.DateTime); err != nil {
			return nil, err
		}
		row.Phone = phone.String
		appts = append(appts, row)
	}

	return appts, rows.Err()
}
