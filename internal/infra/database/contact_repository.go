package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ghost-funnel/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

// Upsert cria o contato ou completa nome/e-mail/telefone ainda
// desconhecidos. Nunca sobrescreve um valor já preenchido.
func (r *ContactRepository) Upsert(ctx context.Context, contact *entity.Contact) error {
	conflictKey := "phone"
	if contact.Phone == "" {
		conflictKey = "email"
	}

	query := `
		INSERT INTO contacts (id, name, phone, email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (` + conflictKey + `)
		DO UPDATE SET
			name = COALESCE(NULLIF(contacts.name, '` + entity.UnknownName + `'), EXCLUDED.name),
			phone = COALESCE(contacts.phone, EXCLUDED.phone),
			email = COALESCE(contacts.email, EXCLUDED.email)
		RETURNING id, name, created_at
	`

	return r.DB.QueryRowContext(
		ctx,
		query,
		contact.ID,
		contact.Name,
		nullString(contact.Phone),
		nullString(contact.Email),
	).Scan(&contact.ID, &contact.Name, &contact.CreatedAt)
}

func (r *ContactRepository) FindByPhone(ctx context.Context, phone string) (*entity.Contact, error) {
	return r.findBy(ctx, "phone", phone)
}

func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	return r.findBy(ctx, "email", email)
}

func (r *ContactRepository) findBy(ctx context.Context, column, value string) (*entity.Contact, error) {
	query := `SELECT id, name, phone, email, created_at FROM contacts WHERE ` + column + ` = $1`

	var c entity.Contact
	var phone, email sql.NullString

	err := r.DB.QueryRowContext(ctx, query, value).Scan(&c.ID, &c.Name, &phone, &email, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.Phone = phone.String
	c.Email = email.String
	return &c, nil
}

// LoadLeads monta o snapshot de leads do controlador: um contato por
// linha, com etapa corrente e a interação mais recente, mais novo primeiro.
func (r *ContactRepository) LoadLeads(ctx context.Context) ([]entity.LeadRow, error) {
	query := `
		SELECT c.id, c.name, c.phone, f.stage, MAX(i.timestamp) AS last_interaction
		FROM contacts c
		LEFT JOIN sales_funnel f ON c.id = f.contact_id
		LEFT JOIN interactions i ON c.id = i.contact_id
		GROUP BY c.id, c.name, c.phone, f.stage
		ORDER BY MAX(i.timestamp) DESC NULLS LAST
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.LeadRow
	for rows.Next() {
		var row entity.LeadRow
		var phone, stage sql.NullString
		var ts sql.NullTime

		if err := rows.Scan(&row.ID, &row.Name, &phone, &stage, &ts); err != nil {
			return nil, err
		}

		row.Phone = phone.String
		row.Stage = entity.Stage(stage.String)
		if ts.Valid {
			t := ts.Time
			row.Timestamp = &t
		}
		leads = append(leads, row)
	}

	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
