package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/xavierca1/ghost-funnel/internal/entity"
)

type FunnelRepository struct {
	DB *sql.DB
}

func NewFunnelRepository(db *sql.DB) *FunnelRepository {
	return &FunnelRepository{DB: db}
}

func (r *FunnelRepository) GetStage(ctx context.Context, contactID string) (entity.Stage, error) {
	var stage string
	err := r.DB.QueryRowContext(ctx,
		`SELECT stage FROM sales_funnel WHERE contact_id = $1`, contactID,
	).Scan(&stage)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return entity.Stage(stage), nil
}

// SetStage grava a etapa com timestamp novo. Um upsert de uma única
// instrução: é ele que garante "no máximo uma etapa por contato" mesmo
// com transições concorrentes.
func (r *FunnelRepository) SetStage(ctx context.Context, contactID string, stage entity.Stage) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sales_funnel (contact_id, stage, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (contact_id)
		DO UPDATE SET stage = EXCLUDED.stage, updated_at = EXCLUDED.updated_at
	`, contactID, string(stage))
	return err
}

func (r *FunnelRepository) SetNurtureOffset(ctx context.Context, contactID string, offset int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE sales_funnel SET nurture_offset = $2 WHERE contact_id = $1`,
		contactID, offset,
	)
	return err
}

// QueryForgotten lista leads em leads_esqueceram com telefone conhecido,
// junto da primeira interação e da marca d'água de nutrição.
func (r *FunnelRepository) QueryForgotten(ctx context.Context) ([]entity.ForgottenLead, error) {
	query := `
		SELECT c.id, c.phone, f.nurture_offset, MIN(i.timestamp)
		FROM contacts c
		JOIN sales_funnel f ON c.id = f.contact_id
		JOIN interactions i ON c.id = i.contact_id
		WHERE f.stage = $1 AND c.phone IS NOT NULL
		GROUP BY c.id, c.phone, f.nurture_offset
	`

	rows, err := r.DB.QueryContext(ctx, query, string(entity.StageLeadsEsqueceram))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.ForgottenLead
	for rows.Next() {
		var lead entity.ForgottenLead
		if err := rows.Scan(&lead.ContactID, &lead.Phone, &lead.NurtureOffset, &lead.FirstContact); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func (r *FunnelRepository) QueryRecentlyDiscarded(ctx context.Context, since time.Time) ([]entity.DiscardedLead, error) {
	query := `
		SELECT c.name, c.phone
		FROM contacts c
		JOIN sales_funnel f ON c.id = f.contact_id
		WHERE f.stage = $1 AND f.updated_at > $2
	`

	rows, err := r.DB.QueryContext(ctx, query, string(entity.StageDescartado), since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.DiscardedLead
	for rows.Next() {
		var lead entity.DiscardedLead
		var phone sql.NullString
		if err := rows.Scan(&lead.Name, &phone); err != nil {
			return nil, err
		}
		lead.Phone = phone.String
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// QueryStaleForgotten lista leads esquecidos cuja interação mais recente
// é anterior a olderThan.
func (r *FunnelRepository) QueryStaleForgotten(ctx context.Context, olderThan time.Time) ([]entity.StaleLead, error) {
	query := `
		SELECT c.name, c.phone, MAX(i.timestamp)
		FROM contacts c
		JOIN sales_funnel f ON c.id = f.contact_id
		JOIN interactions i ON c.id = i.contact_id
		WHERE f.stage = $1
		GROUP BY c.id, c.name, c.phone
		HAVING MAX(i.timestamp) < $2
	`

	rows, err := r.DB.QueryContext(ctx, query, string(entity.StageLeadsEsqueceram), olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.StaleLead
	for rows.Next() {
		var lead entity.StaleLead
		var phone sql.NullString
		if err := rows.Scan(&lead.Name, &phone, &lead.LastContact); err != nil {
			return nil, err
		}
		lead.Phone = phone.String
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}
