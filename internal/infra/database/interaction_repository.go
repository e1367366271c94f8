package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ghost-funnel/internal/entity"
)

type InteractionRepository struct {
	DB *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

// Log grava um registro imutável da troca. response nulo marca mensagens
// ainda sem resposta gerada.
func (r *InteractionRepository) Log(ctx context.Context, contactID string, source entity.Source, message string, response *string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO interactions (contact_id, source, message, response, timestamp)
		VALUES ($1, $2, $3, $4, NOW())
	`, contactID, string(source), message, response)
	return err
}
