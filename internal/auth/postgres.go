package auth

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore constructs a Store backed by the authorized_chats table.
// Authorizations survive restarts, so users are not asked to identify again
// after a redeploy.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (p *postgresStore) Authorize(ctx context.Context, chatID int64, name string) error {
	const q = `
		INSERT INTO authorized_chats (chat_id, name, authorized_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (chat_id)
		DO UPDATE SET name = EXCLUDED.name, authorized_at = NOW()`

	if _, err := p.db.ExecContext(ctx, q, chatID, name); err != nil {
		return fmt.Errorf("auth: authorize chat %d: %w", chatID, err)
	}
	return nil
}

func (p *postgresStore) Authorized(ctx context.Context, chatID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM authorized_chats WHERE chat_id = $1)`

	var exists bool
	if err := p.db.GetContext(ctx, &exists, q, chatID); err != nil {
		return false, fmt.Errorf("auth: lookup chat %d: %w", chatID, err)
	}
	return exists, nil
}

func (p *postgresStore) Revoke(ctx context.Context, chatID int64) error {
	const q = `DELETE FROM authorized_chats WHERE chat_id = $1`

	if _, err := p.db.ExecContext(ctx, q, chatID); err != nil {
		return fmt.Errorf("auth: revoke chat %d: %w", chatID, err)
	}
	return nil
}
