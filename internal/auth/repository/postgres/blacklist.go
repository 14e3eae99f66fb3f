package postgres

import (
	"context"
	"fmt"
	"time"
)

// BlacklistRepository is the Postgres-backed revocation store. Records are
// append-only, keyed by the literal token string.
type BlacklistRepository struct {
	db DB
}

func NewBlacklistRepository(db DB) *BlacklistRepository {
	return &BlacklistRepository{db: db}
}

// Revoke inserts a revocation record. ON CONFLICT DO NOTHING makes it
// idempotent: concurrent logouts for the same token both succeed.
func (r *BlacklistRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO blacklisted_tokens (token, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (token) DO NOTHING
	`, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}

func (r *BlacklistRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	var revoked bool

	row := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE token = $1)`, token)
	if err := row.Scan(&revoked); err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}

	return revoked, nil
}

// DeleteExpired prunes records whose tokens would fail expiry verification
// anyway. Called periodically by the sweeper in main.
func (r *BlacklistRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM blacklisted_tokens WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to prune blacklist: %w", err)
	}

	return tag.RowsAffected(), nil
}
