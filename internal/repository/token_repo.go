package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"notely/internal/model"
)

// TokenRepository is the refresh-token revocation registry. Rows are kept
// past token expiry (within a retention window) so a rotated-but-unexpired
// token can never be replayed.
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Store(ctx context.Context, jti string, userID string, issuedAt time.Time, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (jti, user_id, issued_at, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		jti, userID, issuedAt, expiresAt)
	if err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// Rotate marks the token revoked, succeeding for exactly one caller. The
// WHERE clause is the compare-and-swap: if two refreshes race on the same
// jti, the second sees zero rows and fails.
func (r *TokenRepository) Rotate(ctx context.Context, jti string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now()
		 WHERE jti = $1 AND revoked_at IS NULL AND expires_at > now()`, jti)
	if err != nil {
		return fmt.Errorf("rotate refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTokenInvalid
	}
	return nil
}

// Revoke is the logout path: same update, but already-revoked or unknown
// tokens are not an error.
func (r *TokenRepository) Revoke(ctx context.Context, jti string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now()
		 WHERE jti = $1 AND revoked_at IS NULL`, jti)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// PurgeExpired removes registry rows whose tokens expired more than the
// retention window ago. Rows inside the window stay so revocation state
// outlives expiry.
func (r *TokenRepository) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < now() - $1::interval`,
		fmt.Sprintf("%d seconds", int64(retention.Seconds())))
	if err != nil {
		return 0, fmt.Errorf("purge expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
