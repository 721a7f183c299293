package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"notely/internal/model"
)

type LoginEventRepository struct {
	pool *pgxpool.Pool
}

func NewLoginEventRepository(pool *pgxpool.Pool) *LoginEventRepository {
	return &LoginEventRepository{pool: pool}
}

func (r *LoginEventRepository) Record(ctx context.Context, ev model.LoginEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO login_events (id, user_id, email, success, occurred_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		ev.ID, ev.UserID, ev.Email, ev.Success, ev.OccurredAt)
	if err != nil {
		return fmt.Errorf("record login event: %w", err)
	}
	return nil
}

func (r *LoginEventRepository) RecentSuccessful(ctx context.Context, limit int) ([]model.LoginEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, email, success, occurred_at
		 FROM login_events WHERE success
		 ORDER BY occurred_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list login events: %w", err)
	}
	defer rows.Close()

	events := make([]model.LoginEvent, 0)
	for rows.Next() {
		var ev model.LoginEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Email, &ev.Success, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan login event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
