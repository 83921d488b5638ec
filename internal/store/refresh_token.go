package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dental-clinic-api/internal/model"
)

// UpsertRefreshToken stores the user's current refresh token, replacing any
// previous one. One row per user.
func (s *Store) UpsertRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token, expires_at) VALUES ($1,$2,$3,$4)
		 ON CONFLICT (user_id) DO UPDATE SET token = $3, expires_at = $4`,
		uuid.New().String(), userID, token, expiresAt,
	)
	return err
}

func (s *Store) RefreshTokenByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	rt := &model.RefreshToken{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at FROM refresh_tokens WHERE token = $1`, token,
	).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Store) DeleteRefreshToken(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE token = $1`, token)
	return err
}
