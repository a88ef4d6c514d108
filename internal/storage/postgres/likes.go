package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ali-azimo/house-aj/internal/storage"
)

// ToggleLike removes the (user, house) like if present, inserts it otherwise.
// Delete and insert run in one transaction so concurrent toggles cannot leave
// a duplicate or a phantom row; the primary key is the final guard.
func (s *Store) ToggleLike(ctx context.Context, userID, houseID int64) (bool, error) {
	var liked bool
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM likes WHERE user_id = $1 AND house_id = $2;`, userID, houseID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			liked = false
			return nil
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO likes (user_id, house_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`,
			userID, houseID)
		if err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		// 23503: the referenced house or user row is gone.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return false, storage.ErrNotFound
		}
		return false, err
	}
	return liked, nil
}

// CountLikes returns how many accounts like a house.
func (s *Store) CountLikes(ctx context.Context, houseID int64) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE house_id = $1;`, houseID).Scan(&count)
	return count, err
}

// HasLiked reports whether the account currently likes the house.
func (s *Store) HasLiked(ctx context.Context, userID, houseID int64) (bool, error) {
	var liked bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND house_id = $2);`,
		userID, houseID).Scan(&liked)
	return liked, err
}
