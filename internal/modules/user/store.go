// README: User store backed by PostgreSQL.
package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"letsgo/internal/types"
)

var ErrNotFound = errors.New("user not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetByID(ctx context.Context, id types.ID) (*User, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, name, COALESCE(gender, ''), COALESCE(phone_no, ''),
               COALESCE(driver_rating, 0), COALESCE(passenger_rating, 0),
               profile_photo IS NOT NULL
        FROM users
        WHERE id = $1`, string(id),
	)

	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Gender, &u.PhoneNo, &u.DriverRating, &u.PassengerRating, &u.HasProfilePhoto)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
