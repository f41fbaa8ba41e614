package postgres

import (
	"context"

	"github.com/alexscarano/QrLinkki/internal/model"
	"github.com/alexscarano/QrLinkki/internal/storage"
)

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	row := s.DB.QueryRow(ctx,
		`INSERT INTO users (email, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		user.Email, user.PasswordHash)

	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.DB.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users
		 WHERE email=$1`,
		email)

	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.DB.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users
		 WHERE id=$1`,
		id)

	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// UpdateUser обновляет только непустые поля, updated_at проставляется базой.
func (s *Storage) UpdateUser(ctx context.Context, id int64, email, passwordHash string) (*model.User, error) {
	row := s.DB.QueryRow(ctx,
		`UPDATE users
		 SET email = COALESCE(NULLIF($1, ''), email),
		     password_hash = COALESCE(NULLIF($2, ''), password_hash),
		     updated_at = now()
		 WHERE id = $3
		 RETURNING id, email, password_hash, created_at, updated_at`,
		email, passwordHash, id)

	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// DeleteUser удаляет пользователя; его ссылки уходят каскадом по FK.
func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
