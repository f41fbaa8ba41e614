package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexscarano/QrLinkki/internal/storage"
)

type Storage struct {
	DB *pgxpool.Pool
}

func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	dbpool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, err
	}
	return &Storage{DB: dbpool}, nil
}

func (s *Storage) Close() {
	s.DB.Close()
}

// Init создает схему, если ее еще нет. Уникальный индекс по short_code -
// единственный авторитетный механизм защиты от гонок при выдаче кодов,
// генератор кодов лишь снижает вероятность коллизии.
func (s *Storage) Init(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS links (
			id           BIGSERIAL PRIMARY KEY,
			user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			original_url TEXT NOT NULL,
			short_code   TEXT NOT NULL UNIQUE,
			short_url    TEXT NOT NULL,
			qr_code_path TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			expires_at   TIMESTAMPTZ,
			clicks       BIGINT NOT NULL DEFAULT 0 CHECK (clicks >= 0)
		);
	`)
	return err
}

// translateError переводит низкоуровневые ошибки pgx в ошибки пакета.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if pgErr.ConstraintName == "users_email_key" {
				return storage.ErrDuplicateUser
			}
			return storage.ErrDuplicateCode
		case "23503": // foreign_key_violation
			return storage.ErrUserMissing
		}
	}
	return err
}
