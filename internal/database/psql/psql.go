package psql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	databaseerrors "orderfront/internal/database"
	"orderfront/internal/models"
	"orderfront/pkg/lib/logger/sl"
)

type Storage struct {
	log *slog.Logger
	db  *sqlx.DB
}

func New(log *slog.Logger, connStr string) (*Storage, error) {
	const op = "database.psql.New"

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		log.With("op", op).Error("Error connect to database", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	wd, err := os.Getwd()
	if err != nil {
		log.With("op", op).Error("Error getting work dir", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	migrationsPath := filepath.Join(wd, "migrations")

	if err := goose.Up(db.DB, migrationsPath); err != nil {
		log.With("op", op).Error("Error applying migrations", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		log: log,
		db:  db,
	}, nil
}

// NewWithParams skips connect and migrations, for tests.
func NewWithParams(log *slog.Logger, db *sqlx.DB) *Storage {
	return &Storage{
		log: log,
		db:  db,
	}
}

func (s *Storage) Close() {
	s.db.Close()
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "database.psql.UserByEmail"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.User{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, email, name, role, password_hash FROM users
		WHERE email=$1;
	`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("User doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.User{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}
		log.Error("Error fetching user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "database.psql.ListUsers"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	users := make([]models.User, 0, 10)
	if err := s.db.SelectContext(ctx, &users, `
		SELECT id, email, name, role, password_hash FROM users
		ORDER BY email;
	`); err != nil {
		log.Error("Error listing users", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

func (s *Storage) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "database.psql.CreateUser"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.User{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5);
	`, user.Id, user.Email, user.Name, user.Role, user.Password); err != nil {
		log.Error("Error creating user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "database.psql.UpdateUser"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.User{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET email=$2, name=$3, role=$4
		WHERE id=$1;
	`, user.Id, user.Email, user.Name, user.Role)
	if err != nil {
		log.Error("Error updating user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("User doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return models.User{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return user, nil
}

func (s *Storage) DeleteUser(ctx context.Context, userId string) error {
	const op = "database.psql.DeleteUser"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM users
		WHERE id=$1;
	`, userId)
	if err != nil {
		log.Error("Error deleting user", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("User doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return nil
}
