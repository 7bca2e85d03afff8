package repository

import (
	"context"
	"errors"
	"fmt"

	"agrimarket/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, state, district, taluk, phone_number, role, created_at, updated_at`

// uniqueViolation is the Postgres error code for a unique constraint failure.
const uniqueViolation = "23505"

// PostgresUserStore keeps users in the users table.
type PostgresUserStore struct {
	db *pgxpool.Pool
}

func NewPostgresUserStore(db *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func scanUser(row pgx.Row, extra ...any) (models.User, error) {
	var u models.User
	dest := []any{
		&u.ID, &u.Name, &u.Email,
		&u.State, &u.District, &u.Taluk, &u.PhoneNumber,
		&u.Role, &u.CreatedAt, &u.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return u, err
}

func (s *PostgresUserStore) Create(ctx context.Context, user models.User, passwordHash string) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `
        INSERT INTO users (id, name, email, password_hash, role, state, district, taluk, phone_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + userColumns

	created, err := scanUser(s.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, passwordHash, user.Role,
		user.State, user.District, user.Taluk, user.PhoneNumber,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (s *PostgresUserStore) ByEmail(ctx context.Context, email string) (models.User, string, error) {
	var hash string
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+`, password_hash FROM users WHERE email = $1`, email), &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, "", ErrNotFound
	}
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return u, hash, nil
}

func (s *PostgresUserStore) ByID(ctx context.Context, id string) (models.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	return u, nil
}

func (s *PostgresUserStore) All(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *PostgresUserStore) Update(ctx context.Context, user models.User) (models.User, error) {
	query := `
        UPDATE users
        SET name = $2, state = $3, district = $4, taluk = $5, phone_number = $6, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	updated, err := scanUser(s.db.QueryRow(ctx, query,
		user.ID, user.Name, user.State, user.District, user.Taluk, user.PhoneNumber,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return updated, nil
}
