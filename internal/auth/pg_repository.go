package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var roles []string

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&roles,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u.Roles = toRoles(roles)
	return &u, nil
}

func toRoles(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		roles = append(roles, Role(r))
	}
	return roles
}

func fromRoles(roles []Role) []string {
	raw := make([]string, 0, len(roles))
	for _, r := range roles {
		raw = append(raw, string(r))
	}
	return raw
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, roles, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *PgRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, roles, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
	`, email)
	return scanUser(row)
}

func (r *PgRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, password_hash, roles, created_at, updated_at
		FROM users
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) Insert(ctx context.Context, u User) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id, name, email, password_hash, roles, created_at, updated_at
	`, u.ID, u.Name, u.Email, u.PasswordHash, fromRoles(u.Roles))

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

func (r *PgRepository) UpdateRoles(ctx context.Context, id uuid.UUID, roles []Role) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET roles = $2,
		    updated_at = now()
		WHERE id = $1
		RETURNING id, name, email, password_hash, roles, created_at, updated_at
	`, id, fromRoles(roles))

	return scanUser(row)
}
