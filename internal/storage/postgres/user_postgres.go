package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
)

const userSelect = `
	SELECT u.id, u.username, u.password, u.email, array_agg(r.name)
	FROM users u
	LEFT JOIN user_roles ur ON u.id = ur.user_id
	LEFT JOIN roles r ON ur.role_id = r.id
	WHERE %s
	GROUP BY u.id
`

type UserPostgres struct {
	db *pgxpool.Pool
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{db: db}
}

func (r *UserPostgres) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, fmt.Sprintf(userSelect, "u.id = $1"), id))
}

func (r *UserPostgres) UserByName(ctx context.Context, name string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, fmt.Sprintf(userSelect, "u.username = $1"), name))
}

func (r *UserPostgres) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var roles []string
	err := row.Scan(&user.ID, &user.Username, &user.Password, &user.Email, &roles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrUserNotFound
		}
		return nil, err
	}
	user.Roles = roles
	return &user, nil
}

func (r *UserPostgres) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, password, email) VALUES ($1, $2, $3) RETURNING id`,
		user.Username, user.Password, user.Email,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, app_errors.ErrUserExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	for _, roleName := range user.Roles {
		var roleID int
		if err = tx.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, roleName).Scan(&roleID); err != nil {
			return nil, fmt.Errorf("unknown role %q: %w", roleName, err)
		}
		if _, err = tx.Exec(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, user.ID, roleID); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &user, nil
}
