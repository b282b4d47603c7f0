package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, u *User) (uint, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) (uint, error) {
	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, first_name, last_name, phone, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Role).Scan(&id)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return 0, ErrEmailExists
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *repository) GetByID(ctx context.Context, id uint) (*User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *repository) getOne(ctx context.Context, where string, arg any) (*User, error) {
	query := `
		SELECT id, email, password, first_name, last_name, phone, role, created_at
		FROM users ` + where

	var u User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.Role,
		&u.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}
