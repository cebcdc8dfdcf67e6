package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, password_hash, first_name, last_name, email, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.Role).
		Scan(&u.ID, &u.CreatedAt)
	if db.IsUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return apperror.Storage(err)
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, `
		SELECT id, username, password_hash, first_name, last_name, email, role, created_at
		FROM users
		WHERE username = $1
	`, username)
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	return r.findOne(ctx, `
		SELECT id, username, password_hash, first_name, last_name, email, role, created_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *repository) findOne(ctx context.Context, query string, arg interface{}) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user %v", arg)
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	users := []User{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT id, username, password_hash, first_name, last_name, email, role, created_at
		FROM users
		ORDER BY username
	`)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return users, nil
}

// Update writes the profile fields; username and password are left alone.
func (r *repository) Update(ctx context.Context, u *User) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, role = $5
		WHERE id = $1
	`, u.ID, u.FirstName, u.LastName, u.Email, u.Role)
	if db.IsUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return apperror.Storage(err)
	}
	return requireRow(result, u.ID)
}

func (r *repository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return apperror.Storage(err)
	}
	return requireRow(result, id)
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperror.Storage(err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id int) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage(err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user %d", id)
	}
	return nil
}

func (r *repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return false, apperror.Storage(err)
	}
	return exists, nil
}
