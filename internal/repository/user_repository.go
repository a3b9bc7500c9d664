package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/chat-backend/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,username,email,password_hash,is_active,created_at,updated_at,last_login"

// Create inserts a user and returns its ID. The caller hashes the password.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, is_active) VALUES (?,?,?,1)",
		username, email, passwordHash)
	if err != nil {
		// MySQL error 1062: duplicate entry for a unique key
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE username=? LIMIT 1", username))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns every user ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userCols+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update persists email, password hash and active flag for an existing user.
func (r *UserRepo) Update(ctx context.Context, u model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=?, password_hash=?, is_active=?, updated_at=NOW() WHERE id=?",
		strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.IsActive, u.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a user row. Memberships and messages cascade in the schema.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// TouchLastLogin records a successful login.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET last_login=NOW() WHERE id=?", id)
	return err
}

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
