package postgres

import (
	"context"
	"database/sql"

	"secure-petstore/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	out := u

	err := withInsertRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, `
			INSERT INTO users (username, email, password_hash, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, u.Username, u.Email, u.PasswordHash, u.CreatedAt)

		return mapErr(row.Scan(&out.ID, &out.CreatedAt))
	})
	if err != nil {
		return users.User{}, err
	}
	return out, nil
}

func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (users.User, error) {
	var u users.User

	err := withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, `
			SELECT id, username, email, password_hash, created_at
			FROM users
			WHERE LOWER(email) = LOWER($1)
		`, email)

		var err error
		u, err = scanUser(row)
		return mapErr(err)
	})
	return u, err
}

func (r *UsersRepo) FindByID(ctx context.Context, id int64) (users.User, error) {
	var u users.User

	err := withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, `
			SELECT id, username, email, password_hash, created_at
			FROM users
			WHERE id = $1
		`, id)

		var err error
		u, err = scanUser(row)
		return mapErr(err)
	})
	return u, err
}

func (r *UsersRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool

	err := withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) OR username = $2
			)
		`, email, username)

		return mapErr(row.Scan(&exists))
	})
	return exists, err
}

func scanUser(s rowScanner) (users.User, error) {
	var u users.User
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return users.User{}, err
	}
	return u, nil
}
