package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"secure-petstore/internal/domain/pets"
	"secure-petstore/internal/ports/storage"
)

const petColumns = `id, name, species, age, breed, description, created_at, updated_at`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	var out []pets.Pet

	err := withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, `
			SELECT `+petColumns+`
			FROM pets
			ORDER BY created_at DESC, id DESC
		`)
		if err != nil {
			return mapErr(err)
		}
		defer rows.Close()

		out = make([]pets.Pet, 0)
		for rows.Next() {
			p, err := scanPet(rows)
			if err != nil {
				return mapErr(err)
			}
			out = append(out, p)
		}
		return mapErr(rows.Err())
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	var p pets.Pet

	err := withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, `
			SELECT `+petColumns+`
			FROM pets
			WHERE id = $1
		`, id)

		var err error
		p, err = scanPet(row)
		return mapErr(err)
	})
	return p, err
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	var out pets.Pet

	err := withInsertRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, `
			INSERT INTO pets (name, species, age, breed, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+petColumns,
			p.Name,
			p.Species,
			p.Age,
			toNullString(p.Breed),
			toNullString(p.Description),
			p.CreatedAt,
			p.UpdatedAt,
		)

		var err error
		out, err = scanPet(row)
		return mapErr(err)
	})
	return out, err
}

// Update arma un SET dinámico con los campos presentes en patch.
// Los nombres de columna salen de una lista fija, nunca del input.
func (r *PetsRepo) Update(ctx context.Context, id int64, patch pets.Patch, now time.Time) (pets.Pet, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Species != nil {
		add("species", *patch.Species)
	}
	if patch.Age != nil {
		add("age", *patch.Age)
	}
	if patch.Breed != nil {
		add("breed", *patch.Breed)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	add("updated_at", now)

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE pets
		SET %s
		WHERE id = $%d
		RETURNING %s`, strings.Join(sets, ", "), len(args), petColumns)

	var out pets.Pet
	err := withRetry(ctx, func(ctx context.Context) error {
		var err error
		out, err = scanPet(r.db.QueryRowContext(ctx, query, args...))
		return mapErr(err)
	})
	return out, err
}

func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	return withRetry(ctx, func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
		if err != nil {
			return mapErr(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return mapErr(err)
		}
		if n == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(s rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var breed, description sql.NullString

	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.Age,
		&breed,
		&description,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Breed = fromNullString(breed)
	p.Description = fromNullString(description)
	return p, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
