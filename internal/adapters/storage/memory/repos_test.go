package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"secure-petstore/internal/domain/pets"
	"secure-petstore/internal/domain/users"
	"secure-petstore/internal/ports/storage"
)

func TestPetRepo_CreateIgnoresClientID(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	a, err := repo.Create(ctx, pets.Pet{ID: 99, Name: "Rex", Species: "Dog", Age: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := repo.Create(ctx, pets.Pet{ID: 99, Name: "Tom", Species: "Cat", Age: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", a.ID, b.ID)
	}
}

func TestPetRepo_ListNewestFirst(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"old", "mid", "new"} {
		at := base.Add(time.Duration(i) * time.Hour)
		if _, err := repo.Create(ctx, pets.Pet{Name: name, Species: "Dog", CreatedAt: at, UpdatedAt: at}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 || items[0].Name != "new" || items[2].Name != "old" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestPetRepo_UpdateAndDeleteMissing(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	age := 4
	if _, err := repo.Update(ctx, 7, pets.Patch{Age: &age}, time.Now()); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, 7); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPetRepo_UpdateRefreshesUpdatedAt(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	p, err := repo.Create(ctx, pets.Pet{Name: "Rex", Species: "Dog", Age: 3, CreatedAt: created, UpdatedAt: created})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	later := created.Add(time.Hour)
	age := 4
	got, err := repo.Update(ctx, p.ID, pets.Patch{Age: &age}, later)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Age != 4 || got.Name != "Rex" || !got.UpdatedAt.Equal(later) || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected pet after update: %+v", got)
	}
}

func TestUserRepo_UniqueEmailAndUsername(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	u, err := repo.Create(ctx, users.User{Username: "alice123", Email: "alice@example.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID != 1 || u.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := repo.Create(ctx, users.User{Username: "bob", Email: "ALICE@example.com"}); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict on email, got %v", err)
	}
	if _, err := repo.Create(ctx, users.User{Username: "alice123", Email: "other@example.com"}); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict on username, got %v", err)
	}

	exists, err := repo.ExistsByEmailOrUsername(ctx, "nobody@example.com", "alice123")
	if err != nil || !exists {
		t.Fatalf("expected exists, got %v %v", exists, err)
	}

	if _, err := repo.FindByID(ctx, 42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil || got.ID != u.ID {
		t.Fatalf("find by email: %+v %v", got, err)
	}
}
