//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"telegram-registration-bot/internal/domain"
	"telegram-registration-bot/internal/domain/model"
)

func TestRegistrantRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewRegistrantRepo(testPool)
	ctx := context.Background()

	t.Run("should insert and find a registrant", func(t *testing.T) {
		cleanup(t)

		reg, err := model.NewRegistrant(42, "alice", "Alice")
		if err != nil {
			t.Fatalf("model.NewRegistrant() failed: %v", err)
		}
		if err := repo.Insert(ctx, reg); err != nil {
			t.Fatalf("Failed to insert registrant: %v", err)
		}

		exists, err := repo.Exists(ctx, 42)
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if !exists {
			t.Error("expected registrant 42 to exist after insert")
		}

		exists, err = repo.Exists(ctx, 99)
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if exists {
			t.Error("expected registrant 99 to be absent")
		}

		n, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 1 {
			t.Errorf("expected count 1, got %d", n)
		}
	})

	t.Run("should reject a duplicate insert", func(t *testing.T) {
		cleanup(t)

		first, _ := model.NewRegistrant(42, "alice", "Alice")
		if err := repo.Insert(ctx, first); err != nil {
			t.Fatalf("Failed to insert registrant: %v", err)
		}

		// Same id again, simulating the re-check/insert race: the PK must
		// arbitrate and surface the sentinel.
		second, _ := model.NewRegistrant(42, "alice", "Alice")
		if err := repo.Insert(ctx, second); !errors.Is(err, domain.ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}

		n, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 1 {
			t.Errorf("expected count to stay 1, got %d", n)
		}
	})

	t.Run("should list in registration order with empty usernames preserved", func(t *testing.T) {
		cleanup(t)

		a, _ := model.NewRegistrant(42, "alice", "Alice")
		b, _ := model.NewRegistrant(7, "", "Bob")
		// Force distinct timestamps so the order is deterministic.
		b.RegisteredAt = a.RegisteredAt.Add(time.Second)
		if err := repo.Insert(ctx, a); err != nil {
			t.Fatalf("Failed to insert registrant: %v", err)
		}
		if err := repo.Insert(ctx, b); err != nil {
			t.Fatalf("Failed to insert registrant: %v", err)
		}

		refs, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(refs) != 2 {
			t.Fatalf("expected 2 refs, got %d", len(refs))
		}
		if refs[0].TelegramID != 42 || refs[0].Username != "alice" {
			t.Errorf("unexpected first ref: %+v", refs[0])
		}
		// The empty username is stored as NULL and must come back empty.
		if refs[1].TelegramID != 7 || refs[1].Username != "" {
			t.Errorf("unexpected second ref: %+v", refs[1])
		}
	})
}
