//go:build !integration

package model_test

import (
	"errors"
	"testing"

	"telegram-registration-bot/internal/domain"
	"telegram-registration-bot/internal/domain/model"
)

func TestNewRegistrant(t *testing.T) {
	t.Run("should capture the identity fields", func(t *testing.T) {
		r, err := model.NewRegistrant(42, "alice", "Alice")
		if err != nil {
			t.Fatalf("NewRegistrant failed: %v", err)
		}
		if r.TelegramID != 42 || r.Username != "alice" || r.FirstName != "Alice" {
			t.Errorf("unexpected registrant: %+v", r)
		}
		if r.RegisteredAt.IsZero() {
			t.Error("expected RegisteredAt to be stamped")
		}
	})

	t.Run("should reject non-positive ids", func(t *testing.T) {
		for _, id := range []int64{0, -1} {
			if _, err := model.NewRegistrant(id, "alice", "Alice"); !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("id %d: expected ErrInvalidArgument, got %v", id, err)
			}
		}
	})

	t.Run("should substitute a placeholder first name", func(t *testing.T) {
		r, err := model.NewRegistrant(42, "", "")
		if err != nil {
			t.Fatalf("NewRegistrant failed: %v", err)
		}
		if r.FirstName != "N/A" {
			t.Errorf("expected placeholder first name, got %q", r.FirstName)
		}
		if r.Username != "" {
			t.Errorf("expected empty username to stay empty, got %q", r.Username)
		}
	})
}

func TestNewAdminLogEntry(t *testing.T) {
	t.Run("should build a valid entry", func(t *testing.T) {
		e, err := model.NewAdminLogEntry(1, model.ActionCountUsers, "Returned count: 3")
		if err != nil {
			t.Fatalf("NewAdminLogEntry failed: %v", err)
		}
		if e.AdminTelegramID != 1 || e.Action != model.ActionCountUsers || e.Details != "Returned count: 3" {
			t.Errorf("unexpected entry: %+v", e)
		}
	})

	t.Run("should reject a non-positive actor", func(t *testing.T) {
		if _, err := model.NewAdminLogEntry(0, model.ActionCountUsers, ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should reject an empty action", func(t *testing.T) {
		if _, err := model.NewAdminLogEntry(1, "", "details"); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
