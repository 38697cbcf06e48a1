//go:build !integration

package telegram

import (
	"strings"
	"testing"

	"telegram-registration-bot/internal/domain/model"
)

func TestRegistrationPrompt(t *testing.T) {
	t.Run("should echo id, handle and first name", func(t *testing.T) {
		got := registrationPrompt(42, "alice", "Alice")
		for _, want := range []string{"Hello Alice!", "`42`", "`@alice`", "`Alice`"} {
			if !strings.Contains(got, want) {
				t.Errorf("prompt missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("should fall back when username and first name are absent", func(t *testing.T) {
		got := registrationPrompt(7, "", "")
		if !strings.Contains(got, "Hello there!") {
			t.Errorf("expected greeting fallback, got:\n%s", got)
		}
		if !strings.Contains(got, "`Not available`") {
			t.Errorf("expected handle fallback, got:\n%s", got)
		}
		if !strings.Contains(got, "`Not provided`") {
			t.Errorf("expected name fallback, got:\n%s", got)
		}
	})
}

func TestFormatUserList(t *testing.T) {
	cases := []struct {
		name string
		refs []model.RegistrantRef
		want string
	}{
		{
			name: "mixed handles",
			refs: []model.RegistrantRef{
				{TelegramID: 42, Username: "alice"},
				{TelegramID: 7},
			},
			want: "Registered Users:\n- 42 (@alice)\n- 7",
		},
		{
			name: "single user without handle",
			refs: []model.RegistrantRef{{TelegramID: 7}},
			want: "Registered Users:\n- 7",
		},
		{
			name: "empty",
			refs: nil,
			want: "Registered Users:",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatUserList(tc.refs); got != tc.want {
				t.Errorf("unexpected rendering:\n got: %q\nwant: %q", got, tc.want)
			}
		})
	}
}

func TestRegisteredConfirmation(t *testing.T) {
	if got := registeredConfirmation("Alice"); !strings.Contains(got, "Thanks for registering, Alice!") {
		t.Errorf("unexpected confirmation: %q", got)
	}
	if got := registeredConfirmation(""); !strings.Contains(got, "Thanks for registering, there!") {
		t.Errorf("unexpected fallback confirmation: %q", got)
	}
}

func TestHelpMessage(t *testing.T) {
	plain := helpMessage(false)
	if strings.Contains(plain, "Admin Commands") {
		t.Error("non-admin help must not mention admin commands")
	}
	admin := helpMessage(true)
	for _, want := range []string{"/count", "/list", "/notify"} {
		if !strings.Contains(admin, want) {
			t.Errorf("admin help missing %q", want)
		}
	}
}
