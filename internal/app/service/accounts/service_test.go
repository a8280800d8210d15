package accounts_test

import (
	"context"
	"testing"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/accounts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/password"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/testutil/memstore"
	"go.uber.org/zap"
)

func newService() (*accounts.Service, *memstore.Accounts) {
	repo := memstore.NewAccounts()
	return accounts.New(repo, zap.NewNop()), repo
}

func register(t *testing.T, svc *accounts.Service, username string) *models.Account {
	t.Helper()
	a, err := svc.Register(context.Background(), accounts.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register(%q) failed: %v", username, err)
	}
	return a
}

func TestRegister(t *testing.T) {
	svc, _ := newService()

	a, err := svc.Register(context.Background(), accounts.RegisterInput{
		Username: "Torchbearer",
		Email:    "Torch@Example.COM",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if a.Username != "Torchbearer" {
		t.Errorf("Username: got %q, want %q", a.Username, "Torchbearer")
	}
	if a.Email != "torch@example.com" {
		t.Errorf("Email: got %q, want %q", a.Email, "torch@example.com")
	}
	if a.DisplayName != "Torchbearer" {
		t.Errorf("DisplayName should default to username, got %q", a.DisplayName)
	}
	if a.Role != models.RolePlayer {
		t.Errorf("Role: got %q, want %q", a.Role, models.RolePlayer)
	}
	if !a.IsActive {
		t.Error("expected new account to be active")
	}
	if a.PasswordHash == "" || a.PasswordHash == "longenough" {
		t.Error("password must be stored hashed")
	}
	if a.ID.IsZero() {
		t.Error("expected an assigned id")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newService()
	register(t, svc, "delver")

	// Same username in different casing still collides.
	_, err := svc.Register(context.Background(), accounts.RegisterInput{
		Username: "DELVER",
		Email:    "other@example.com",
		Password: "longenough",
	})
	if err != accounts.ErrDuplicateUsername {
		t.Errorf("got %v, want ErrDuplicateUsername", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newService()
	register(t, svc, "delver")

	_, err := svc.Register(context.Background(), accounts.RegisterInput{
		Username: "someoneelse",
		Email:    "Delver@Example.com",
		Password: "longenough",
	})
	if err != accounts.ErrDuplicateEmail {
		t.Errorf("got %v, want ErrDuplicateEmail", err)
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Register(context.Background(), accounts.RegisterInput{
		Username: "delver",
		Email:    "not-an-email",
		Password: "longenough",
	})
	if err != accounts.ErrInvalidEmail {
		t.Errorf("got %v, want ErrInvalidEmail", err)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Register(context.Background(), accounts.RegisterInput{
		Username: "delver",
		Email:    "delver@example.com",
		Password: "short",
	})
	if err != password.ErrTooShort {
		t.Errorf("got %v, want password.ErrTooShort", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newService()
	register(t, svc, "delver")

	a, err := svc.Login(context.Background(), "delver", "correct horse battery")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if a.Username != "delver" {
		t.Errorf("Username: got %q, want %q", a.Username, "delver")
	}
	if a.LastLogin == nil {
		t.Error("expected LastLogin to be stamped")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newService()
	register(t, svc, "delver")

	_, err := svc.Login(context.Background(), "delver", "wrong password")
	if err != accounts.ErrInvalidCredentials {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Login(context.Background(), "nobody", "whatever password")
	if err != accounts.ErrInvalidCredentials {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newService()
	a := register(t, svc, "delver")

	display := "The Delver"
	avatar := "https://cdn.example.com/delver.png"
	updated, err := svc.UpdateProfile(context.Background(), a.ID, accounts.ProfileUpdate{
		DisplayName: &display,
		AvatarURL:   &avatar,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.DisplayName != "The Delver" {
		t.Errorf("DisplayName: got %q, want %q", updated.DisplayName, "The Delver")
	}
	if updated.AvatarURL != avatar {
		t.Errorf("AvatarURL: got %q, want %q", updated.AvatarURL, avatar)
	}

	// Partial update leaves the other field alone.
	newAvatar := "https://cdn.example.com/delver2.png"
	updated, err = svc.UpdateProfile(context.Background(), a.ID, accounts.ProfileUpdate{AvatarURL: &newAvatar})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.DisplayName != "The Delver" {
		t.Errorf("DisplayName changed unexpectedly: got %q", updated.DisplayName)
	}
	if updated.AvatarURL != newAvatar {
		t.Errorf("AvatarURL: got %q, want %q", updated.AvatarURL, newAvatar)
	}
}

func TestSearch(t *testing.T) {
	svc, _ := newService()
	register(t, svc, "delver")
	register(t, svc, "deepdelver")
	register(t, svc, "mapmaker")

	found, err := svc.Search(context.Background(), "delv", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("got %d results, want 2", len(found))
	}
	for _, a := range found {
		if a.Username != "delver" && a.Username != "deepdelver" {
			t.Errorf("unexpected result %q", a.Username)
		}
	}
}

func TestSearch_MetacharactersMatchLiterally(t *testing.T) {
	svc, _ := newService()
	a := register(t, svc, "delver")
	register(t, svc, "mapmaker")

	display := "The (Deep) Delver"
	if _, err := svc.UpdateProfile(context.Background(), a.ID, accounts.ProfileUpdate{DisplayName: &display}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	found, err := svc.Search(context.Background(), "(deep)", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(found) != 1 || found[0].Username != "delver" {
		t.Fatalf("got %v, want the single account with parentheses in its display name", found)
	}

	// A lone metacharacter is a literal, not a wildcard.
	found, err = svc.Search(context.Background(), ".", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("got %d results for %q, want 0", len(found), ".")
	}
}
