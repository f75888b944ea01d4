package authpw

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"insintesi/api/internal/store"
)

type fakeLeadStore struct {
	leads map[string]store.Lead
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{leads: map[string]store.Lead{}}
}

func (f *fakeLeadStore) GetLeadByEmail(_ context.Context, email string) (store.Lead, error) {
	lead, ok := f.leads[email]
	if !ok {
		return store.Lead{}, sql.ErrNoRows
	}
	return lead, nil
}

func (f *fakeLeadStore) CreateLead(_ context.Context, lead store.Lead) error {
	f.leads[lead.Email] = lead
	return nil
}

func TestRegisterAndSignIn(t *testing.T) {
	svc := NewService(newFakeLeadStore())
	ctx := context.Background()

	lead, err := svc.Register(ctx, RegisterRequest{
		Name:     "Avery",
		Email:    "Avery@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if lead.Email != "avery@example.com" {
		t.Fatalf("expected lowercased email, got %q", lead.Email)
	}
	if lead.PasswordHash == "correct-horse" {
		t.Fatal("password stored in plain text")
	}

	signedIn, err := svc.SignIn(ctx, "avery@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if signedIn.ID != lead.ID {
		t.Fatalf("expected lead %s, got %s", lead.ID, signedIn.ID)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewService(newFakeLeadStore())
	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Avery",
		Email:    "avery@example.com",
		Password: "short",
	})
	if err == nil {
		t.Fatal("expected error for short password")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeLeadStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Name: "Avery", Email: "avery@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, err := svc.Register(ctx, RegisterRequest{Name: "Avery Again", Email: "avery@example.com", Password: "battery-staple"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	svc := NewService(newFakeLeadStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Name: "Avery", Email: "avery@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, err := svc.SignIn(ctx, "avery@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
