// Package authpw provides email/password authentication for team leads.
package authpw

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"insintesi/api/internal/store"
	"insintesi/api/internal/util"
)

// Service provides email/password authentication
type Service struct {
	store LeadStore
}

// LeadStore defines the storage interface for auth
type LeadStore interface {
	GetLeadByEmail(ctx context.Context, email string) (store.Lead, error)
	CreateLead(ctx context.Context, lead store.Lead) error
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// NewService creates a new auth service
func NewService(store LeadStore) *Service {
	return &Service{store: store}
}

// RegisterRequest contains registration parameters
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new team lead account
func (s *Service) Register(ctx context.Context, req RegisterRequest) (store.Lead, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return store.Lead{}, errors.New("name, email, and password are required")
	}
	if len(req.Password) < 8 {
		return store.Lead{}, errors.New("password must be at least 8 characters")
	}

	if _, err := s.store.GetLeadByEmail(ctx, email); err == nil {
		return store.Lead{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return store.Lead{}, fmt.Errorf("hash password: %w", err)
	}

	lead := store.Lead{
		ID:           util.NewID("lead"),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateLead(ctx, lead); err != nil {
		return store.Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// SignIn authenticates a team lead by email and password
func (s *Service) SignIn(ctx context.Context, email, password string) (store.Lead, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return store.Lead{}, ErrInvalidCredentials
	}

	lead, err := s.store.GetLeadByEmail(ctx, email)
	if err != nil {
		return store.Lead{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(lead.PasswordHash), []byte(password)); err != nil {
		return store.Lead{}, ErrInvalidCredentials
	}

	return lead, nil
}
