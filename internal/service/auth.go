package service

import (
	"context"
	"strings"

	"socialtrackr/internal/model"
	"socialtrackr/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

type AuthService struct {
	accounts repository.AccountRepo
}

func NewAuthService(accounts repository.AccountRepo) *AuthService {
	return &AuthService{accounts: accounts}
}

// Register creates an account and logs it in. The email is the account key
// and is normalized to lower case before any lookup.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.Account, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || len(password) < minPasswordLen {
		return nil, model.NewValidationError("name, email and a password of at least 6 characters are required")
	}

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.NewDuplicateAccountError(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &model.Account{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     name,
		Password: string(hash),
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Account, error) {
	a, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, model.NewInvalidCredentialsError()
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) != nil {
		return nil, model.NewInvalidCredentialsError()
	}
	return a, nil
}

// Get looks an account up by email without credential checks; used for
// token-authenticated requests.
func (s *AuthService) Get(ctx context.Context, email string) (*model.Account, error) {
	return s.accounts.FindByEmail(ctx, normalizeEmail(email))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
