package service

import (
	"context"
	"errors"

	"github.com/Pedro-L-Lopes/AlunosApi/internal/crypto"
	"github.com/Pedro-L-Lopes/AlunosApi/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountService orchestrates registration and login against the credential
// store. Token issuance stays with the HTTP layer.
type AccountService struct {
	store repository.CredentialStore
}

func NewAccountService(store repository.CredentialStore) *AccountService {
	return &AccountService{store: store}
}

// RegisterUser creates a new identity. Store rejections (duplicate email and
// the like) are propagated without interpretation.
func (s *AccountService) RegisterUser(ctx context.Context, email, password string) error {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.CreateCredential(ctx, email, hash)
}

// Authenticate checks the email/password pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) error {
	cred, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return ErrInvalidCredentials
	}
	if err := crypto.CheckPassword(cred.PasswordHash, password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
