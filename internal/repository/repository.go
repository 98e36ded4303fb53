// Package repository defines the storage contracts consumed by the service
// layer. Backings are swappable: postgres for production, memory for tests.
package repository

import (
	"context"
	"errors"

	"github.com/Pedro-L-Lopes/AlunosApi/internal/model"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// AlunoRepository persists student records. Name-match semantics belong to
// the implementation, not to callers.
type AlunoRepository interface {
	ListAlunos(ctx context.Context) ([]model.Aluno, error)
	FindByNome(ctx context.Context, nome string) ([]model.Aluno, error)
	FindByID(ctx context.Context, id int64) (model.Aluno, error)
	Create(ctx context.Context, aluno *model.Aluno) error
	Update(ctx context.Context, aluno model.Aluno) error
	Delete(ctx context.Context, id int64) error
}

// CredentialStore owns login identities and their password hashes.
type CredentialStore interface {
	CreateCredential(ctx context.Context, email, passwordHash string) error
	FindByEmail(ctx context.Context, email string) (model.Credential, error)
}
