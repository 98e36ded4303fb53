// Package memory provides in-process repository backings used by tests and
// local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Pedro-L-Lopes/AlunosApi/internal/model"
	"github.com/Pedro-L-Lopes/AlunosApi/internal/repository"
)

type AlunoRepo struct {
	mu     sync.Mutex
	nextID int64
	alunos map[int64]model.Aluno
}

func NewAlunoRepo() *AlunoRepo {
	return &AlunoRepo{
		nextID: 1,
		alunos: make(map[int64]model.Aluno),
	}
}

func (r *AlunoRepo) ListAlunos(_ context.Context) ([]model.Aluno, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(func(model.Aluno) bool { return true }), nil
}

func (r *AlunoRepo) FindByNome(_ context.Context, nome string) ([]model.Aluno, error) {
	needle := strings.ToLower(nome)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(func(aluno model.Aluno) bool {
		return strings.Contains(strings.ToLower(aluno.Nome), needle)
	}), nil
}

func (r *AlunoRepo) FindByID(_ context.Context, id int64) (model.Aluno, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	aluno, ok := r.alunos[id]
	if !ok {
		return model.Aluno{}, repository.ErrNotFound
	}
	return aluno, nil
}

func (r *AlunoRepo) Create(_ context.Context, aluno *model.Aluno) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	aluno.ID = r.nextID
	r.nextID++
	r.alunos[aluno.ID] = *aluno
	return nil
}

func (r *AlunoRepo) Update(_ context.Context, aluno model.Aluno) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.alunos[aluno.ID]; !ok {
		return repository.ErrNotFound
	}
	r.alunos[aluno.ID] = aluno
	return nil
}

func (r *AlunoRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.alunos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.alunos, id)
	return nil
}

// Len reports the number of stored records. Test helper.
func (r *AlunoRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alunos)
}

func (r *AlunoRepo) snapshot(keep func(model.Aluno) bool) []model.Aluno {
	alunos := make([]model.Aluno, 0, len(r.alunos))
	for _, aluno := range r.alunos {
		if keep(aluno) {
			alunos = append(alunos, aluno)
		}
	}
	sort.Slice(alunos, func(i, j int) bool { return alunos[i].ID < alunos[j].ID })
	return alunos
}

type CredentialStore struct {
	mu    sync.Mutex
	creds map[string]model.Credential
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{creds: make(map[string]model.Credential)}
}

func (s *CredentialStore) CreateCredential(_ context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.creds[email]; ok {
		return repository.ErrDuplicateEmail
	}
	s.creds[email] = model.Credential{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	return nil
}

func (s *CredentialStore) FindByEmail(_ context.Context, email string) (model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cred, ok := s.creds[email]
	if !ok {
		return model.Credential{}, repository.ErrNotFound
	}
	return cred, nil
}

// Len reports the number of stored identities. Test helper.
func (s *CredentialStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.creds)
}
