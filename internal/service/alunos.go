package service

import (
	"context"

	"github.com/Pedro-L-Lopes/AlunosApi/internal/model"
	"github.com/Pedro-L-Lopes/AlunosApi/internal/repository"
)

// AlunoService is a thin pass-through over the repository. Match semantics,
// id assignment and race resolution all belong to the backing store.
type AlunoService struct {
	repo repository.AlunoRepository
}

func NewAlunoService(repo repository.AlunoRepository) *AlunoService {
	return &AlunoService{repo: repo}
}

func (s *AlunoService) GetAlunos(ctx context.Context) ([]model.Aluno, error) {
	return s.repo.ListAlunos(ctx)
}

func (s *AlunoService) GetAlunosByNome(ctx context.Context, nome string) ([]model.Aluno, error) {
	return s.repo.FindByNome(ctx, nome)
}

func (s *AlunoService) GetAluno(ctx context.Context, id int64) (model.Aluno, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AlunoService) CreateAluno(ctx context.Context, aluno *model.Aluno) error {
	return s.repo.Create(ctx, aluno)
}

// UpdateAluno assumes the caller already checked the id against the
// addressed resource.
func (s *AlunoService) UpdateAluno(ctx context.Context, aluno model.Aluno) error {
	return s.repo.Update(ctx, aluno)
}

// DeleteAluno assumes the caller already verified the record exists.
func (s *AlunoService) DeleteAluno(ctx context.Context, aluno model.Aluno) error {
	return s.repo.Delete(ctx, aluno.ID)
}
