package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pedro-L-Lopes/AlunosApi/internal/model"
	"github.com/Pedro-L-Lopes/AlunosApi/internal/repository"
)

// NewPool opens a pgx connection pool and verifies it with a ping.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Store implements both repository contracts over postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) ListAlunos(ctx context.Context) ([]model.Aluno, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, nome, email, idade
		FROM alunos
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlunos(rows)
}

func (s *Store) FindByNome(ctx context.Context, nome string) ([]model.Aluno, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, nome, email, idade
		FROM alunos
		WHERE nome ILIKE '%' || $1 || '%'
		ORDER BY id
	`, nome)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlunos(rows)
}

func (s *Store) FindByID(ctx context.Context, id int64) (model.Aluno, error) {
	var aluno model.Aluno
	row := s.pool.QueryRow(ctx, `
		SELECT id, nome, email, idade
		FROM alunos
		WHERE id = $1
	`, id)
	err := row.Scan(&aluno.ID, &aluno.Nome, &aluno.Email, &aluno.Idade)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Aluno{}, repository.ErrNotFound
	}
	return aluno, err
}

func (s *Store) Create(ctx context.Context, aluno *model.Aluno) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO alunos (nome, email, idade)
		VALUES ($1, $2, $3)
		RETURNING id
	`, aluno.Nome, aluno.Email, aluno.Idade)
	return row.Scan(&aluno.ID)
}

func (s *Store) Update(ctx context.Context, aluno model.Aluno) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE alunos
		SET nome = $1, email = $2, idade = $3
		WHERE id = $4
	`, aluno.Nome, aluno.Email, aluno.Idade, aluno.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM alunos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) CreateCredential(ctx context.Context, email, passwordHash string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO credentials (email, password_hash, created_at)
		VALUES ($1, $2, $3)
	`, email, passwordHash, time.Now().UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (s *Store) FindByEmail(ctx context.Context, email string) (model.Credential, error) {
	var cred model.Credential
	row := s.pool.QueryRow(ctx, `
		SELECT email, password_hash, created_at
		FROM credentials
		WHERE email = $1
	`, email)
	err := row.Scan(&cred.Email, &cred.PasswordHash, &cred.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Credential{}, repository.ErrNotFound
	}
	return cred, err
}

func scanAlunos(rows pgx.Rows) ([]model.Aluno, error) {
	alunos := make([]model.Aluno, 0)
	for rows.Next() {
		var aluno model.Aluno
		if err := rows.Scan(&aluno.ID, &aluno.Nome, &aluno.Email, &aluno.Idade); err != nil {
			return nil, err
		}
		alunos = append(alunos, aluno)
	}
	return alunos, rows.Err()
}
