package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/Pedro-L-Lopes/AlunosApi/internal/model"
	"github.com/Pedro-L-Lopes/AlunosApi/internal/repository"
)

func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("ALUNOSAPI_TEST_DB")
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		t.Skip("ALUNOSAPI_TEST_DB or DATABASE_URL not set")
		return nil
	}
	pool, err := NewPool(context.Background(), url)
	if err != nil {
		t.Skipf("db unavailable: %v", err)
		return nil
	}
	t.Cleanup(pool.Close)

	ctx := context.Background()
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS alunos (
			id BIGSERIAL PRIMARY KEY,
			nome TEXT NOT NULL,
			email TEXT NOT NULL,
			idade INT NOT NULL DEFAULT 0
		)
	`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS credentials (
			email TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	require.NoError(t, err)
	return pool
}

func TestAlunoLifecycle(t *testing.T) {
	pool := openTestDB(t)
	if pool == nil {
		return
	}
	store := NewStore(pool)
	ctx := context.Background()

	aluno := model.Aluno{Nome: "Ana Souza", Email: "ana@x.com", Idade: 21}
	require.NoError(t, store.Create(ctx, &aluno))
	require.NotZero(t, aluno.ID)
	defer func() { _ = store.Delete(ctx, aluno.ID) }()

	got, err := store.FindByID(ctx, aluno.ID)
	require.NoError(t, err)
	require.Equal(t, aluno, got)

	found, err := store.FindByNome(ctx, "souza")
	require.NoError(t, err)
	require.NotEmpty(t, found)

	aluno.Idade = 22
	require.NoError(t, store.Update(ctx, aluno))

	got, err = store.FindByID(ctx, aluno.ID)
	require.NoError(t, err)
	require.Equal(t, 22, got.Idade)

	require.NoError(t, store.Delete(ctx, aluno.ID))
	_, err = store.FindByID(ctx, aluno.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateAndDeleteMissingAluno(t *testing.T) {
	pool := openTestDB(t)
	if pool == nil {
		return
	}
	store := NewStore(pool)
	ctx := context.Background()

	err := store.Update(ctx, model.Aluno{ID: -1, Nome: "Ghost", Email: "g@x.com"})
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, store.Delete(ctx, -1), repository.ErrNotFound)
}

func TestCredentialUniqueness(t *testing.T) {
	pool := openTestDB(t)
	if pool == nil {
		return
	}
	store := NewStore(pool)
	ctx := context.Background()

	email := fmt.Sprintf("user.%d@example.local", time.Now().UnixNano())
	require.NoError(t, store.CreateCredential(ctx, email, "hash"))
	defer func() { _, _ = pool.Exec(ctx, `DELETE FROM credentials WHERE email = $1`, email) }()

	require.ErrorIs(t, store.CreateCredential(ctx, email, "other"), repository.ErrDuplicateEmail)

	cred, err := store.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.Equal(t, "hash", cred.PasswordHash)

	_, err = store.FindByEmail(ctx, "missing@example.local")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
