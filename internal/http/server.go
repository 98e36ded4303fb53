package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Pedro-L-Lopes/AlunosApi/internal/auth"
	"github.com/Pedro-L-Lopes/AlunosApi/internal/config"
	"github.com/Pedro-L-Lopes/AlunosApi/internal/model"
	"github.com/Pedro-L-Lopes/AlunosApi/internal/repository"
	"github.com/Pedro-L-Lopes/AlunosApi/internal/service"
)

type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	alunos   *service.AlunoService
	accounts *service.AccountService
	validate *validator.Validate
}

func NewServer(cfg config.Config, logger *slog.Logger, alunos *service.AlunoService, accounts *service.AccountService) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		alunos:   alunos,
		accounts: accounts,
		validate: validator.New(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.errorMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/account", func(r chi.Router) {
		r.Post("/createuser", s.handleCreateUser)
		r.Post("/loginuser", s.handleLoginUser)
	})

	r.Route("/api/alunos", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/", s.handleGetAlunos)
		r.Get("/alunosporname", s.handleGetAlunosByNome)
		r.Get("/{id}", s.handleGetAluno)
		r.Post("/", s.handleCreateAluno)
		r.Put("/{id}", s.handleUpdateAluno)
		r.Delete("/{id}", s.handleDeleteAluno)
	})

	return r
}

// Account

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid registration")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if req.Password != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "passwords do not match")
		return
	}

	if err := s.accounts.RegisterUser(r.Context(), req.Email, req.Password); err != nil {
		s.logger.Warn("registration rejected", slog.String("email", req.Email), slog.Any("error", err))
		writeError(w, http.StatusBadRequest, "invalid registration")
		return
	}

	s.issueToken(w, req.Email)
}

func (s *Server) handleLoginUser(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid login")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := s.accounts.Authenticate(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, http.StatusBadRequest, "invalid login")
		return
	}

	s.issueToken(w, req.Email)
}

// issueToken generates a fresh token for an already verified identity.
// Registration auto-logs-in, so both account handlers end here.
func (s *Server) issueToken(w http.ResponseWriter, email string) {
	token, expiration, err := auth.NewAccessToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTAudience, s.cfg.TokenTTL, email)
	if err != nil {
		s.logger.Error("token generation failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	writeJSON(w, http.StatusOK, model.UserToken{Token: token, Expiration: expiration})
}

// Alunos

type alunoRequest struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome" validate:"required"`
	Email string `json:"email" validate:"required"`
	Idade int    `json:"idade"`
}

func (s *Server) handleGetAlunos(w http.ResponseWriter, r *http.Request) {
	alunos, err := s.alunos.GetAlunos(r.Context())
	if err != nil {
		s.logger.Error("list alunos failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, alunos)
}

func (s *Server) handleGetAlunosByNome(w http.ResponseWriter, r *http.Request) {
	nome := r.URL.Query().Get("nome")

	alunos, err := s.alunos.GetAlunosByNome(r.Context(), nome)
	if err != nil {
		s.logger.Error("search alunos failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if len(alunos) == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no results for %s", nome))
		return
	}
	writeJSON(w, http.StatusOK, alunos)
}

func (s *Server) handleGetAluno(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	aluno, err := s.alunos.GetAluno(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no student with id %d", id))
			return
		}
		s.logger.Error("get aluno failed", slog.Int64("id", id), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, aluno)
}

func (s *Server) handleCreateAluno(w http.ResponseWriter, r *http.Request) {
	var req alunoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	aluno := model.Aluno{Nome: req.Nome, Email: req.Email, Idade: req.Idade}
	if err := s.alunos.CreateAluno(r.Context(), &aluno); err != nil {
		s.logger.Error("create aluno failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	if claims := claimsFromContext(r.Context()); claims != nil {
		s.logger.Info("aluno created", slog.Int64("id", aluno.ID), slog.String("by", claims.Email))
	}

	w.Header().Set("Location", fmt.Sprintf("/api/alunos/%d", aluno.ID))
	writeJSON(w, http.StatusCreated, aluno)
}

func (s *Server) handleUpdateAluno(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req alunoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID != id {
		writeError(w, http.StatusNotFound, fmt.Sprintf("student with id %d not found", id))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	aluno := model.Aluno{ID: req.ID, Nome: req.Nome, Email: req.Email, Idade: req.Idade}
	if err := s.alunos.UpdateAluno(r.Context(), aluno); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("student with id %d not found", id))
			return
		}
		s.logger.Error("update aluno failed", slog.Int64("id", id), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeText(w, http.StatusOK, fmt.Sprintf("student with id %d updated successfully", id))
}

func (s *Server) handleDeleteAluno(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	aluno, err := s.alunos.GetAluno(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("student with id %d not found!", id))
			return
		}
		s.logger.Error("get aluno failed", slog.Int64("id", id), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	if err := s.alunos.DeleteAluno(r.Context(), aluno); err != nil {
		s.logger.Error("delete aluno failed", slog.Int64("id", id), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if claims := claimsFromContext(r.Context()); claims != nil {
		s.logger.Info("aluno deleted", slog.Int64("id", id), slog.String("by", claims.Email))
	}
	writeText(w, http.StatusOK, fmt.Sprintf("student with id %d deleted successfully", id))
}

// Auth

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := auth.ParseToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTAudience, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type claimsKey struct{}

func claimsFromContext(ctx context.Context) *auth.Claims {
	value := ctx.Value(claimsKey{})
	claims, _ := value.(*auth.Claims)
	return claims
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Helpers

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fields[fieldErr.Field()] = fieldErr.Tag()
		}
	}
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation failed",
		"fields": fields,
	})
}
