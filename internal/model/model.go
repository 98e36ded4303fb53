package model

import "time"

// Aluno is the managed student record. The id is assigned by the
// repository on creation and immutable afterwards.
type Aluno struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Idade int    `json:"idade"`
}

// Credential is a login identity owned by the credential store.
type Credential struct {
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserToken is the result of a successful login or registration.
type UserToken struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
}
