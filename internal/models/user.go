package models

import (
	"time"

	"github.com/google/uuid"
)

// User — учётная запись читателя.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenPair — пара access/refresh токенов, выдаваемая при входе.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	// ExpiresAt — срок действия access-токена (UTC).
	ExpiresAt time.Time `json:"expiresAt"`
}
