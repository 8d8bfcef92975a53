// internal/model/security.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LoginFailure is an append-only audit row. Rows are only ever counted and
// filtered by time window, never mutated.
type LoginFailure struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email         string     `gorm:"type:text;not null" json:"email"`
	IPAddress     string     `gorm:"type:text;not null" json:"ip_address"`
	FailureReason string     `gorm:"type:text;not null" json:"failure_reason"`
	UserID        *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// IssuedToken records every credential mint for the security overview.
// Tokens themselves are stateless; this is audit data, not session state.
type IssuedToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	TokenType string     `gorm:"type:text;not null" json:"token_type"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
