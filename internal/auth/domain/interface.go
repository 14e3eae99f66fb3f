package domain

//go:generate mockgen -destination=../../mocks/mock_domain.go -package=mocks github.com/cieslarmichal/just-join-us-auth/internal/auth/domain UserDirectory,TokenBlacklist,Notifier

import (
	"context"
	"time"
)

type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	SetEmailVerified(ctx context.Context, id string, verified bool) error
}

// TokenBlacklist is an append-only revocation record store keyed by the
// literal token string. Revoke must be idempotent: revoking the same token
// twice is expected under concurrent logouts and must not error.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

const (
	EventPasswordResetRequested     = "password_reset_requested"
	EventEmailVerificationRequested = "email_verification_requested"
)

type Notification struct {
	Event     string `json:"event"`
	Recipient string `json:"recipient"`
	Link      string `json:"link"`
}

// Notifier hands a workflow link off for delivery. Fire-and-forget: the
// workflows do not wait for delivery confirmation.
type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}
