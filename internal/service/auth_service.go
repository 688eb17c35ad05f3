package service

import (
	"context"
	"time"

	"homehub/internal/domain"
	"homehub/internal/dto"
)

// SessionResult is what the transport needs to set the sessionId cookie.
type SessionResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	// VerifySession resolves a cookie token to its user. Every rejection
	// (missing, unknown, expired, orphaned) is domain.ErrUnauthenticated.
	VerifySession(ctx context.Context, token string) (*domain.User, error)
	Signup(ctx context.Context, r dto.SignupRequest) (*SessionResult, error)
	Login(ctx context.Context, r dto.LoginRequest) (*SessionResult, error)
	Logout(ctx context.Context, token string) error
}
