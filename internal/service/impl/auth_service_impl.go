package impl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"homehub/internal/domain"
	"homehub/internal/dto"
	"homehub/internal/observability/metrics"
	"homehub/internal/service"
	"homehub/internal/store"
)

const DefaultSessionTTL = 24 * time.Hour

type AuthServiceImpl struct {
	Store           authStore
	PasswordService service.PasswordService
	TTL             time.Duration

	now      func() time.Time
	newToken func() string
}

func NewAuthServiceImpl(st *store.Store, passwords service.PasswordService, ttl time.Duration) *AuthServiceImpl {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthServiceImpl{
		Store:           gormAuthAdapter{store: st},
		PasswordService: passwords,
		TTL:             ttl,
		now:             time.Now,
		newToken:        func() string { return uuid.NewString() },
	}
}

type authStore interface {
	Users() userStore
	Sessions() sessionStore
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type sessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

type gormAuthAdapter struct {
	store *store.Store
}

func (g gormAuthAdapter) Users() userStore       { return g.store.Users() }
func (g gormAuthAdapter) Sessions() sessionStore { return g.store.Sessions() }

func (a *AuthServiceImpl) VerifySession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	sess, err := a.Store.Sessions().GetByToken(ctx, token)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if !sess.ValidAt(a.now().UTC()) {
		return nil, domain.ErrUnauthenticated
	}

	user, err := a.Store.Users().GetByID(ctx, sess.UserID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *AuthServiceImpl) Signup(ctx context.Context, r dto.SignupRequest) (*service.SessionResult, error) {
	name := strings.TrimSpace(r.Name)
	email := strings.TrimSpace(r.Email)
	if name == "" || email == "" || r.Password == "" {
		metrics.SignupsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}

	hash, err := a.PasswordService.Hash(r.Password)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		Name:     name,
		Email:    email,
		Location: strings.TrimSpace(r.Location),
		Password: hash,
	}
	if err := a.Store.Users().Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			metrics.SignupsTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
			return nil, domain.ErrDuplicateEmail
		}
		metrics.SignupsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}

	res, err := a.issue(ctx, u)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}
	metrics.SignupsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return res, nil
}

func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest) (*service.SessionResult, error) {
	email := strings.TrimSpace(r.Email)
	if email == "" || r.Password == "" {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	u, err := a.Store.Users().GetByEmail(ctx, email)
	if errors.Is(err, store.ErrRecordNotFound) {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}
	if !a.PasswordService.Verify(r.Password, u.Password) {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, domain.ErrInvalidCredentials
	}

	res, err := a.issue(ctx, u)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}
	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return res, nil
}

func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.Store.Sessions().DeleteByToken(ctx, token)
}

func (a *AuthServiceImpl) issue(ctx context.Context, u *domain.User) (*service.SessionResult, error) {
	now := a.now().UTC().Truncate(time.Second)
	sess := &domain.Session{
		UserID:    u.ID,
		Token:     a.newToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(a.TTL),
	}
	if err := a.Store.Sessions().Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &service.SessionResult{User: u, Token: sess.Token, ExpiresAt: sess.ExpiresAt}, nil
}
