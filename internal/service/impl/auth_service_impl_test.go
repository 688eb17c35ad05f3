package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"homehub/internal/domain"
	"homehub/internal/dto"
	"homehub/internal/store"
	"homehub/internal/store/storetest"
)

type memUsers struct {
	byID  map[domain.UserID]*domain.User
	next  domain.UserID
	err   error
	calls int
}

func (m *memUsers) Create(ctx context.Context, u *domain.User) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return store.ErrDuplicateKey
		}
	}
	m.next++
	u.ID = m.next
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, store.ErrRecordNotFound
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrRecordNotFound
}

type memSessions struct {
	rows []domain.Session
	err  error
}

func (m *memSessions) Create(ctx context.Context, s *domain.Session) error {
	if m.err != nil {
		return m.err
	}
	s.ID = domain.SessionID(len(m.rows) + 1)
	m.rows = append(m.rows, *s)
	return nil
}

func (m *memSessions) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].Token == token {
			cp := m.rows[i]
			return &cp, nil
		}
	}
	return nil, store.ErrRecordNotFound
}

func (m *memSessions) DeleteByToken(ctx context.Context, token string) error {
	kept := m.rows[:0]
	for _, s := range m.rows {
		if s.Token != token {
			kept = append(kept, s)
		}
	}
	m.rows = kept
	return nil
}

type memAuthStore struct {
	users    *memUsers
	sessions *memSessions
}

func (m memAuthStore) Users() userStore       { return m.users }
func (m memAuthStore) Sessions() sessionStore { return m.sessions }

type plainPasswords struct{}

func (plainPasswords) Hash(p string) (string, error) {
	if p == "" {
		return "", ErrEmptyPassword
	}
	return "hashed:" + p, nil
}
func (plainPasswords) Verify(p, enc string) bool { return enc == "hashed:"+p }

func newMemAuth(now time.Time) (*AuthServiceImpl, memAuthStore) {
	ms := memAuthStore{
		users:    &memUsers{byID: map[domain.UserID]*domain.User{}},
		sessions: &memSessions{},
	}
	seq := 0
	return &AuthServiceImpl{
		Store:           ms,
		PasswordService: plainPasswords{},
		TTL:             DefaultSessionTTL,
		now:             func() time.Time { return now },
		newToken: func() string {
			seq++
			return "token-" + string(rune('a'+seq-1))
		},
	}, ms
}

func TestSignupIssuesSession(t *testing.T) {
	now := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	svc, ms := newMemAuth(now)

	res, err := svc.Signup(context.Background(), dto.SignupRequest{Name: "Ana", Email: "ana@example.com", Password: "pw", Location: "SD"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if res.Token != "token-a" {
		t.Fatalf("unexpected token %q", res.Token)
	}
	if !res.ExpiresAt.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("expected 24h expiry, got %v", res.ExpiresAt)
	}
	stored, _ := ms.users.GetByEmail(context.Background(), "ana@example.com")
	if stored.Password != "hashed:pw" {
		t.Fatalf("expected password to be hashed, got %q", stored.Password)
	}
	if len(ms.sessions.rows) != 1 || ms.sessions.rows[0].UserID != stored.ID {
		t.Fatalf("expected one session for the new user, got %+v", ms.sessions.rows)
	}
}

func TestSignupValidation(t *testing.T) {
	svc, ms := newMemAuth(time.Now())
	cases := []dto.SignupRequest{
		{Email: "a@example.com", Password: "pw"},
		{Name: "A", Password: "pw"},
		{Name: "A", Email: "a@example.com"},
		{Name: "  ", Email: "a@example.com", Password: "pw"},
	}
	for _, req := range cases {
		if _, err := svc.Signup(context.Background(), req); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", req, err)
		}
	}
	if ms.users.calls != 0 {
		t.Fatalf("expected no user writes, got %d", ms.users.calls)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, ms := newMemAuth(time.Now())
	req := dto.SignupRequest{Name: "A", Email: "a@example.com", Password: "pw"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(context.Background(), req); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(ms.sessions.rows) != 1 {
		t.Fatalf("expected no session for the duplicate, got %d", len(ms.sessions.rows))
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newMemAuth(time.Now())
	if _, err := svc.Signup(context.Background(), dto.SignupRequest{Name: "A", Email: "a@example.com", Password: "pw"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	cases := []struct {
		name    string
		req     dto.LoginRequest
		wantErr error
	}{
		{"ok", dto.LoginRequest{Email: "a@example.com", Password: "pw"}, nil},
		{"wrong password", dto.LoginRequest{Email: "a@example.com", Password: "nope"}, domain.ErrInvalidCredentials},
		{"unknown email", dto.LoginRequest{Email: "b@example.com", Password: "pw"}, domain.ErrInvalidCredentials},
		{"missing password", dto.LoginRequest{Email: "a@example.com"}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), tc.req)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			if res.Token == "" || res.User.Email != "a@example.com" {
				t.Fatalf("unexpected result: %+v", res)
			}
		})
	}
}

func TestVerifySession(t *testing.T) {
	now := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	svc, ms := newMemAuth(now)
	res, err := svc.Signup(context.Background(), dto.SignupRequest{Name: "A", Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	u, err := svc.VerifySession(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if u.Email != "a@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.VerifySession(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("empty token: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.VerifySession(context.Background(), "unknown"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("unknown token: expected ErrUnauthenticated, got %v", err)
	}

	// exactly at expiry the session is no longer usable
	svc.now = func() time.Time { return res.ExpiresAt }
	if _, err := svc.VerifySession(context.Background(), res.Token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expired token: expected ErrUnauthenticated, got %v", err)
	}
	if len(ms.sessions.rows) != 1 {
		t.Fatalf("expired session must not be swept, got %d rows", len(ms.sessions.rows))
	}

	svc.now = func() time.Time { return now }
	delete(ms.users.byID, u.ID)
	if _, err := svc.VerifySession(context.Background(), res.Token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("orphaned session: expected ErrUnauthenticated, got %v", err)
	}
}

func TestVerifySessionPropagatesStoreFailure(t *testing.T) {
	svc, ms := newMemAuth(time.Now())
	boom := &store.DataStoreError{Op: "get session", Err: errors.New("connection reset")}
	ms.sessions.err = boom

	_, err := svc.VerifySession(context.Background(), "tok")
	if errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("store failure must not look like a missing session")
	}
	var dsErr *store.DataStoreError
	if !errors.As(err, &dsErr) {
		t.Fatalf("expected DataStoreError, got %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _ := newMemAuth(time.Now())
	res, err := svc.Signup(context.Background(), dto.SignupRequest{Name: "A", Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := svc.Logout(context.Background(), res.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.VerifySession(context.Background(), res.Token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected logged out session to be rejected, got %v", err)
	}
	if err := svc.Logout(context.Background(), res.Token); err != nil {
		t.Fatalf("second logout should succeed, got %v", err)
	}
}

func TestAuthAgainstSQLite(t *testing.T) {
	st := storetest.Open(t)
	svc := NewAuthServiceImpl(st, testPasswords(), time.Hour)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, dto.SignupRequest{Name: "Sam", Email: "sam@example.com", Password: "s3cret", Location: "SD"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.Signup(ctx, dto.SignupRequest{Name: "Sam2", Email: "sam@example.com", Password: "other"}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "sam@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Token == signup.Token {
		t.Fatalf("expected a fresh token per login")
	}

	u, err := svc.VerifySession(ctx, login.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if u.ID != signup.User.ID {
		t.Fatalf("expected user %d, got %d", signup.User.ID, u.ID)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.VerifySession(ctx, login.Token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected expiry, got %v", err)
	}
	if _, err := st.Sessions().GetByToken(ctx, login.Token); err != nil {
		t.Fatalf("expired session row should still exist: %v", err)
	}
}
