package usecase

import (
	"context"
	"sync"
	"time"

	"riskwizard_backend/internal/feature/auth/domain/entity"
)

// memUserRepository is an in-memory UserRepository used by the usecase tests.
type memUserRepository struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	creates int

	// CreateErr, when set, is returned from Create instead of storing the user.
	CreateErr error
	// FindByEmailErr, when set, is returned from FindByEmail.
	FindByEmailErr error
}

func newMemUserRepository(users ...*entity.User) *memUserRepository {
	r := &memUserRepository{byID: map[string]*entity.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *memUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.byID[user.ID] = &cp
	r.creates++
	return nil
}

func (r *memUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FindByEmailErr != nil {
		return nil, r.FindByEmailErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepository) ListAll(ctx context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// memMagicLinkRepository is an in-memory token store whose Consume is atomic under a mutex.
type memMagicLinkRepository struct {
	mu     sync.Mutex
	tokens map[string]*entity.MagicLinkToken

	// CreateErr, when set, is returned from Create instead of storing the token.
	CreateErr error
}

func newMemMagicLinkRepository() *memMagicLinkRepository {
	return &memMagicLinkRepository{tokens: map[string]*entity.MagicLinkToken{}}
}

func (r *memMagicLinkRepository) Create(ctx context.Context, token *entity.MagicLinkToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	cp := *token
	r.tokens[token.Token] = &cp
	return nil
}

func (r *memMagicLinkRepository) FindByToken(ctx context.Context, token string) (*entity.MagicLinkToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, ErrMagicLinkNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memMagicLinkRepository) MarkUsed(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return ErrMagicLinkNotFound
	}
	if t.Used {
		return ErrMagicLinkAlreadyUsed
	}
	t.Used = true
	return nil
}

func (r *memMagicLinkRepository) Consume(ctx context.Context, token string, issuedAfter time.Time) (*entity.MagicLinkToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	if t.Used || !t.CreatedAt.After(issuedAfter) {
		return nil, ErrExpiredToken
	}
	t.Used = true
	cp := *t
	return &cp, nil
}

func (r *memMagicLinkRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, t := range r.tokens {
		if t.CreatedAt.Before(before) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

func (r *memMagicLinkRepository) all() []entity.MagicLinkToken {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.MagicLinkToken, 0, len(r.tokens))
	for _, t := range r.tokens {
		out = append(out, *t)
	}
	return out
}

// mockMailer records every message it is asked to send.
type mockMailer struct {
	mu   sync.Mutex
	sent []MailMessage

	// SendErr, when set, is returned from Send.
	SendErr error
}

func (m *mockMailer) Send(ctx context.Context, msg MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

// mockCredentialIssuer is a mock implementation of CredentialIssuer.
type mockCredentialIssuer struct {
	IssueForFunc func(ctx context.Context, user *entity.User, meta entity.SessionMeta) (*entity.Credentials, error)
}

func (m *mockCredentialIssuer) IssueFor(ctx context.Context, user *entity.User, meta entity.SessionMeta) (*entity.Credentials, error) {
	if m.IssueForFunc != nil {
		return m.IssueForFunc(ctx, user, meta)
	}
	return &entity.Credentials{AccessToken: "access-" + user.ID, RefreshToken: "refresh-" + user.ID}, nil
}

// memSessionRepository is an in-memory SessionRepository.
type memSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session

	// CreateErr, when set, is returned from Create.
	CreateErr error
}

func newMemSessionRepository() *memSessionRepository {
	return &memSessionRepository{sessions: map[string]*entity.Session{}}
}

func (r *memSessionRepository) Create(ctx context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *memSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSessionRepository) Revoke(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (r *memSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
