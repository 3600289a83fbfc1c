package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"go.uber.org/zap"
)

// Session is the single active credential for this profile. It is built once
// at start-up from durable storage and passed explicitly to whoever needs it.
type Session struct {
	mu     sync.RWMutex
	repo   Repository
	logger logger.ZapLogger
	token  string
	user   model.User
}

// Open restores the session persisted in repo, if any.
func Open(ctx context.Context, repo Repository, log logger.ZapLogger) (*Session, error) {
	s := &Session{repo: repo, logger: log}

	token, ok, err := repo.Get(ctx, KeyToken)
	if err != nil {
		return nil, fmt.Errorf("read session token: %w", err)
	}
	if !ok || token == "" {
		return s, nil
	}
	s.token = token

	raw, ok, err := repo.Get(ctx, KeyUser)
	if err != nil {
		return nil, fmt.Errorf("read session user: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.user); err != nil {
			log.Warn("stored user record is unreadable, continuing without it", zap.Error(err))
			s.user = model.User{}
		}
	}
	return s, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// Login replaces the active session and persists it.
func (s *Session) Login(ctx context.Context, token string, user model.User) error {
	if token == "" {
		return fmt.Errorf("login: empty token")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Set(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := s.repo.Set(ctx, KeyUser, string(data)); err != nil {
		if derr := s.repo.Delete(ctx, KeyToken); derr != nil {
			s.logger.Error("roll back stored token", zap.Error(derr))
		}
		return fmt.Errorf("persist user: %w", err)
	}
	s.token = token
	s.user = user
	s.logger.Info("session started", zap.String("email", user.Email))
	return nil
}

// SetUser replaces the stored user record, keeping the token.
func (s *Session) SetUser(ctx context.Context, user model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return fmt.Errorf("set user: no active session")
	}
	if err := s.repo.Set(ctx, KeyUser, string(data)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	s.user = user
	return nil
}

// Logout destroys the session in memory and in durable storage.
func (s *Session) Logout(ctx context.Context) error {
	return s.clear(ctx, "session ended")
}

// Expire is Logout triggered by the API rejecting the credential.
func (s *Session) Expire(ctx context.Context) error {
	return s.clear(ctx, "session expired")
}

func (s *Session) clear(ctx context.Context, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// memory is cleared first so a storage failure still logs the process out
	s.token = ""
	s.user = model.User{}
	if err := s.repo.Delete(ctx, KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info(reason)
	return nil
}
