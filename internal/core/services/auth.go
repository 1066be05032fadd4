package services

import (
	"crypto/subtle"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driving"
)

// Ensure AuthService implements the interface.
var _ driving.Authenticator = (*AuthService)(nil)

// Credential is one entry in the static credential list.
type Credential struct {
	Email    string
	Password string
}

// AuthService authenticates against a static credential list and tracks
// issued session tokens in memory. Sessions do not survive a restart.
type AuthService struct {
	credentials []Credential

	mu       sync.RWMutex
	sessions map[string]string // token -> email
}

// NewAuthService creates an authenticator over the given credential list.
func NewAuthService(credentials []Credential) *AuthService {
	return &AuthService{
		credentials: credentials,
		sessions:    make(map[string]string),
	}
}

// Login checks the credentials and issues an opaque session token.
// Comparison is constant-time across both fields for every configured entry.
func (s *AuthService) Login(email, password string) (*domain.Session, error) {
	var matched bool
	for _, cred := range s.credentials {
		emailOK := subtle.ConstantTimeCompare([]byte(cred.Email), []byte(email)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) == 1
		if emailOK && passOK {
			matched = true
		}
	}
	if !matched {
		return nil, fmt.Errorf("%w: bad credentials", domain.ErrUnauthorized)
	}

	token := uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = email
	s.mu.Unlock()

	return &domain.Session{Token: token, Email: email}, nil
}

// Verify reports whether token belongs to an active session.
func (s *AuthService) Verify(token string) bool {
	if token == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[token]
	return ok
}
