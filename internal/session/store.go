// Package session owns the persisted authentication state: the bearer
// token and the identity of the signed-in user. There is no package
// global; callers hold a Store and hand it to whatever needs tokens.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vitorarj/sales-manager/pkg/enums"
	"github.com/vitorarj/sales-manager/pkg/logger"
	"github.com/vitorarj/sales-manager/pkg/salesapi"
)

const (
	tokenKey    = "token"
	identityKey = "user"
)

// Identity is the signed-in user as persisted between runs. Token is
// kept in memory alongside it but stored under its own key.
type Identity struct {
	Token  string     `json:"-"`
	UserID int64      `json:"userId"`
	Email  string     `json:"email"`
	Name   string     `json:"name"`
	Role   enums.Role `json:"role"`
}

// Store is the runtime session holder. It implements
// salesapi.TokenSource so the API client reads the live token without
// knowing where it lives.
type Store struct {
	storage Storage
	logs    *logger.Logger

	mu       sync.RWMutex
	identity *Identity
}

var _ salesapi.TokenSource = (*Store)(nil)

// NewStore builds a session store over the given storage.
func NewStore(storage Storage, logs *logger.Logger) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage required")
	}
	if logs == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Store{storage: storage, logs: logs}, nil
}

// Token reports the active bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return ""
	}
	return s.identity.Token
}

// Current returns a copy of the signed-in identity, or nil.
func (s *Store) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	copied := *s.identity
	return &copied
}

// Restore loads a previously persisted session. Any inconsistency — a
// missing half, unparseable identity JSON, an invalid role, or an
// expired token — clears both keys and reports no session rather than
// an error; a corrupt session must never strand the user.
func (s *Store) Restore(ctx context.Context) (*Identity, error) {
	token, tokenErr := s.storage.Get(tokenKey)
	raw, identityErr := s.storage.Get(identityKey)

	if tokenErr == ErrNotFound && identityErr == ErrNotFound {
		return nil, nil
	}
	if tokenErr != nil || identityErr != nil {
		s.logs.Warn(ctx, "session state incomplete, clearing")
		return nil, s.clear(ctx)
	}

	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		s.logs.Warn(ctx, "session identity unreadable, clearing")
		return nil, s.clear(ctx)
	}
	if token == "" || identity.UserID == 0 || !identity.Role.IsValid() {
		s.logs.Warn(ctx, "session identity invalid, clearing")
		return nil, s.clear(ctx)
	}
	if tokenExpired(token) {
		s.logs.Info(s.logs.WithUserID(ctx, identity.UserID), "session token expired, clearing")
		return nil, s.clear(ctx)
	}

	identity.Token = token
	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()

	s.logs.Info(s.logs.WithUserID(s.logs.WithRole(ctx, identity.Role.String()), identity.UserID),
		"session restored")
	copied := identity
	return &copied, nil
}

// Login persists the identity from a successful login response. Both
// keys are written or neither is.
func (s *Store) Login(ctx context.Context, resp *salesapi.LoginResponse) (*Identity, error) {
	if resp == nil || resp.Token == "" {
		return nil, fmt.Errorf("login response without token")
	}

	identity := Identity{
		Token:  resp.Token,
		UserID: resp.UserID,
		Email:  resp.Email,
		Name:   resp.Name,
		Role:   resp.Role,
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return nil, fmt.Errorf("marshal identity: %w", err)
	}

	if err := s.storage.Set(tokenKey, resp.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	if err := s.storage.Set(identityKey, string(raw)); err != nil {
		_ = s.storage.Delete(tokenKey)
		return nil, fmt.Errorf("persist identity: %w", err)
	}

	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()

	s.logs.Info(s.logs.WithUserID(s.logs.WithRole(ctx, identity.Role.String()), identity.UserID),
		"session started")
	copied := identity
	return &copied, nil
}

// Logout clears the persisted and in-memory session.
func (s *Store) Logout(ctx context.Context) error {
	s.logs.Info(ctx, "session ended")
	return s.clear(ctx)
}

func (s *Store) clear(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	if err := s.storage.Delete(tokenKey); err != nil {
		s.logs.Error(ctx, "clear token", err)
		return err
	}
	if err := s.storage.Delete(identityKey); err != nil {
		s.logs.Error(ctx, "clear identity", err)
		return err
	}
	return nil
}

// tokenExpired decodes the JWT without verifying its signature (the
// client has no key material) and checks only the exp claim. A token
// that cannot be decoded at all is treated as expired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
