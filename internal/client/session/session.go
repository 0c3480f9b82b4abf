// Package session holds the signed-in state of the console: the bearer
// token, the authenticated flag and the cached user profile.
//
// A Session is created once at start-up from the local store, started by
// Begin (or MarkAuthenticated) after OTP verification and ended by Clear on
// logout. The HTTP layer reads the token through Token; nothing else touches
// the stored keys.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/schooladmin/internal/client/models"
	"github.com/dmitrijs2005/schooladmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/schooladmin/internal/common"
	"github.com/dmitrijs2005/schooladmin/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

type Session struct {
	mu   sync.RWMutex
	db   *sql.DB
	repo metadata.Repository

	token         string
	authenticated bool
	profile       *models.Profile
}

// Open loads the persisted session from db.
func Open(ctx context.Context, db *sql.DB) (*Session, error) {
	s := &Session{db: db, repo: metadata.NewSQLiteRepository(db)}

	token, err := s.repo.Get(ctx, common.TokenKey)
	if err != nil {
		return nil, err
	}
	flag, err := s.repo.Get(ctx, common.AuthenticatedKey)
	if err != nil {
		return nil, err
	}
	rawProfile, err := s.repo.Get(ctx, common.UserProfileKey)
	if err != nil {
		return nil, err
	}

	s.token = string(token)
	s.authenticated = string(flag) == "true"
	if len(rawProfile) > 0 {
		var p models.Profile
		if err := json.Unmarshal(rawProfile, &p); err != nil {
			return nil, fmt.Errorf("decode cached profile: %w", err)
		}
		s.profile = &p
	}
	return s, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Profile returns a copy of the cached profile, or nil.
func (s *Session) Profile() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Begin stores a fresh token, the authenticated flag and the profile in one
// transaction. A nil profile removes the cached one.
func (s *Session) Begin(ctx context.Context, token string, profile *models.Profile) error {
	var rawProfile []byte
	if profile != nil {
		b, err := json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		rawProfile = b
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.AuthenticatedKey, []byte("true")); err != nil {
			return err
		}
		if rawProfile == nil {
			return repo.Delete(ctx, common.UserProfileKey)
		}
		return repo.Set(ctx, common.UserProfileKey, rawProfile)
	})
	if err != nil {
		return fmt.Errorf("begin session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.authenticated = true
	if profile != nil {
		p := *profile
		s.profile = &p
	} else {
		s.profile = nil
	}
	return nil
}

// MarkAuthenticated persists only the authenticated flag.
func (s *Session) MarkAuthenticated(ctx context.Context) error {
	if err := s.repo.Set(ctx, common.AuthenticatedKey, []byte("true")); err != nil {
		return err
	}
	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

// SetProfile replaces the cached profile.
func (s *Session) SetProfile(ctx context.Context, profile *models.Profile) error {
	if profile == nil {
		if err := s.repo.Delete(ctx, common.UserProfileKey); err != nil {
			return err
		}
	} else {
		b, err := json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		if err := s.repo.Set(ctx, common.UserProfileKey, b); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if profile == nil {
		s.profile = nil
		return nil
	}
	p := *profile
	s.profile = &p
	return nil
}

// Clear ends the session: token, flag and profile are removed.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenKey, common.AuthenticatedKey, common.UserProfileKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.authenticated = false
	s.profile = nil
	return nil
}

// ExpiresAt reads the exp claim when the token is a JWT. The signature is
// not checked; the server stays the authority on expiry.
func (s *Session) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the token carries an exp claim in the past.
func (s *Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && !now.Before(exp)
}
