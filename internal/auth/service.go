// Package auth provides the simulated sign-in used by the storefront demo.
// Any non-empty credentials are accepted after a short delay; the resulting
// user is fabricated, persisted to the user slot and handed a real signed
// session token.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	sessions "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/kv"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/security"
)

// User is the signed-in shopper as exposed over the API. The password hash
// stays in the persisted record and never leaves the package.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Token     string `json:"token"`
}

// storedUser is what lands in the user slot. It carries the argon2 hash of
// the password the shopper signed in with so Login after Register can verify.
type storedUser struct {
	User
	PasswordHash string `json:"passwordHash"`
}

// Service implements the simulated authentication flows.
type Service struct {
	slot     kv.Store
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	delay    time.Duration
	logg     *logger.Logger
	now      func() time.Time
	nextUser func() int
}

func NewService(slot kv.Store, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig, delay time.Duration, logg *logger.Logger) (*Service, error) {
	if slot == nil {
		return nil, errors.New(errors.CodeInternal, "auth service requires a persistence slot")
	}
	return &Service{
		slot:   slot,
		jwtCfg: jwtCfg,
		pwCfg:  pwCfg,
		delay:  delay,
		logg:   logg,
		now:    time.Now,
		nextUser: func() int {
			// derived from a v4 uuid so restarts do not repeat ids
			return int(uuid.New().ID()%90000) + 10000
		},
	}, nil
}

// Login accepts any non-empty credentials. If a user was previously stored
// under the same username its password hash is checked; otherwise a fresh
// user is fabricated, matching how the demo backend behaves.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New(errors.CodeValidation, "username and password are required")
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	if existing, ok := s.readStored(ctx); ok && existing.Username == username {
		match, err := security.VerifyPassword(password, existing.PasswordHash)
		if err != nil {
			// unreadable hash; treat the record as lost and start over
			if s.logg != nil {
				s.logg.Error(s.logg.WithSlot(ctx, kv.KeyUser), "stored password hash is unreadable", err)
			}
			return s.fabricate(ctx, username, password)
		}
		if !match {
			return nil, errors.New(errors.CodeUnauthorized, "invalid credentials")
		}
		return s.refreshToken(ctx, existing)
	}

	return s.fabricate(ctx, username, password)
}

// Register behaves like Login for the demo backend: any non-empty details
// produce a signed-in user.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New(errors.CodeValidation, "username and password are required")
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	user, err := s.fabricate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if email = strings.TrimSpace(email); email != "" {
		user.Email = email
		s.persist(ctx, user, "")
	}
	return user, nil
}

// Logout drops the persisted user. It never fails; a missing slot entry is
// already the desired state.
func (s *Service) Logout(ctx context.Context) {
	if err := s.slot.Remove(ctx, kv.KeyUser); err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithSlot(ctx, kv.KeyUser), "failed to remove persisted user", err)
	}
}

// CurrentUser returns the persisted user, or nil when nobody is signed in.
func (s *Service) CurrentUser(ctx context.Context) *User {
	stored, ok := s.readStored(ctx)
	if !ok {
		return nil
	}
	user := stored.User
	return &user
}

// UpdateProfile merges the provided fields into the stored user. The id and
// token are never overwritten.
func (s *Service) UpdateProfile(ctx context.Context, firstName, lastName, email string) (*User, error) {
	stored, ok := s.readStored(ctx)
	if !ok {
		return nil, errors.New(errors.CodeUnauthorized, "no user is signed in")
	}

	if v := strings.TrimSpace(firstName); v != "" {
		stored.FirstName = v
	}
	if v := strings.TrimSpace(lastName); v != "" {
		stored.LastName = v
	}
	if v := strings.TrimSpace(email); v != "" {
		stored.Email = v
	}

	s.persist(ctx, &stored.User, stored.PasswordHash)
	user := stored.User
	return &user, nil
}

func (s *Service) fabricate(ctx context.Context, username, password string) (*User, error) {
	id := s.nextUser()
	token, err := sessions.MintSessionToken(s.jwtCfg, s.now(), id, username)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "mint session token")
	}

	hash, err := security.HashPassword(password, s.pwCfg)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "hash password")
	}

	user := &User{
		ID:        id,
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		FirstName: username,
		LastName:  "User",
		Token:     token,
	}
	s.persist(ctx, user, hash)
	return user, nil
}

func (s *Service) refreshToken(ctx context.Context, stored *storedUser) (*User, error) {
	token, err := sessions.MintSessionToken(s.jwtCfg, s.now(), stored.ID, stored.Username)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "mint session token")
	}
	user := stored.User
	user.Token = token
	s.persist(ctx, &user, stored.PasswordHash)
	return &user, nil
}

func (s *Service) readStored(ctx context.Context) (*storedUser, bool) {
	raw, ok, err := s.slot.Read(ctx, kv.KeyUser)
	if err != nil || !ok {
		return nil, false
	}
	var stored storedUser
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithSlot(ctx, kv.KeyUser), "persisted user is malformed", err)
		}
		return nil, false
	}
	return &stored, true
}

// persist writes the user best effort. An empty hash keeps whatever hash is
// already stored.
func (s *Service) persist(ctx context.Context, user *User, hash string) {
	if hash == "" {
		if existing, ok := s.readStored(ctx); ok {
			hash = existing.PasswordHash
		}
	}
	payload, err := json.Marshal(storedUser{User: *user, PasswordHash: hash})
	if err == nil {
		err = s.slot.Write(ctx, kv.KeyUser, string(payload))
	}
	if err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithSlot(ctx, kv.KeyUser), "failed to persist user", err)
	}
}

func (s *Service) simulateLatency(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return errors.Wrap(errors.CodeDependency, ctx.Err(), "sign-in interrupted")
	}
}
