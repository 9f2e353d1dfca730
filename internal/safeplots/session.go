// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expirySkew treats tokens this close to expiry as already expired.
const expirySkew = 30 * time.Second

// Session holds the bearer token, the signed-in user and, optionally, the
// credentials used to sign in again when the token is gone or expired.
type Session struct {
	mu       sync.RWMutex
	token    string
	user     *User
	email    string
	password string
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Set stores a fresh token and user.
func (s *Session) Set(token string, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if user != nil {
		u := *user
		s.user = &u
	}
}

// Clear drops the token and user. Credentials are kept.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

func (s *Session) setCredentials(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email, s.password = email, password
}

func (s *Session) credentials() (string, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email, s.password, s.email != "" && s.password != ""
}

// Expired reports whether the token's exp claim is at or before now.
// Opaque tokens and tokens without exp never expire client-side.
func (s *Session) Expired(now time.Time) bool {
	exp, ok := TokenExpiry(s.Token())
	if !ok {
		return false
	}
	return !now.Add(expirySkew).Before(exp)
}

// TokenExpiry reads the exp claim without verifying the signature.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// needsLogin is true when credentials exist and the token is missing or stale.
func (s *Session) needsLogin(now time.Time) bool {
	if _, _, ok := s.credentials(); !ok {
		return false
	}
	return s.Token() == "" || s.Expired(now)
}
