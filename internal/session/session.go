// Package session holds the client's authentication state: the current user,
// the bearer token, and the token's durable copy on disk. The token survives
// restarts until logout; the user is reconstructed from the token's JWT
// claims on restore.
package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/levitation-labs/invoicegen/internal/model"
)

// Store is the single-writer session state. It is only ever mutated from the
// UI event loop, through Login and Logout.
type Store struct {
	user    *model.User
	token   string
	dir     string // state directory holding the credentials file
	fromEnv bool   // token came from INVOICEGEN_TOKEN; not deletable
}

// New returns an empty, unauthenticated store persisting under dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Restore seeds a store from the environment or the credentials file.
// A missing file just means "not logged in". When the stored token is a JWT,
// the user identity is rehydrated from its claims; opaque tokens leave the
// user unset but the session authenticated.
func Restore(dir string) (*Store, error) {
	s := New(dir)

	if env := strings.TrimSpace(envToken()); env != "" {
		s.token = stripBearer(env)
		s.fromEnv = true
		s.user = userFromToken(s.token)
		return s, nil
	}

	creds, err := readCredentials(dir)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return s, nil
	}
	s.token = stripBearer(creds.Token)
	s.user = userFromToken(s.token)
	return s, nil
}

// Authenticated is the single boolean of record for "logged in".
func (s *Store) Authenticated() bool { return s.token != "" }

// User returns the current user, which may be nil even when authenticated
// (opaque token restored from disk).
func (s *Store) User() *model.User { return s.user }

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string { return s.token }

// Login unconditionally overwrites the session and persists the token.
// The in-memory state is updated even if persistence fails.
func (s *Store) Login(user *model.User, token string) error {
	s.user = user
	s.token = stripBearer(strings.TrimSpace(token))
	s.fromEnv = false
	return writeCredentials(s.dir, s.token)
}

// Logout clears the session and removes the persisted token. Env-provided
// tokens have nothing on disk to remove; memory is cleared regardless.
func (s *Store) Logout() error {
	fromEnv := s.fromEnv
	s.user = nil
	s.token = ""
	s.fromEnv = false
	if fromEnv {
		return nil
	}
	return deleteCredentials(s.dir)
}

// userFromToken decodes JWT claims without verifying the signature; the
// client only displays the identity, it never trusts it for authorization.
func userFromToken(token string) *model.User {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	u := &model.User{}
	if v, ok := claims["id"].(string); ok {
		u.ID = v
	} else if v, ok := claims["sub"].(string); ok {
		u.ID = v
	}
	if v, ok := claims["name"].(string); ok {
		u.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		u.Email = v
	}
	if u.ID == "" && u.Name == "" && u.Email == "" {
		return nil
	}
	return u
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
