// Package auth stores the optional bearer token sent to the wishlist API.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	credFileName = "credentials.json"
	EnvToken     = "WISHLIST_TOKEN"
)

type TokenInfo struct {
	Token     string    `json:"token"`
	Source    string    `json:"source"`     // "env" | "file"
	CreatedAt time.Time `json:"created_at"` // when we saved to file
}

// Store keeps credentials under dir.
type Store struct {
	dir string
}

func NewStore(dir string) *Store { return &Store{dir: dir} }

func (s *Store) path() string { return filepath.Join(s.dir, credFileName) }

// Get returns nil, nil when no token is configured.
func (s *Store) Get() (*TokenInfo, error) {
	// env override
	if env := strings.TrimSpace(os.Getenv(EnvToken)); env != "" {
		return &TokenInfo{Token: stripBearer(env), Source: "env"}, nil
	}

	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var ti TokenInfo
	if err := json.Unmarshal(b, &ti); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	ti.Token = stripBearer(ti.Token)
	ti.Source = "file"
	return &ti, nil
}

// Token is Get reduced to the raw token, "" when absent or unreadable.
func (s *Store) Token() string {
	ti, err := s.Get()
	if err != nil || ti == nil {
		return ""
	}
	return ti.Token
}

func (s *Store) Set(token string) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(TokenInfo{Token: token, Source: "file", CreatedAt: time.Now()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	// owner-only
	if err := os.WriteFile(s.path(), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (s *Store) Delete() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}

// ErrOpaque means the token is not a JWT and cannot be introspected locally.
var ErrOpaque = errors.New("opaque token")

// Claims decodes a JWT payload without verifying its signature. The server
// is the only party that validates tokens.
func Claims(token string) (*jwt.RegisteredClaims, error) {
	if strings.Count(token, ".") != 2 {
		return nil, ErrOpaque
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpaque, err)
	}
	return &claims, nil
}
