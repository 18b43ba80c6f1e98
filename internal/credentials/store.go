// Package credentials persists the operator's token pair under the .chefdeck
// directory. The access and refresh tokens always travel together: both are
// loaded for a session and both are cleared when the API rejects the operator.
package credentials

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	accessTokenFile  = "access_token"
	refreshTokenFile = "refresh_token"
)

// ErrNoCredentials is returned when no token pair has been stored yet.
var ErrNoCredentials = errors.New("credentials: no stored tokens")

// Credentials is the stored token pair.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// Store reads and writes the token pair in a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// the first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes both tokens. Tokens are operator secrets, so the files are
// owner-readable only.
func (s *Store) Save(access, refresh string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, accessTokenFile), []byte(access), 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, refreshTokenFile), []byte(refresh), 0o600)
}

// Load returns the stored pair, or ErrNoCredentials when the access token is
// missing or empty.
func (s *Store) Load() (Credentials, error) {
	access, err := readToken(filepath.Join(s.dir, accessTokenFile))
	if err != nil {
		return Credentials{}, err
	}
	refresh, err := readToken(filepath.Join(s.dir, refreshTokenFile))
	if err != nil && !errors.Is(err, ErrNoCredentials) {
		return Credentials{}, err
	}
	return Credentials{AccessToken: access, RefreshToken: refresh}, nil
}

// Clear removes both tokens. A missing file is not an error so Clear can be
// called defensively on any authorization failure.
func (s *Store) Clear() error {
	for _, name := range []string{accessTokenFile, refreshTokenFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoCredentials
		}
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoCredentials
	}
	return token, nil
}
