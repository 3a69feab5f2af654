// Package scratch manages per-request working storage. Each request
// that needs filesystem-backed capabilities gets its own session
// directory under the configured root; closing the session removes
// everything it produced, on success and failure paths alike.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store allocates scratch sessions under a single root directory.
// Sessions never read each other's files; directory names are
// collision-resistant UUIDs.
type Store struct {
	root string
}

// NewStore creates the scratch root if needed and returns a Store.
func NewStore(root string) (*Store, error) {
	if root == "" {
		root = filepath.Join(os.TempDir(), "conversion-api")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch root: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the scratch root directory.
func (s *Store) Root() string { return s.root }

// Session allocates a fresh working directory for one request.
func (s *Store) Session() (*Session, error) {
	dir := filepath.Join(s.root, uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch session: %w", err)
	}
	return &Session{dir: dir}, nil
}

// Session is one request's private working directory.
type Session struct {
	dir string
}

// Dir returns the session directory path.
func (s *Session) Dir() string { return s.dir }

// WriteFile persists data under a sanitized version of name and returns
// the absolute path, for capabilities that require a filesystem path
// rather than a byte buffer.
func (s *Session) WriteFile(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, SanitizeName(name))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	return path, nil
}

// Close removes the session directory and all files inside it.
func (s *Session) Close() error {
	return os.RemoveAll(s.dir)
}

// SanitizeName strips any path components from an uploaded filename and
// substitutes a unique name when nothing usable remains.
func SanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return uuid.NewString()
	}
	return name
}
