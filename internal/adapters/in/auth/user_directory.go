// internal/adapters/in/auth/user_directory.go
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrInvalidCredentials = errors.New("auth: invalid username or password")

// User mirrors one entry of the users.json dataset. Password holds the
// hex-encoded SHA-256 of the plaintext, matching how the dataset is
// generated (hash-passwords step).
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserDirectory resolves credentials against the user dataset.
type UserDirectory interface {
	// Authenticate returns the matching user or ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (User, error)
}

// FileUserDirectory reads users.json from disk on every call, so edits to
// the dataset take effect without a restart.
type FileUserDirectory struct {
	path string
}

func NewFileUserDirectory(path string) *FileUserDirectory {
	return &FileUserDirectory{path: path}
}

func (d *FileUserDirectory) Authenticate(ctx context.Context, username, password string) (User, error) {
	users, err := d.load()
	if err != nil {
		return User{}, err
	}
	return authenticate(users, username, password)
}

func (d *FileUserDirectory) load() ([]User, error) {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("user_directory: read %s: %w", d.path, err)
	}
	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("user_directory: decode %s: %w", d.path, err)
	}
	return users, nil
}

// MemoryUserDirectory serves a fixed user list (tests, demos).
type MemoryUserDirectory struct {
	users []User
}

func NewMemoryUserDirectory(users ...User) *MemoryUserDirectory {
	return &MemoryUserDirectory{users: users}
}

func (d *MemoryUserDirectory) Authenticate(ctx context.Context, username, password string) (User, error) {
	return authenticate(d.users, username, password)
}

func authenticate(users []User, username, password string) (User, error) {
	name := strings.TrimSpace(username)
	hashed := HashPassword(password)
	for _, u := range users {
		if u.Username == name && u.Password == hashed {
			return u, nil
		}
	}
	return User{}, ErrInvalidCredentials
}

// HashPassword returns the hex SHA-256 digest the dataset stores.
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
