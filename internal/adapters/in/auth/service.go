// internal/adapters/in/auth/service.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"

	iddom "github.com/caerux/e-commerce-website/internal/domain/identity"
)

// Service is the local authentication collaborator. It checks credentials
// against a UserDirectory, remembers the signed-in user in a session file
// (the localStorage "currentUser" analogue) and implements
// identity.Provider for the cart engine.
type Service struct {
	dir         UserDirectory
	sessionPath string
	log         *zap.Logger

	mu      sync.Mutex
	current iddom.Identity

	subMu   sync.Mutex
	subs    map[int]func(iddom.Identity)
	nextSub int
}

type sessionRecord struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// NewService builds the auth service. sessionPath may be empty, in which
// case the session lives only in memory. A readable session file seeds the
// current identity, so a signed-in user stays signed in across runs.
func NewService(dir UserDirectory, sessionPath string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		dir:         dir,
		sessionPath: sessionPath,
		log:         log,
		current:     iddom.Guest(),
		subs:        map[int]func(iddom.Identity){},
	}
	s.restoreSession()
	return s
}

// Login verifies credentials and, on success, emits the user identity.
func (s *Service) Login(ctx context.Context, username, password string) (iddom.Identity, error) {
	user, err := s.dir.Authenticate(ctx, username, password)
	if err != nil {
		return iddom.Guest(), err
	}

	id := iddom.User(strconv.Itoa(user.ID))

	s.mu.Lock()
	s.current = id
	s.mu.Unlock()

	s.saveSession(sessionRecord{ID: user.ID, Username: user.Username})
	s.emit(id)
	return id, nil
}

// Logout clears the session and emits the guest identity. Logging out
// while already a guest is a no-op.
func (s *Service) Logout() {
	s.mu.Lock()
	wasGuest := s.current.IsGuest()
	s.current = iddom.Guest()
	s.mu.Unlock()

	s.clearSession()
	if !wasGuest {
		s.emit(iddom.Guest())
	}
}

// ─────────────────────────────────
// identity.Provider
// ─────────────────────────────────

func (s *Service) Current() iddom.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Service) IsAuthenticated() bool {
	return !s.Current().IsGuest()
}

// Subscribe delivers the current identity immediately, then every change.
func (s *Service) Subscribe(fn func(iddom.Identity)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	fn(s.Current())

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Service) emit(id iddom.Identity) {
	s.subMu.Lock()
	fns := make([]func(iddom.Identity), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}

// ─────────────────────────────────
// Session persistence
// ─────────────────────────────────

func (s *Service) restoreSession() {
	if s.sessionPath == "" {
		return
	}
	raw, err := os.ReadFile(s.sessionPath)
	if err != nil {
		return
	}
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil || rec.ID == 0 {
		s.log.Warn("session file unreadable; starting as guest", zap.Error(err))
		return
	}
	s.current = iddom.User(strconv.Itoa(rec.ID))
}

func (s *Service) saveSession(rec sessionRecord) {
	if s.sessionPath == "" {
		return
	}
	raw, err := json.Marshal(rec)
	if err == nil {
		err = os.WriteFile(s.sessionPath, raw, 0o600)
	}
	if err != nil {
		s.log.Warn("session save failed", zap.Error(fmt.Errorf("auth: %w", err)))
	}
}

func (s *Service) clearSession() {
	if s.sessionPath == "" {
		return
	}
	if err := os.Remove(s.sessionPath); err != nil && !os.IsNotExist(err) {
		s.log.Warn("session clear failed", zap.Error(err))
	}
}
