package auth

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/qemer/lms/core"
)

// Identity is the persisted representation of the logged-in user.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"` // student | admin
	Avatar string `json:"avatar,omitempty"`
}

// Store is a durable single-slot key-value store for the session identity.
// Read reports ok=false when no identity is persisted.
type Store interface {
	Read() (identity Identity, ok bool, err error)
	Write(Identity) error
	Clear() error
}

// Session states.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	}
	return "unauthenticated"
}

type credential struct {
	identity     Identity
	passwordHash []byte
}

func (c credential) checkPassword(pwd string) bool {
	return bcrypt.CompareHashAndPassword(c.passwordHash, []byte(pwd)) == nil
}

func mustHash(pwd string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.MinCost)
	if err != nil {
		log.Fatalf("auth.mustHash: %v", err)
	}
	return hash
}

// mockCredentials is the fixed credential table. This is a prototype stand-in
// for a user directory; see Session for the trust model.
var mockCredentials = []credential{
	{
		identity: Identity{
			ID:     "student-1",
			Name:   "John Smith",
			Email:  "student@qemer.com",
			Role:   "student",
			Avatar: "/api/placeholder/40/40",
		},
		passwordHash: mustHash("student123"),
	},
	{
		identity: Identity{
			ID:     "admin-1",
			Name:   "Admin User",
			Email:  "admin@qemer.com",
			Role:   "admin",
			Avatar: "/api/placeholder/40/40",
		},
		passwordHash: mustHash("admin123"),
	},
}

// Session holds the single current-user slot. A persisted identity is trusted
// on read without re-validating credentials, and never expires; that gap is
// inherent to the prototype and kept on purpose.
//
// Login is last-write-wins: there is only one slot, so overlapping calls
// simply race for it.
type Session struct {
	mu      sync.Mutex
	store   Store
	latency time.Duration
	logger  core.Logger

	state   State
	current *Identity
	loading bool
}

func NewSession(store Store, conf *core.Config, logger core.Logger) *Session {
	return &Session{
		store:   store,
		latency: conf.LoginLatency,
		logger:  logger,
		loading: true,
	}
}

// Restore reads a previously persisted identity from the durable store.
// An unreadable or corrupted store resolves to logged-out, the conservative
// default.
func (s *Session) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	identity, ok, err := s.store.Read()
	if err != nil {
		s.logger.Warn("session: discarding unreadable persisted identity", err)
		_ = s.store.Clear()
		return
	}
	if ok {
		s.current = &identity
		s.state = Authenticated
	}
}

// Loading reports whether the initial durable-storage read is still pending.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the logged-in identity, if any.
func (s *Session) Current() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// Login checks the credential pair against the fixed table after the
// configured simulated latency. It returns false on any mismatch without
// hinting at which of email or password was wrong. A mismatched or cancelled
// attempt leaves a previously established session in place; only a storage
// failure resolves to logged-out.
func (s *Session) Login(ctx context.Context, email, password string) (bool, error) {
	s.setState(Authenticating)

	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			s.settle()
			return false, ctx.Err()
		}
	}

	for _, cred := range mockCredentials {
		if cred.identity.Email != email || !cred.checkPassword(password) {
			continue
		}

		identity := cred.identity
		s.mu.Lock()
		if err := s.store.Write(identity); err != nil {
			s.state = Unauthenticated
			s.current = nil
			s.mu.Unlock()
			return false, errors.Wrap(err, "persisting session")
		}
		s.current = &identity
		s.state = Authenticated
		s.mu.Unlock()
		return true, nil
	}

	s.settle()
	return false, nil
}

// Logout clears the durable store and the in-memory identity.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.state = Unauthenticated
	return errors.Wrap(s.store.Clear(), "clearing session store")
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// settle returns the state to match the identity still held: a failed or
// aborted attempt never tears down an existing session.
func (s *Session) settle() {
	s.mu.Lock()
	if s.current != nil {
		s.state = Authenticated
	} else {
		s.state = Unauthenticated
	}
	s.mu.Unlock()
}
