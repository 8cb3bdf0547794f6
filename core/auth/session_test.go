package auth

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/qemer/lms/core"
)

type stubStore struct {
	identity *Identity
	readErr  error
	writeErr error

	writes int
	clears int
}

func (s *stubStore) Read() (Identity, bool, error) {
	if s.readErr != nil {
		return Identity{}, false, s.readErr
	}
	if s.identity == nil {
		return Identity{}, false, nil
	}
	return *s.identity, true, nil
}

func (s *stubStore) Write(identity Identity) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.identity = &identity
	s.writes++
	return nil
}

func (s *stubStore) Clear() error {
	s.identity = nil
	s.clears++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func newTestSession(store Store, latency time.Duration) *Session {
	conf := &core.Config{LoginLatency: latency}
	return NewSession(store, conf, nopLogger{})
}

func TestSessionRestore(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		sess := newTestSession(new(stubStore), 0)
		assert.True(t, sess.Loading())

		sess.Restore()

		assert.False(t, sess.Loading())
		assert.Equal(t, Unauthenticated, sess.State())
		_, ok := sess.Current()
		assert.False(t, ok)
	})

	t.Run("persisted identity is trusted", func(t *testing.T) {
		store := &stubStore{identity: &Identity{ID: "student-1", Email: "student@qemer.com", Role: "student"}}
		sess := newTestSession(store, 0)

		sess.Restore()

		assert.Equal(t, Authenticated, sess.State())
		identity, ok := sess.Current()
		assert.True(t, ok)
		assert.Equal(t, "student-1", identity.ID)
	})

	t.Run("unreadable store resolves to logged out", func(t *testing.T) {
		store := &stubStore{readErr: errors.New("invalid character 'x'")}
		sess := newTestSession(store, 0)

		sess.Restore()

		assert.False(t, sess.Loading())
		assert.Equal(t, Unauthenticated, sess.State())
		assert.Equal(t, 1, store.clears)
	})
}

func TestSessionLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		store := new(stubStore)
		sess := newTestSession(store, 0)

		ok, err := sess.Login(ctx, "student@qemer.com", "student123")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, Authenticated, sess.State())

		identity, loggedIn := sess.Current()
		assert.True(t, loggedIn)
		assert.Equal(t, "John Smith", identity.Name)
		assert.Equal(t, 1, store.writes)
	})

	t.Run("admin", func(t *testing.T) {
		sess := newTestSession(new(stubStore), 0)

		ok, err := sess.Login(ctx, "admin@qemer.com", "admin123")
		assert.NoError(t, err)
		assert.True(t, ok)

		identity, _ := sess.Current()
		assert.Equal(t, "admin", identity.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		store := new(stubStore)
		sess := newTestSession(store, 0)

		ok, err := sess.Login(ctx, "student@qemer.com", "letmein")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, Unauthenticated, sess.State())
		assert.Equal(t, 0, store.writes)
	})

	t.Run("unknown email", func(t *testing.T) {
		sess := newTestSession(new(stubStore), 0)

		ok, err := sess.Login(ctx, "ghost@qemer.com", "student123")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, Unauthenticated, sess.State())
	})

	t.Run("canceled during latency", func(t *testing.T) {
		sess := newTestSession(new(stubStore), time.Minute)

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		ok, err := sess.Login(cancelCtx, "student@qemer.com", "student123")
		assert.Equal(t, context.Canceled, errors.Cause(err))
		assert.False(t, ok)
		assert.Equal(t, Unauthenticated, sess.State())
	})

	t.Run("failed attempt keeps existing session", func(t *testing.T) {
		store := new(stubStore)
		sess := newTestSession(store, 0)

		ok, err := sess.Login(ctx, "student@qemer.com", "student123")
		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = sess.Login(ctx, "student@qemer.com", "letmein")
		assert.NoError(t, err)
		assert.False(t, ok)

		// memory and the durable slot still agree on the prior login
		assert.Equal(t, Authenticated, sess.State())
		identity, loggedIn := sess.Current()
		assert.True(t, loggedIn)
		assert.Equal(t, "student-1", identity.ID)
		if assert.NotNil(t, store.identity) {
			assert.Equal(t, "student-1", store.identity.ID)
		}
	})

	t.Run("canceled attempt keeps existing session", func(t *testing.T) {
		store := new(stubStore)
		sess := newTestSession(store, 0)

		ok, err := sess.Login(ctx, "student@qemer.com", "student123")
		assert.NoError(t, err)
		assert.True(t, ok)

		sess.latency = time.Minute
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		ok, err = sess.Login(cancelCtx, "admin@qemer.com", "admin123")
		assert.Equal(t, context.Canceled, errors.Cause(err))
		assert.False(t, ok)
		assert.Equal(t, Authenticated, sess.State())
		identity, loggedIn := sess.Current()
		assert.True(t, loggedIn)
		assert.Equal(t, "student-1", identity.ID)
	})

	t.Run("store write failure resolves to logged out", func(t *testing.T) {
		store := &stubStore{writeErr: errors.New("disk full")}
		sess := newTestSession(store, 0)

		ok, err := sess.Login(ctx, "student@qemer.com", "student123")
		assert.Error(t, err)
		assert.False(t, ok)
		assert.Equal(t, Unauthenticated, sess.State())
		_, loggedIn := sess.Current()
		assert.False(t, loggedIn)
	})

	t.Run("last write wins", func(t *testing.T) {
		store := new(stubStore)
		sess := newTestSession(store, 0)

		ok, err := sess.Login(ctx, "student@qemer.com", "student123")
		assert.NoError(t, err)
		assert.True(t, ok)
		ok, err = sess.Login(ctx, "admin@qemer.com", "admin123")
		assert.NoError(t, err)
		assert.True(t, ok)

		identity, _ := sess.Current()
		assert.Equal(t, "admin-1", identity.ID)
		assert.Equal(t, "admin-1", store.identity.ID)
	})
}

func TestSessionLogout(t *testing.T) {
	store := new(stubStore)
	sess := newTestSession(store, 0)

	ok, err := sess.Login(context.Background(), "student@qemer.com", "student123")
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, sess.Logout())
	assert.Equal(t, Unauthenticated, sess.State())
	_, loggedIn := sess.Current()
	assert.False(t, loggedIn)
	assert.Nil(t, store.identity)

	// logging out twice is fine
	assert.NoError(t, sess.Logout())
}

func TestSessionPersistsAcrossInstances(t *testing.T) {
	store := new(stubStore)

	first := newTestSession(store, 0)
	ok, err := first.Login(context.Background(), "student@qemer.com", "student123")
	assert.NoError(t, err)
	assert.True(t, ok)

	second := newTestSession(store, 0)
	second.Restore()

	assert.Equal(t, Authenticated, second.State())
	identity, _ := second.Current()
	assert.Equal(t, "student-1", identity.ID)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "authenticating", Authenticating.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}
