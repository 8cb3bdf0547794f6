package testutil

import (
	"path/filepath"
	"testing"

	"github.com/qemer/lms/core"
)

// NewConfig returns a Config suitable for tests: no debug noise, no simulated
// login latency, and a session file under a per-test temp dir.
func NewConfig(t *testing.T) *core.Config {
	t.Helper()

	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.LoginLatency = 0
	conf.SessionPath = filepath.Join(t.TempDir(), "session.json")
	return conf
}
