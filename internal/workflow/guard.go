package workflow

import (
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"tabbatch/internal/services"
)

// Guard serializes operations that drive keyboard and window focus, within
// the process and across processes sharing the same lock file.
type Guard struct {
	mu   sync.Mutex
	lock *flock.Flock
}

// NewGuard constructs a guard. An empty lockPath disables the cross-process lock.
func NewGuard(lockPath string) *Guard {
	g := &Guard{}
	if path := strings.TrimSpace(lockPath); path != "" {
		g.lock = flock.New(path)
	}
	return g
}

// Acquire takes the guard without blocking. The returned release function must
// be called exactly once.
func (g *Guard) Acquire() (func(), error) {
	if !g.mu.TryLock() {
		return nil, services.Wrap(services.ErrBusy, "workflow", "acquire guard", "another automation run is in progress", nil)
	}
	if g.lock == nil {
		return g.mu.Unlock, nil
	}
	ok, err := g.lock.TryLock()
	if err != nil {
		g.mu.Unlock()
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "acquire guard", "lock "+g.lock.Path(), err)
	}
	if !ok {
		g.mu.Unlock()
		return nil, services.Wrap(services.ErrBusy, "workflow", "acquire guard", "another tabbatch process is automating the browser", nil)
	}
	return func() {
		_ = g.lock.Unlock()
		g.mu.Unlock()
	}, nil
}
