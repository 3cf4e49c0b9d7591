package page

import (
	"context"
	"sync"

	"intellica/pkg/log"
	"intellica/pkg/status"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Checker performs the backend health check and returns the backend message.
type Checker interface {
	Check(ctx context.Context) (string, error)
}

// Page is the Intellica status page. It owns the backend status and issues
// exactly one health check per mount.
type Page struct {
	checker Checker
	cell    *status.Cell
	logger  zerolog.Logger

	mu      sync.Mutex
	mounted bool
	used    bool
	mountID string
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates an unmounted page.
func New(checker Checker) *Page {
	return &Page{
		checker: checker,
		cell:    status.NewCell(),
		logger:  log.Component("page"),
		done:    make(chan struct{}),
	}
}

// Mount starts the health check. Calling Mount more than once is a no-op,
// as is mounting a page that was already unmounted.
func (p *Page) Mount(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.used {
		p.logger.Debug().Str("mount_id", p.mountID).Msg("Page already mounted, skipping health check")
		return
	}

	mountCtx, cancel := context.WithCancel(ctx)
	p.used = true
	p.mounted = true
	p.mountID = uuid.NewString()
	p.cancel = cancel

	p.logger.Info().Str("mount_id", p.mountID).Msg("Page mounted, checking backend")

	go p.checkBackend(mountCtx)
}

// Unmount cancels a pending health check. A result that arrives afterwards
// is dropped.
func (p *Page) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.mounted {
		return
	}

	p.mounted = false
	p.cancel()
	p.logger.Info().Str("mount_id", p.mountID).Msg("Page unmounted")
}

// Done is closed once the health check has settled or been dropped.
func (p *Page) Done() <-chan struct{} {
	return p.done
}

// MountID identifies the current mount; empty before Mount.
func (p *Page) MountID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mountID
}

// Status returns the current backend status snapshot.
func (p *Page) Status() status.Snapshot {
	return p.cell.Load()
}

// StatusText returns the user-visible status string.
func (p *Page) StatusText() string {
	return p.cell.Text()
}

func (p *Page) checkBackend(ctx context.Context) {
	defer close(p.done)

	message, err := p.checker.Check(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.mounted {
		p.logger.Debug().Str("mount_id", p.mountID).Msg("Page unmounted before health check settled, dropping result")
		return
	}

	if err != nil {
		p.logger.Debug().Err(err).Str("mount_id", p.mountID).Msg("Backend health check failed")
		p.cell.Fail()
		return
	}

	p.logger.Debug().Str("mount_id", p.mountID).Str("message", message).Msg("Backend health check succeeded")
	p.cell.Connect(message)
}
