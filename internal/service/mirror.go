package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Timeout for one best-effort remote operation.
const mirrorTimeout = 5 * time.Second

// Mirror runs best-effort remote store writes as detached tasks. The
// initiating request never waits on them; a failure is logged and dropped,
// leaving the inconsistency to the next reconciling read. Wait drains
// in-flight tasks during graceful shutdown.
type Mirror struct {
	log     *logrus.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewMirror(log *logrus.Logger) *Mirror {
	return &Mirror{
		log:     log,
		timeout: mirrorTimeout,
	}
}

// Do runs fn detached from the caller with a fresh timeout context, so the
// mirror outlives the originating request.
func (m *Mirror) Do(name string, fn func(ctx context.Context) error) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			m.log.Warnf("Best-effort %s mirror failed: %+v", name, err)
		}
	}()
}

// Wait blocks until all in-flight mirror tasks have finished.
func (m *Mirror) Wait() {
	m.wg.Wait()
}
