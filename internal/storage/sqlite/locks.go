package sqlite

import (
	"context"
	"sync"
)

// projectLocks hands out one lock per project id. Entries are dropped once
// no goroutine holds or waits on them.
type projectLocks struct {
	mu    sync.Mutex
	locks map[string]*projectLock
}

type projectLock struct {
	ch   chan struct{}
	refs int
}

func newProjectLocks() *projectLocks {
	return &projectLocks{locks: make(map[string]*projectLock)}
}

// acquire blocks until the project's lock is held or ctx is done.
func (l *projectLocks) acquire(ctx context.Context, projectID string) (func(), error) {
	l.mu.Lock()
	pl, ok := l.locks[projectID]
	if !ok {
		pl = &projectLock{ch: make(chan struct{}, 1)}
		l.locks[projectID] = pl
	}
	pl.refs++
	l.mu.Unlock()

	select {
	case pl.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(projectID, pl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-pl.ch
			l.unref(projectID, pl)
		})
	}, nil
}

func (l *projectLocks) unref(projectID string, pl *projectLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pl.refs--
	if pl.refs == 0 {
		delete(l.locks, projectID)
	}
}

// size reports the number of tracked projects.
func (l *projectLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
