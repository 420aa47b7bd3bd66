package engine

import "sync"

// playerLocks serializes engine operations per player. Entries are
// reference-counted and removed once the last holder releases, so the map
// does not grow with the historical player population.
type playerLocks struct {
	mu      sync.Mutex
	entries map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newPlayerLocks() *playerLocks {
	return &playerLocks{entries: make(map[int64]*lockEntry)}
}

// acquire blocks until the per-player lock is held and returns the release
// function. The caller must invoke release exactly once.
func (l *playerLocks) acquire(playerID int64) (release func()) {
	l.mu.Lock()
	e, ok := l.entries[playerID]
	if !ok {
		e = &lockEntry{}
		l.entries[playerID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, playerID)
		}
		l.mu.Unlock()
	}
}
