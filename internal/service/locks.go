package service

import "sync"

// sessionLocks hands out one mutex per session id so that different
// sessions never contend. An entry lives only while someone holds or waits
// for it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{
		locks: make(map[string]*sessionLock),
	}
}

// lock acquires the session mutex and returns its release func.
func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sessionLock{}
		l.locks[id] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()

	return func() {
		m.Unlock()

		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.locks)
}

// presence counts the live connections bound to each player.
type presence struct {
	mu    sync.Mutex
	conns map[string]int
}

func newPresence() *presence {
	return &presence{
		conns: make(map[string]int),
	}
}

func (p *presence) add(playerID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.conns[playerID]++

	return p.conns[playerID]
}

// done releases one connection and returns how many are still open.
func (p *presence) done(playerID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := p.conns[playerID] - 1
	if n <= 0 {
		delete(p.conns, playerID)
		return 0
	}
	p.conns[playerID] = n

	return n
}
