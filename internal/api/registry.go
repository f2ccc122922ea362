package api

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pfranke/highlow/internal/cards"
	"github.com/pfranke/highlow/internal/game"
	"github.com/pfranke/highlow/internal/prob"
)

var (
	// ErrSessionNotFound means the id maps to no live session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionLimit means the registry is at capacity.
	ErrSessionLimit = errors.New("session limit reached")
)

// watchBuffer is the per-watcher snapshot queue. A watcher that falls this
// far behind starts losing intermediate frames, never the final one it
// reads next.
const watchBuffer = 16

// hostedSession wraps one game session for concurrent service use. The
// core is single-writer by design, so every operation that touches it runs
// under the session mutex; the commit sequence is atomic as observed by
// any other caller.
type hostedSession struct {
	mu       sync.Mutex
	session  *game.Session
	lastUsed time.Time
	watchers map[chan game.Snapshot]struct{}
}

func newHostedSession(s *game.Session) *hostedSession {
	return &hostedSession{
		session:  s,
		lastUsed: time.Now(),
		watchers: make(map[chan game.Snapshot]struct{}),
	}
}

// Snapshot returns the current state.
func (h *hostedSession) Snapshot() game.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastUsed = time.Now()
	return h.session.Snapshot()
}

// Peek previews the move without mutating anything.
func (h *hostedSession) Peek(m game.Move) (game.PeekResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastUsed = time.Now()
	return h.session.PeekMove(m)
}

// commitResult carries the authoritative outcome of a commit. drawn and
// correct are nil when the commit was the redundant no-op after a win.
type commitResult struct {
	snapshot game.Snapshot
	drawn    *cards.Card
	correct  *bool
}

// Commit applies the move and pushes the resulting snapshot to watchers.
func (h *hostedSession) Commit(m game.Move) (commitResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastUsed = time.Now()

	// Capture what the commit will score before mutating; peek and commit
	// agree by construction. A peek failing with ErrOutOfCards is the
	// already-won no-op path, which commit itself arbitrates.
	var res commitResult
	if peeked, err := h.session.PeekMove(m); err == nil {
		res.drawn = &peeked.Drawn
		res.correct = &peeked.Correct
	}
	if err := h.session.CommitMove(m); err != nil {
		return commitResult{}, err
	}
	res.snapshot = h.session.Snapshot()
	for ch := range h.watchers {
		select {
		case ch <- res.snapshot:
		default: // slow watcher, drop the frame
		}
	}
	return res, nil
}

// Odds quotes the current top card of one stack against the session's
// seen-card ledger.
func (h *hostedSession) Odds(row, col int) (cards.Card, prob.Outcome, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastUsed = time.Now()
	ref, err := h.session.TopCard(row, col)
	if err != nil {
		return cards.Card{}, prob.Outcome{}, err
	}
	return ref, h.session.Odds(ref), nil
}

// watch subscribes to post-commit snapshots. The returned cancel func must
// be called exactly once.
func (h *hostedSession) watch() (<-chan game.Snapshot, func()) {
	ch := make(chan game.Snapshot, watchBuffer)
	h.mu.Lock()
	h.watchers[ch] = struct{}{}
	h.mu.Unlock()
	cancel := func() {
		h.mu.Lock()
		delete(h.watchers, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *hostedSession) idleSince(cutoff time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastUsed.Before(cutoff) && len(h.watchers) == 0
}

// Registry hosts the live sessions, keyed by UUID. Sessions are memory
// only and die with the process; idle ones are reaped after a TTL.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*hostedSession

	maxSessions int
	ttl         time.Duration
	logger      *log.Logger
}

// NewRegistry creates a registry capped at maxSessions, reaping sessions
// idle longer than ttl.
func NewRegistry(maxSessions int, ttl time.Duration, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		sessions:    make(map[uuid.UUID]*hostedSession),
		maxSessions: maxSessions,
		ttl:         ttl,
		logger:      logger,
	}
}

// Create starts a new game session and registers it.
func (r *Registry) Create(opts ...game.Option) (uuid.UUID, *hostedSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sessions) >= r.maxSessions {
		return uuid.Nil, nil, ErrSessionLimit
	}
	id := uuid.New()
	h := newHostedSession(game.New(opts...))
	r.sessions[id] = h
	return id, h, nil
}

// Get looks up a live session.
func (r *Registry) Get(id uuid.UUID) (*hostedSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return h, nil
}

// Delete drops a session. Returns ErrSessionNotFound if it was not there.
func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Run sweeps idle sessions until ctx is done. Intended for an errgroup.
func (r *Registry) Run(ctx context.Context) error {
	interval := r.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := r.reap(now); n > 0 {
				r.logger.Printf("sessions_reaped count=%d live=%d", n, r.Len())
			}
		}
	}
}

// reap removes sessions idle past the TTL, skipping any with watchers.
func (r *Registry) reap(now time.Time) int {
	cutoff := now.Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	reaped := 0
	for id, h := range r.sessions {
		if h.idleSince(cutoff) {
			delete(r.sessions, id)
			reaped++
		}
	}
	return reaped
}
