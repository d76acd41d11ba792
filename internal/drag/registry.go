package drag

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
)

type session struct {
	coord      *Coordinator
	lastAccess time.Time
}

// Registry holds the in-flight gestures of all connected clients, one
// Coordinator per session id. Sessions idle for longer than ttl are dropped
// without a final move.
type Registry struct {
	board Board
	ttl   time.Duration
	now   func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func NewRegistry(b Board, ttl time.Duration) *Registry {
	return &Registry{
		board:    b,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*session),
	}
}

// Run sweeps expired sessions until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	interval := r.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// Sweep drops sessions idle for longer than the ttl and reports how many.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	n := 0
	for id, s := range r.sessions {
		if s.lastAccess.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Len reports the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Start opens a session and starts its gesture. No session is kept when the
// gesture cannot start.
func (r *Registry) Start(kind Kind, activeID string) (uuid.UUID, State, error) {
	coord := NewCoordinator(r.board)
	st, err := coord.Start(kind, activeID)
	if err != nil {
		return uuid.Nil, st, err
	}

	id := uuid.New()
	r.mu.Lock()
	r.sessions[id] = &session{coord: coord, lastAccess: r.now()}
	r.mu.Unlock()

	return id, st, nil
}

func (r *Registry) Over(id uuid.UUID, targetID string) (State, error) {
	coord, err := r.touch(id)
	if err != nil {
		return State{}, err
	}
	return coord.Over(targetID)
}

// End finishes the gesture and closes the session.
func (r *Registry) End(id uuid.UUID, targetID string) (State, error) {
	coord, err := r.touch(id)
	if err != nil {
		return State{}, err
	}
	r.remove(id)
	return coord.End(targetID)
}

// Cancel abandons the gesture and closes the session.
func (r *Registry) Cancel(id uuid.UUID) (State, error) {
	coord, err := r.touch(id)
	if err != nil {
		return State{}, err
	}
	r.remove(id)
	return coord.Cancel(), nil
}

func (r *Registry) touch(id uuid.UUID) (*Coordinator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("drag.Registry: session %s: %w", id, domain.ErrNotFound)
	}
	s.lastAccess = r.now()
	return s.coord, nil
}

func (r *Registry) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
