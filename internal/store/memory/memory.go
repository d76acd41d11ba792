// Package memory keeps board blobs and change events inside the process.
// It backs the default "memory" storage mode and the tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
)

// subscriberBuffer is the number of payloads a subscriber may lag behind.
const subscriberBuffer = 64

// Store is a map of storage key to blob.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	saves int
}

func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("memory.Store.Load: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("memory.Store.Load: %q: %w", key, domain.ErrNotFound)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memory.Store.Save: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[key] = cp
	s.saves++
	return nil
}

// Saves reports how many writes the store has accepted.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// PubSub fans published payloads out to every subscriber of a channel.
// A subscriber whose buffer is full is dropped and its channel closed, so
// readers that fall behind resubscribe instead of silently missing events.
type PubSub struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

type subscriber struct {
	ch   chan []byte
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

func NewPubSub() *PubSub {
	return &PubSub{subs: make(map[string]map[*subscriber]struct{})}
}

func (ps *PubSub) Publish(_ context.Context, channel string, payload []byte) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for sub := range ps.subs[channel] {
		select {
		case sub.ch <- payload:
		default:
			log.Warn().Str("channel", channel).Msg("pubsub subscriber behind, dropping it")
			ps.removeLocked(channel, sub)
		}
	}
	return nil
}

func (ps *PubSub) Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("memory.PubSub.Subscribe: %w", err)
	}

	sub := &subscriber{ch: make(chan []byte, subscriberBuffer)}

	ps.mu.Lock()
	if ps.subs[channel] == nil {
		ps.subs[channel] = make(map[*subscriber]struct{})
	}
	ps.subs[channel][sub] = struct{}{}
	ps.mu.Unlock()

	cleanup := func() {
		ps.mu.Lock()
		defer ps.mu.Unlock()
		ps.removeLocked(channel, sub)
	}

	return sub.ch, cleanup, nil
}

// removeLocked must be called with ps.mu held.
func (ps *PubSub) removeLocked(channel string, sub *subscriber) {
	delete(ps.subs[channel], sub)
	if len(ps.subs[channel]) == 0 {
		delete(ps.subs, channel)
	}
	sub.close()
}
