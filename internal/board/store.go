// Package board owns the board aggregate and is the only writer of it.
// Every mutation runs under a single mutex, returns a deep-copied read model,
// and schedules persistence and change notification without waiting on them.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
)

// DefaultKey is the storage key the board blob is kept under.
const DefaultKey = "trello-board-data"

// Persister reads and writes the serialized board. Load returns an error
// wrapping domain.ErrNotFound when nothing is stored under key.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Publisher delivers change events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type Option func(*Store)

// WithPersister enables saving after every committed mutation.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithPublisher enables change events on Channel(key).
func WithPublisher(p Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithIDGenerator replaces the uuid source used for new card and list ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithWriteTimeout bounds each background save or publish.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Store) { s.writeTimeout = d }
}

type Store struct {
	mu     sync.Mutex
	board  domain.Board
	closed bool

	key          string
	persister    Persister
	publisher    Publisher
	newID        func() string
	writeTimeout time.Duration

	saves   chan []byte
	events  chan []byte
	workers sync.WaitGroup
}

// New creates a store around b. b is sanitized and copied; the caller keeps
// ownership of its value.
func New(b domain.Board, opts ...Option) *Store {
	s := &Store{
		board:        b.Sanitize(),
		key:          DefaultKey,
		newID:        uuid.NewString,
		writeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.persister != nil {
		s.saves = make(chan []byte, 1)
		s.workers.Add(1)
		go s.runSaver()
	}
	if s.publisher != nil {
		s.events = make(chan []byte, 64)
		s.workers.Add(1)
		go s.runPublisher()
	}

	return s
}

// Open loads the board stored under the configured key, falling back to the
// seed dataset when nothing is stored or the blob cannot be decoded. Open
// never writes; the first save happens after the first committed mutation.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	probe := &Store{key: DefaultKey}
	for _, opt := range opts {
		opt(probe)
	}

	b, err := load(ctx, p, probe.key)
	if err != nil {
		return nil, fmt.Errorf("board.Open: %w", err)
	}

	return New(b, append(opts, WithPersister(p))...), nil
}

func load(ctx context.Context, p Persister, key string) (domain.Board, error) {
	data, err := p.Load(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		log.Info().Str("key", key).Msg("no stored board, using seed")
		return domain.Seed(), nil
	}
	if err != nil {
		return domain.Board{}, err
	}

	var b domain.Board
	if err := json.Unmarshal(data, &b); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stored board is unreadable, using seed")
		return domain.Seed(), nil
	}

	log.Info().Str("key", key).Int("cards", len(b.Cards)).Int("lists", len(b.Lists)).Msg("board loaded")
	return b, nil
}

// Close stops background work after the pending save and events are written,
// or when ctx is done. Mutations after Close still apply in memory.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		if s.saves != nil {
			close(s.saves)
		}
		if s.events != nil {
			close(s.events)
		}
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("board.Store.Close: %w", ctx.Err())
	}
}

// Key returns the storage key of the board.
func (s *Store) Key() string {
	return s.key
}

// Snapshot returns the current read model.
func (s *Store) Snapshot() domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// AddCardToInbox creates a card and puts it first in the inbox.
func (s *Store) AddCardToInbox(title string) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	if title == "" {
		return s.board.Clone(), fmt.Errorf("board.AddCardToInbox: empty title: %w", domain.ErrValidation)
	}

	id := s.freshID("c-")
	s.board.Cards[id] = domain.Card{ID: id, Title: title}
	s.board.InboxIDs = slices.Insert(s.board.InboxIDs, 0, id)

	return s.commit(Event{Type: EventCardAdded, CardID: id, ContainerID: domain.InboxID}), nil
}

// AddCardToList creates a card at the end of a list.
func (s *Store) AddCardToList(listID, title string) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.board.Lists[listID]
	if !ok {
		return s.board.Clone(), fmt.Errorf("board.AddCardToList: list %q: %w", listID, domain.ErrNotFound)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return s.board.Clone(), fmt.Errorf("board.AddCardToList: empty title: %w", domain.ErrValidation)
	}

	id := s.freshID("c-")
	s.board.Cards[id] = domain.Card{ID: id, Title: title}
	l.CardIDs = append(l.CardIDs, id)

	return s.commit(Event{Type: EventCardAdded, CardID: id, ContainerID: listID}), nil
}

// RemoveCard deletes a card that containerID currently holds.
func (s *Store) RemoveCard(cardID, containerID string) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, ok := s.board.Container(containerID)
	if !ok {
		return s.board.Clone(), fmt.Errorf("board.RemoveCard: container %q: %w", containerID, domain.ErrNotFound)
	}
	idx := slices.Index(ids, cardID)
	if idx < 0 {
		return s.board.Clone(), fmt.Errorf("board.RemoveCard: card %q in %q: %w", cardID, containerID, domain.ErrNotFound)
	}

	s.setContainer(containerID, slices.Delete(ids, idx, idx+1))
	delete(s.board.Cards, cardID)

	return s.commit(Event{Type: EventCardRemoved, CardID: cardID, ContainerID: containerID}), nil
}

// UpdateCardTitle renames a card. Blank titles are rejected.
func (s *Store) UpdateCardTitle(cardID, title string) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.board.Cards[cardID]
	if !ok {
		return s.board.Clone(), fmt.Errorf("board.UpdateCardTitle: card %q: %w", cardID, domain.ErrNotFound)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return s.board.Clone(), fmt.Errorf("board.UpdateCardTitle: empty title: %w", domain.ErrValidation)
	}

	c.Title = title
	s.board.Cards[cardID] = c

	return s.commit(Event{Type: EventCardUpdated, CardID: cardID}), nil
}

// SetCardSource sets the cosmetic source tag of a card.
func (s *Store) SetCardSource(cardID string, source domain.CardSource) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.board.Cards[cardID]
	if !ok {
		return s.board.Clone(), fmt.Errorf("board.SetCardSource: card %q: %w", cardID, domain.ErrNotFound)
	}
	if !source.Valid() {
		return s.board.Clone(), fmt.Errorf("board.SetCardSource: source %q: %w", source, domain.ErrValidation)
	}

	c.Source = source
	s.board.Cards[cardID] = c

	return s.commit(Event{Type: EventCardUpdated, CardID: cardID}), nil
}

// UpdateBoardTitle replaces the board title. An empty title is accepted.
func (s *Store) UpdateBoardTitle(title string) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board.Title = title

	return s.commit(Event{Type: EventBoardUpdated}), nil
}

// UpdateListTitle replaces a list title.
func (s *Store) UpdateListTitle(listID, title string) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.board.Lists[listID]
	if !ok {
		return s.board.Clone(), fmt.Errorf("board.UpdateListTitle: list %q: %w", listID, domain.ErrNotFound)
	}

	l.Title = title

	return s.commit(Event{Type: EventListUpdated, ListID: listID}), nil
}

// AddList appends an empty list colored by the current list count.
func (s *Store) AddList(title string) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.freshID("list-")
	s.board.Lists[id] = &domain.List{
		ID:      id,
		Title:   title,
		CardIDs: []string{},
		Color:   domain.PaletteColor(len(s.board.ListOrder)),
	}
	s.board.ListOrder = append(s.board.ListOrder, id)

	return s.commit(Event{Type: EventListAdded, ListID: id}), nil
}

// DeleteList removes a list. Its cards stay in the card map without an
// owning container.
func (s *Store) DeleteList(listID string) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.board.ListIndex(listID)
	if idx < 0 {
		return s.board.Clone(), fmt.Errorf("board.DeleteList: list %q: %w", listID, domain.ErrNotFound)
	}

	s.board.ListOrder = slices.Delete(s.board.ListOrder, idx, idx+1)
	delete(s.board.Lists, listID)

	return s.commit(Event{Type: EventListDeleted, ListID: listID}), nil
}

// MoveCard removes cardID from source and inserts it at destIndex in dest,
// clamped to the destination bounds. source and dest may be the same
// container.
func (s *Store) MoveCard(cardID, sourceID, destID string, destIndex int) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.board.Container(sourceID)
	if !ok {
		return s.board.Clone(), fmt.Errorf("board.MoveCard: source %q: %w", sourceID, domain.ErrNotFound)
	}
	dst, ok := s.board.Container(destID)
	if !ok {
		return s.board.Clone(), fmt.Errorf("board.MoveCard: destination %q: %w", destID, domain.ErrNotFound)
	}
	idx := slices.Index(src, cardID)
	if idx < 0 {
		return s.board.Clone(), fmt.Errorf("board.MoveCard: card %q in %q: %w", cardID, sourceID, domain.ErrNotFound)
	}

	if sourceID == destID {
		seq := slices.Delete(src, idx, idx+1)
		to := clamp(destIndex, len(seq))
		if to == idx {
			s.setContainer(sourceID, slices.Insert(seq, idx, cardID))
			return s.board.Clone(), nil
		}
		s.setContainer(sourceID, slices.Insert(seq, to, cardID))
	} else {
		s.setContainer(sourceID, slices.Delete(src, idx, idx+1))
		s.setContainer(destID, slices.Insert(dst, clamp(destIndex, len(dst)), cardID))
	}

	return s.commit(Event{Type: EventCardMoved, CardID: cardID, ContainerID: destID}), nil
}

// MoveList reinserts listID at destIndex in the display order, clamped.
func (s *Store) MoveList(listID string, destIndex int) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.board.ListIndex(listID)
	if idx < 0 {
		return s.board.Clone(), fmt.Errorf("board.MoveList: list %q: %w", listID, domain.ErrNotFound)
	}

	order := slices.Delete(s.board.ListOrder, idx, idx+1)
	to := clamp(destIndex, len(order))
	s.board.ListOrder = slices.Insert(order, to, listID)
	if to == idx {
		return s.board.Clone(), nil
	}

	return s.commit(Event{Type: EventListMoved, ListID: listID}), nil
}

// freshID returns prefix+uuid that is neither a card, a list nor the inbox.
// Caller must hold s.mu.
func (s *Store) freshID(prefix string) string {
	for {
		id := prefix + s.newID()
		if id == domain.InboxID {
			continue
		}
		if _, taken := s.board.Cards[id]; taken {
			continue
		}
		if _, taken := s.board.Lists[id]; taken {
			continue
		}
		return id
	}
}

// setContainer stores ids as the ordering of containerID, which must exist.
// Caller must hold s.mu.
func (s *Store) setContainer(containerID string, ids []string) {
	if containerID == domain.InboxID {
		s.board.InboxIDs = ids
		return
	}
	s.board.Lists[containerID].CardIDs = ids
}

func clamp(i, n int) int {
	return max(0, min(i, n))
}
