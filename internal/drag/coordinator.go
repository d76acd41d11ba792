// Package drag turns pointer-drag gestures into board moves.
//
// A Coordinator commits moves while the gesture is still in progress: a card
// hovering over another column is moved there immediately, and a list
// hovering over another list's slot is reordered immediately. Cancel does not
// undo those moves. Callers needing a buffered preview can supply their own
// implementation of the same Start/Over/End/Cancel surface.
package drag

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
)

type Kind string

const (
	KindCard Kind = "card"
	KindList Kind = "list"
)

// Board is the part of the board store a coordinator drives.
// *board.Store satisfies this interface.
type Board interface {
	Snapshot() domain.Board
	MoveCard(cardID, sourceID, destID string, destIndex int) (domain.Board, error)
	MoveList(listID string, destIndex int) (domain.Board, error)
}

// State is the observable state of a coordinator. The zero value is idle.
type State struct {
	Dragging bool   `json:"dragging"`
	Kind     Kind   `json:"kind,omitempty"`
	ActiveID string `json:"active_id,omitempty"`
	Origin   string `json:"origin,omitempty"`
}

var ErrNotDragging = errors.New("drag: no gesture in progress")

// Coordinator tracks a single gesture.
type Coordinator struct {
	mu    sync.Mutex
	board Board
	state State
}

func NewCoordinator(b Board) *Coordinator {
	return &Coordinator{board: b}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins a gesture over a card or a list handle. Anything else, or an
// id the board does not know, leaves the coordinator idle.
func (c *Coordinator) Start(kind Kind, activeID string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := c.board.Snapshot()

	var origin string
	switch kind {
	case KindCard:
		containerID, _, ok := b.Locate(activeID)
		if !ok {
			return c.state, fmt.Errorf("drag.Start: card %q: %w", activeID, domain.ErrNotFound)
		}
		origin = containerID
	case KindList:
		if b.ListIndex(activeID) < 0 {
			return c.state, fmt.Errorf("drag.Start: list %q: %w", activeID, domain.ErrNotFound)
		}
		origin = activeID
	default:
		return c.state, fmt.Errorf("drag.Start: kind %q: %w", kind, domain.ErrNotDraggable)
	}

	c.state = State{Dragging: true, Kind: kind, ActiveID: activeID, Origin: origin}
	return c.state, nil
}

// Over reports the candidate drop target under the pointer: a card id, a
// list id, or domain.InboxID.
func (c *Coordinator) Over(targetID string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Dragging {
		return c.state, fmt.Errorf("drag.Over: %w", ErrNotDragging)
	}
	if targetID == "" || targetID == c.state.ActiveID {
		return c.state, nil
	}

	b := c.board.Snapshot()

	switch c.state.Kind {
	case KindList:
		to, ok := listSlot(b, targetID)
		if !ok || to == b.ListIndex(c.state.ActiveID) {
			return c.state, nil
		}
		c.moveList(to)
	case KindCard:
		current, _, ok := b.Locate(c.state.ActiveID)
		if !ok {
			return c.state, nil
		}
		dest, index, ok := cardSlot(b, targetID, current)
		if !ok || dest == current {
			return c.state, nil
		}
		c.moveCard(current, dest, index)
	}

	return c.state, nil
}

// End finishes the gesture. An empty targetID means the pointer was released
// over nothing and no final move is made.
func (c *Coordinator) End(targetID string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Dragging {
		return c.state, fmt.Errorf("drag.End: %w", ErrNotDragging)
	}
	defer func() { c.state = State{} }()

	if targetID == "" || targetID == c.state.ActiveID {
		return State{}, nil
	}

	b := c.board.Snapshot()

	switch c.state.Kind {
	case KindList:
		to, ok := listSlot(b, targetID)
		if ok && to != b.ListIndex(c.state.ActiveID) {
			c.moveList(to)
		}
	case KindCard:
		current, index, ok := b.Locate(c.state.ActiveID)
		if !ok {
			break
		}
		dest, to, ok := cardSlot(b, targetID, current)
		if ok && (dest != current || to != index) {
			c.moveCard(current, dest, to)
		}
	}

	return State{}, nil
}

// Cancel abandons the gesture. Moves committed by Over stay applied.
func (c *Coordinator) Cancel() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = State{}
	return c.state
}

func (c *Coordinator) moveList(to int) {
	if _, err := c.board.MoveList(c.state.ActiveID, to); err != nil {
		log.Debug().Err(err).Str("list", c.state.ActiveID).Msg("drag list move skipped")
	}
}

func (c *Coordinator) moveCard(from, to string, index int) {
	if _, err := c.board.MoveCard(c.state.ActiveID, from, to, index); err != nil {
		log.Debug().Err(err).Str("card", c.state.ActiveID).Msg("drag card move skipped")
	}
}

// listSlot resolves a list-drag target to a position in listOrder. A card
// target stands for the list that holds it.
func listSlot(b domain.Board, targetID string) (int, bool) {
	if i := b.ListIndex(targetID); i >= 0 {
		return i, true
	}
	containerID, _, ok := b.Locate(targetID)
	if !ok || containerID == domain.InboxID {
		return 0, false
	}
	return b.ListIndex(containerID), true
}

// cardSlot resolves a card-drag target to a container and index. Over a
// card, the index is that card's position. Over a container, it is the end
// of the container, or its last slot when the dragged card already lives
// there (current).
func cardSlot(b domain.Board, targetID, current string) (string, int, bool) {
	if ids, ok := b.Container(targetID); ok {
		if targetID == current {
			return targetID, len(ids) - 1, true
		}
		return targetID, len(ids), true
	}
	containerID, index, ok := b.Locate(targetID)
	if !ok {
		return "", 0, false
	}
	return containerID, index, true
}
