package v1

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/drag"
)

// BoardStore abstracts the board mutation API for handler testing.
// *board.Store satisfies this interface.
type BoardStore interface {
	Snapshot() domain.Board
	AddCardToInbox(title string) (domain.Board, error)
	AddCardToList(listID, title string) (domain.Board, error)
	RemoveCard(cardID, containerID string) (domain.Board, error)
	UpdateCardTitle(cardID, title string) (domain.Board, error)
	SetCardSource(cardID string, source domain.CardSource) (domain.Board, error)
	UpdateBoardTitle(title string) (domain.Board, error)
	UpdateListTitle(listID, title string) (domain.Board, error)
	AddList(title string) (domain.Board, error)
	DeleteList(listID string) (domain.Board, error)
	MoveCard(cardID, sourceID, destID string, destIndex int) (domain.Board, error)
	MoveList(listID string, destIndex int) (domain.Board, error)
}

// DragSessions abstracts per-client drag gestures for handler testing.
// *drag.Registry satisfies this interface.
type DragSessions interface {
	Start(kind drag.Kind, activeID string) (uuid.UUID, drag.State, error)
	Over(id uuid.UUID, targetID string) (drag.State, error)
	End(id uuid.UUID, targetID string) (drag.State, error)
	Cancel(id uuid.UUID) (drag.State, error)
}

// BoardOutput carries the read model after an operation.
type BoardOutput struct {
	Body domain.Board
}

// boardError maps store and drag errors onto HTTP problems.
func boardError(err error, notFound string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(notFound)
	case errors.Is(err, domain.ErrValidation):
		return huma.Error422UnprocessableEntity("invalid input", err)
	case errors.Is(err, domain.ErrNotDraggable):
		return huma.Error422UnprocessableEntity("only cards and lists can be dragged", err)
	case errors.Is(err, drag.ErrNotDragging):
		return huma.Error409Conflict("no drag in progress")
	default:
		return huma.Error500InternalServerError("board operation failed", err)
	}
}
