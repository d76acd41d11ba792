package drag_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/board"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/drag"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// spyBoard counts the moves a coordinator commits.
type spyBoard struct {
	*board.Store
	cardMoves int
	listMoves int
}

func (s *spyBoard) MoveCard(cardID, sourceID, destID string, destIndex int) (domain.Board, error) {
	s.cardMoves++
	return s.Store.MoveCard(cardID, sourceID, destID, destIndex)
}

func (s *spyBoard) MoveList(listID string, destIndex int) (domain.Board, error) {
	s.listMoves++
	return s.Store.MoveList(listID, destIndex)
}

// fixture: todo=[c1,c2], doing=[c3,c4], done=[], inbox=[c7].
func newFixture(t *testing.T) *spyBoard {
	t.Helper()

	b := domain.NewBoard("Drag")
	for _, id := range []string{"c1", "c2", "c3", "c4", "c7"} {
		b.Cards[id] = domain.Card{ID: id, Title: id}
	}
	b.Lists["todo"] = &domain.List{ID: "todo", CardIDs: []string{"c1", "c2"}}
	b.Lists["doing"] = &domain.List{ID: "doing", CardIDs: []string{"c3", "c4"}}
	b.Lists["done"] = &domain.List{ID: "done", CardIDs: []string{}}
	b.ListOrder = []string{"todo", "doing", "done"}
	b.InboxIDs = []string{"c7"}

	s := board.New(b)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return &spyBoard{Store: s}
}

func cardsOf(t *testing.T, b *spyBoard, container string) []string {
	t.Helper()
	ids, ok := b.Snapshot().Container(container)
	require.True(t, ok)
	return ids
}

// ---------------------------------------------------------------------------
// Start
// ---------------------------------------------------------------------------

func TestStart(t *testing.T) {
	t.Parallel()

	t.Run("card records origin container", func(t *testing.T) {
		t.Parallel()

		c := drag.NewCoordinator(newFixture(t))
		st, err := c.Start(drag.KindCard, "c3")
		require.NoError(t, err)

		assert.Equal(t, drag.State{Dragging: true, Kind: drag.KindCard, ActiveID: "c3", Origin: "doing"}, st)
		assert.Equal(t, st, c.State())
	})

	t.Run("inbox card", func(t *testing.T) {
		t.Parallel()

		c := drag.NewCoordinator(newFixture(t))
		st, err := c.Start(drag.KindCard, "c7")
		require.NoError(t, err)
		assert.Equal(t, domain.InboxID, st.Origin)
	})

	t.Run("list origin is itself", func(t *testing.T) {
		t.Parallel()

		c := drag.NewCoordinator(newFixture(t))
		st, err := c.Start(drag.KindList, "done")
		require.NoError(t, err)
		assert.Equal(t, "done", st.Origin)
	})

	tests := []struct {
		name    string
		kind    drag.Kind
		id      string
		wantErr error
	}{
		{"unsupported kind", drag.Kind("column-header"), "todo", domain.ErrNotDraggable},
		{"empty kind", drag.Kind(""), "c1", domain.ErrNotDraggable},
		{"unknown card", drag.KindCard, "ghost", domain.ErrNotFound},
		{"unknown list", drag.KindList, "ghost", domain.ErrNotFound},
		{"card id as list", drag.KindList, "c1", domain.ErrNotFound},
		{"list id as card", drag.KindCard, "todo", domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := drag.NewCoordinator(newFixture(t))
			st, err := c.Start(tt.kind, tt.id)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, drag.State{}, st)
			assert.False(t, c.State().Dragging)
		})
	}
}

func TestOverAndEnd_RequireGesture(t *testing.T) {
	t.Parallel()

	c := drag.NewCoordinator(newFixture(t))

	_, err := c.Over("todo")
	assert.ErrorIs(t, err, drag.ErrNotDragging)

	_, err = c.End("todo")
	assert.ErrorIs(t, err, drag.ErrNotDragging)

	assert.Equal(t, drag.State{}, c.Cancel())
}

// ---------------------------------------------------------------------------
// Card gestures
// ---------------------------------------------------------------------------

func TestCardOver_OtherContainerMovesImmediately(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindCard, "c1")
	require.NoError(t, err)

	_, err = c.Over("c4")
	require.NoError(t, err)

	assert.Equal(t, []string{"c2"}, cardsOf(t, b, "todo"))
	assert.Equal(t, []string{"c3", "c1", "c4"}, cardsOf(t, b, "doing"))
	assert.Equal(t, 1, b.cardMoves)
	assert.Equal(t, "todo", c.State().Origin, "origin is not rewritten by intermediate moves")
}

func TestCardOver_ContainerAppends(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindCard, "c2")
	require.NoError(t, err)

	_, err = c.Over("doing")
	require.NoError(t, err)
	assert.Equal(t, []string{"c3", "c4", "c2"}, cardsOf(t, b, "doing"))

	_, err = c.Over("done")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, cardsOf(t, b, "done"))

	_, err = c.Over(domain.InboxID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c7", "c2"}, cardsOf(t, b, domain.InboxID))
	assert.Equal(t, 3, b.cardMoves)
}

func TestCardOver_SameContainerDefersToEnd(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindCard, "c3")
	require.NoError(t, err)

	_, err = c.Over("c4")
	require.NoError(t, err)
	assert.Equal(t, []string{"c3", "c4"}, cardsOf(t, b, "doing"))
	assert.Zero(t, b.cardMoves)

	st, err := c.End("c4")
	require.NoError(t, err)
	assert.Equal(t, drag.State{}, st)
	assert.Equal(t, []string{"c4", "c3"}, cardsOf(t, b, "doing"))
	assert.Equal(t, 1, b.cardMoves)
}

func TestCardOver_SelfAndUnknownIgnored(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindCard, "c1")
	require.NoError(t, err)

	for _, target := range []string{"c1", "", "ghost"} {
		st, err := c.Over(target)
		require.NoError(t, err)
		assert.True(t, st.Dragging)
	}
	assert.Zero(t, b.cardMoves)
}

func TestCardGesture_TravelThenRelease(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindCard, "c7")
	require.NoError(t, err)

	// Inbox -> doing (over c3) -> todo (over c2), then released over c1.
	_, err = c.Over("c3")
	require.NoError(t, err)
	_, err = c.Over("c2")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c7", "c2"}, cardsOf(t, b, "todo"))
	assert.Equal(t, []string{"c3", "c4"}, cardsOf(t, b, "doing"))

	_, err = c.End("c1")
	require.NoError(t, err)

	assert.Equal(t, []string{"c7", "c1", "c2"}, cardsOf(t, b, "todo"))
	assert.Empty(t, cardsOf(t, b, domain.InboxID))
	assert.Equal(t, 3, b.cardMoves)
	require.NoError(t, b.Snapshot().Validate())
}

func TestCardEnd_SameIndexNoMove(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindCard, "c1")
	require.NoError(t, err)
	_, err = c.Over("c4")
	require.NoError(t, err)

	// c1 now sits at index 1 in doing; releasing over itself is not a move.
	_, err = c.End("c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c3", "c1", "c4"}, cardsOf(t, b, "doing"))
	assert.Equal(t, 1, b.cardMoves)
}

func TestCardEnd_OwnContainerGoesLast(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindCard, "c3")
	require.NoError(t, err)

	_, err = c.End("doing")
	require.NoError(t, err)
	assert.Equal(t, []string{"c4", "c3"}, cardsOf(t, b, "doing"))
}

func TestCardEnd_OverNothingKeepsIntermediateMoves(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindCard, "c1")
	require.NoError(t, err)
	_, err = c.Over("done")
	require.NoError(t, err)

	st, err := c.End("")
	require.NoError(t, err)
	assert.False(t, st.Dragging)
	assert.Equal(t, []string{"c1"}, cardsOf(t, b, "done"))
	assert.Equal(t, 1, b.cardMoves)
}

func TestCancel_KeepsIntermediateMoves(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindCard, "c4")
	require.NoError(t, err)
	_, err = c.Over("c1")
	require.NoError(t, err)

	assert.Equal(t, drag.State{}, c.Cancel())
	assert.Equal(t, []string{"c4", "c1", "c2"}, cardsOf(t, b, "todo"))
	assert.Equal(t, []string{"c3"}, cardsOf(t, b, "doing"))

	_, err = c.Over("c2")
	assert.ErrorIs(t, err, drag.ErrNotDragging)
}

func TestCardGesture_CardDeletedMidDrag(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindCard, "c1")
	require.NoError(t, err)

	_, err = b.RemoveCard("c1", "todo")
	require.NoError(t, err)

	_, err = c.Over("doing")
	require.NoError(t, err)
	_, err = c.End("c3")
	require.NoError(t, err)
	assert.Zero(t, b.cardMoves)
	require.NoError(t, b.Snapshot().Validate())
}

// ---------------------------------------------------------------------------
// List gestures
// ---------------------------------------------------------------------------

func TestListOver_ReordersImmediately(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindList, "done")
	require.NoError(t, err)

	_, err = c.Over("doing")
	require.NoError(t, err)
	assert.Equal(t, []string{"todo", "done", "doing"}, b.Snapshot().ListOrder)

	_, err = c.Over("todo")
	require.NoError(t, err)
	assert.Equal(t, []string{"done", "todo", "doing"}, b.Snapshot().ListOrder)

	// Hovering where it already is does nothing.
	_, err = c.Over("done")
	require.NoError(t, err)
	assert.Equal(t, 2, b.listMoves)
}

func TestListOver_CardTargetResolvesToItsList(t *testing.T) {
	t.Parallel()

	b := newFixture(t)
	c := drag.NewCoordinator(b)
	_, err := c.Start(drag.KindList, "todo")
	require.NoError(t, err)

	_, err = c.Over("c4")
	require.NoError(t, err)
	assert.Equal(t, []string{"doing", "todo", "done"}, b.Snapshot().ListOrder)

	// Inbox and inbox cards are not list slots.
	_, err = c.Over(domain.InboxID)
	require.NoError(t, err)
	_, err = c.Over("c7")
	require.NoError(t, err)
	assert.Equal(t, 1, b.listMoves)
	assert.Zero(t, b.cardMoves, "a list gesture never moves cards")
}

func TestListEnd(t *testing.T) {
	t.Parallel()

	t.Run("final move to released slot", func(t *testing.T) {
		t.Parallel()

		b := newFixture(t)
		c := drag.NewCoordinator(b)
		_, err := c.Start(drag.KindList, "todo")
		require.NoError(t, err)

		_, err = c.End("done")
		require.NoError(t, err)
		assert.Equal(t, []string{"doing", "done", "todo"}, b.Snapshot().ListOrder)
		assert.False(t, c.State().Dragging)
	})

	t.Run("released over nothing", func(t *testing.T) {
		t.Parallel()

		b := newFixture(t)
		c := drag.NewCoordinator(b)
		_, err := c.Start(drag.KindList, "todo")
		require.NoError(t, err)

		_, err = c.End("")
		require.NoError(t, err)
		assert.Equal(t, []string{"todo", "doing", "done"}, b.Snapshot().ListOrder)
		assert.Zero(t, b.listMoves)
	})

	t.Run("released on current slot", func(t *testing.T) {
		t.Parallel()

		b := newFixture(t)
		c := drag.NewCoordinator(b)
		_, err := c.Start(drag.KindList, "doing")
		require.NoError(t, err)
		_, err = c.Over("todo")
		require.NoError(t, err)

		_, err = c.End("c3")
		require.NoError(t, err)
		assert.Equal(t, []string{"doing", "todo", "done"}, b.Snapshot().ListOrder)
		assert.Equal(t, 1, b.listMoves)
	})
}
