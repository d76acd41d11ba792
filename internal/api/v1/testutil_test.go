package v1_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	v1 "github.com/lilzcyyds-alt/trello-board-prototype/internal/api/v1"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/board"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/drag"
)

// newSeedAPI registers every board route against a store holding the seed
// board.
func newSeedAPI(t *testing.T) (humatest.TestAPI, *board.Store) {
	t.Helper()

	store := board.New(domain.Seed())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = store.Close(ctx)
	})

	_, api := humatest.New(t)
	v1.RegisterBoardRoutes(api, store)
	v1.RegisterListRoutes(api, store)
	v1.RegisterCardRoutes(api, store)
	v1.RegisterDragRoutes(api, store, drag.NewRegistry(store, time.Minute))
	return api, store
}

func decodeBoard(t *testing.T, resp *httptest.ResponseRecorder) domain.Board {
	t.Helper()

	var b domain.Board
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	return b
}

func decodeDrag(t *testing.T, resp *httptest.ResponseRecorder) v1.DragBody {
	t.Helper()

	var body v1.DragBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ---------------------------------------------------------------------------
// Failing store: every mutation reports a backend fault
// ---------------------------------------------------------------------------

type failingStore struct {
	v1.BoardStore
	err error
}

func (f failingStore) AddList(string) (domain.Board, error) {
	return domain.Board{}, f.err
}
