package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
)

func TestUpdateCardTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cardID   string
		title    string
		wantCode int
	}{
		{name: "happy_path", cardID: "c1", title: "Renamed", wantCode: http.StatusOK},
		{name: "blank_title", cardID: "c1", title: "   ", wantCode: http.StatusUnprocessableEntity},
		{name: "unknown_card", cardID: "c404", title: "Renamed", wantCode: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			api, store := newSeedAPI(t)
			before := store.Snapshot()

			resp := api.Put("/cards/"+tc.cardID+"/title", map[string]any{"title": tc.title})
			require.Equal(t, tc.wantCode, resp.Code)
			if tc.wantCode == http.StatusOK {
				assert.Equal(t, tc.title, store.Snapshot().Cards[tc.cardID].Title)
				return
			}
			assert.Equal(t, before, store.Snapshot())
		})
	}
}

func TestSetCardSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		wantCode int
		want     domain.CardSource
	}{
		{name: "slack", source: "slack", wantCode: http.StatusOK, want: domain.CardSourceSlack},
		{name: "cleared", source: "", wantCode: http.StatusOK, want: domain.CardSourceNone},
		{name: "unknown_source", source: "fax", wantCode: http.StatusUnprocessableEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			api, store := newSeedAPI(t)

			resp := api.Put("/cards/c7/source", map[string]any{"source": tc.source})
			require.Equal(t, tc.wantCode, resp.Code)
			if tc.wantCode == http.StatusOK {
				assert.Equal(t, tc.want, store.Snapshot().Cards["c7"].Source)
			}
		})
	}
}

func TestMoveCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cardID      string
		source      string
		destination string
		index       int
		wantCode    int
		check       func(t *testing.T, b domain.Board)
	}{
		{
			name:        "between_lists",
			cardID:      "c1",
			source:      "list-todo",
			destination: "list-done",
			index:       0,
			wantCode:    http.StatusOK,
			check: func(t *testing.T, b domain.Board) {
				assert.Equal(t, []string{"c2"}, b.Lists["list-todo"].CardIDs)
				assert.Equal(t, []string{"c1", "c6"}, b.Lists["list-done"].CardIDs)
			},
		},
		{
			name:        "inbox_to_list",
			cardID:      "c8",
			source:      domain.InboxID,
			destination: "list-todo",
			index:       1,
			wantCode:    http.StatusOK,
			check: func(t *testing.T, b domain.Board) {
				assert.Equal(t, []string{"c7"}, b.InboxIDs)
				assert.Equal(t, []string{"c1", "c8", "c2"}, b.Lists["list-todo"].CardIDs)
			},
		},
		{
			name:        "reorder_within_list",
			cardID:      "c3",
			source:      "list-doing",
			destination: "list-doing",
			index:       2,
			wantCode:    http.StatusOK,
			check: func(t *testing.T, b domain.Board) {
				assert.Equal(t, []string{"c4", "c5", "c3"}, b.Lists["list-doing"].CardIDs)
			},
		},
		{
			name:        "negative_index_clamped",
			cardID:      "c6",
			source:      "list-done",
			destination: "list-doing",
			index:       -5,
			wantCode:    http.StatusOK,
			check: func(t *testing.T, b domain.Board) {
				assert.Equal(t, []string{"c6", "c3", "c4", "c5"}, b.Lists["list-doing"].CardIDs)
			},
		},
		{
			name:        "wrong_source",
			cardID:      "c1",
			source:      "list-done",
			destination: "list-doing",
			wantCode:    http.StatusNotFound,
		},
		{
			name:        "unknown_destination",
			cardID:      "c1",
			source:      "list-todo",
			destination: "list-nope",
			wantCode:    http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			api, store := newSeedAPI(t)
			before := store.Snapshot()

			resp := api.Post("/cards/"+tc.cardID+"/move", map[string]any{
				"source":      tc.source,
				"destination": tc.destination,
				"index":       tc.index,
			})
			require.Equal(t, tc.wantCode, resp.Code)
			if tc.check != nil {
				tc.check(t, decodeBoard(t, resp))
				return
			}
			assert.Equal(t, before, store.Snapshot())
		})
	}
}

func TestRemoveCard(t *testing.T) {
	t.Parallel()

	t.Run("from_inbox", func(t *testing.T) {
		t.Parallel()

		api, _ := newSeedAPI(t)

		resp := api.Delete("/containers/inbox/cards/c7")
		require.Equal(t, http.StatusOK, resp.Code)

		b := decodeBoard(t, resp)
		assert.Equal(t, []string{"c8"}, b.InboxIDs)
		assert.NotContains(t, b.Cards, "c7")
	})

	t.Run("wrong_container", func(t *testing.T) {
		t.Parallel()

		api, store := newSeedAPI(t)
		before := store.Snapshot()

		resp := api.Delete("/containers/list-todo/cards/c7")
		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, before, store.Snapshot())
	})
}
