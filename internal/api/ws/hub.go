package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/coder/websocket"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/board"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
)

// Subscriber is satisfied by both the Redis and the in-process pub/sub.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}

// Snapshotter supplies the board sent to a client when it connects.
type Snapshotter interface {
	Snapshot() domain.Board
}

// Hub manages WebSocket connections that follow one board.
type Hub struct {
	sub            Subscriber
	board          Snapshotter
	channel        string
	originPatterns []string
}

// NewHub creates a hub streaming the events published on channel.
// Cross-origin upgrades are accepted from the given browser origins,
// the same list the CORS middleware allows.
func NewHub(sub Subscriber, b Snapshotter, channel string, origins []string) *Hub {
	return &Hub{sub: sub, board: b, channel: channel, originPatterns: originHosts(origins)}
}

// originHosts turns origins such as "http://localhost:3000" into the host
// patterns websocket.AcceptOptions matches against.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			hosts = append(hosts, o)
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			log.Warn().Str("origin", o).Msg("websocket: ignoring malformed origin")
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}

// ServeBoard sends the current board as a board_updated event, then relays
// every event published for the board until the client goes away.
func (h *Hub) ServeBoard(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(r.Context())

	messages, cleanup, err := h.sub.Subscribe(ctx, h.channel)
	if err != nil {
		log.Error().Err(err).Msg("websocket subscribe")
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer cleanup()

	snap := h.board.Snapshot()
	initial, err := json.Marshal(board.Event{Type: board.EventBoardUpdated, Board: &snap})
	if err != nil {
		log.Error().Err(err).Msg("websocket marshal snapshot")
		_ = conn.Close(websocket.StatusInternalError, "snapshot failed")
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, initial); err != nil {
		log.Debug().Err(err).Msg("websocket write")
		return
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		case msg, msgOK := <-messages:
			if !msgOK {
				_ = conn.Close(websocket.StatusNormalClosure, "channel closed")
				return
			}
			if writeErr := conn.Write(ctx, websocket.MessageText, msg); writeErr != nil {
				log.Debug().Err(writeErr).Msg("websocket write")
				return
			}
		}
	}
}
