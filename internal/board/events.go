package board

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
)

type EventType string

const (
	EventBoardUpdated EventType = "board_updated"
	EventCardAdded    EventType = "card_added"
	EventCardUpdated  EventType = "card_updated"
	EventCardRemoved  EventType = "card_removed"
	EventCardMoved    EventType = "card_moved"
	EventListAdded    EventType = "list_added"
	EventListUpdated  EventType = "list_updated"
	EventListDeleted  EventType = "list_deleted"
	EventListMoved    EventType = "list_moved"
)

// Event describes one committed mutation together with the resulting board.
type Event struct {
	Type        EventType     `json:"type"`
	CardID      string        `json:"card_id,omitempty"`
	ListID      string        `json:"list_id,omitempty"`
	ContainerID string        `json:"container_id,omitempty"`
	Board       *domain.Board `json:"board,omitempty"`
}

// Channel returns the pub/sub channel name for the board stored under key.
func Channel(key string) string {
	return "board:" + key
}

// commit hands the current board to the saver and publisher and returns a
// snapshot for the caller. Caller must hold s.mu.
func (s *Store) commit(ev Event) domain.Board {
	snap := s.board.Clone()
	if s.closed {
		return snap
	}

	if s.saves != nil {
		data, err := json.Marshal(snap)
		if err != nil {
			log.Error().Err(err).Str("key", s.key).Msg("board encode failed")
		} else {
			s.enqueueSave(data)
		}
	}

	if s.events != nil {
		ev.Board = &snap
		payload, err := json.Marshal(ev)
		if err != nil {
			log.Error().Err(err).Str("event", string(ev.Type)).Msg("board event encode failed")
			return snap
		}
		select {
		case s.events <- payload:
		default:
			log.Warn().Str("event", string(ev.Type)).Msg("board event dropped, publisher is behind")
		}
	}

	return snap
}

// enqueueSave replaces any save still waiting with data. Caller must hold s.mu.
func (s *Store) enqueueSave(data []byte) {
	for {
		select {
		case s.saves <- data:
			return
		default:
		}
		select {
		case <-s.saves:
		default:
		}
	}
}

func (s *Store) runSaver() {
	defer s.workers.Done()
	for data := range s.saves {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		if err := s.persister.Save(ctx, s.key, data); err != nil {
			log.Warn().Err(err).Str("key", s.key).Msg("board save failed")
		}
		cancel()
	}
}

func (s *Store) runPublisher() {
	defer s.workers.Done()
	channel := Channel(s.key)
	for payload := range s.events {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		if err := s.publisher.Publish(ctx, channel, payload); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("board event publish failed")
		}
		cancel()
	}
}
