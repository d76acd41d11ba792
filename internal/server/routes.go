package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/lilzcyyds-alt/trello-board-prototype/internal/api/v1"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/api/ws"
)

func registerAPIRoutes(api huma.API, store v1.BoardStore, sessions v1.DragSessions) {
	v1.RegisterBoardRoutes(api, store)
	v1.RegisterListRoutes(api, store)
	v1.RegisterCardRoutes(api, store)
	v1.RegisterDragRoutes(api, store, sessions)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/board", hub.ServeBoard)
}
