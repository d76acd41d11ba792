package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
	"github.com/lilzcyyds-alt/trello-board-prototype/internal/drag"
)

type StartDragInput struct {
	Body struct {
		Kind     string `json:"kind" doc:"card or list"`
		ActiveID string `json:"active_id" minLength:"1" doc:"ID of the dragged card or list"`
	}
}

type DragOverInput struct {
	SessionID uuid.UUID `path:"sessionID" doc:"Drag session ID"`
	Body      struct {
		Target string `json:"target" doc:"Card ID, list ID or inbox under the pointer"`
	}
}

type DragEndInput struct {
	SessionID uuid.UUID `path:"sessionID" doc:"Drag session ID"`
	Body      struct {
		Target string `json:"target,omitempty" doc:"Drop target; empty when released over nothing"`
	}
}

type DragCancelInput struct {
	SessionID uuid.UUID `path:"sessionID" doc:"Drag session ID"`
}

type DragBody struct {
	SessionID uuid.UUID    `json:"session_id"`
	State     drag.State   `json:"state"`
	Board     domain.Board `json:"board"`
}

type DragOutput struct {
	Body DragBody
}

func RegisterDragRoutes(api huma.API, store BoardStore, sessions DragSessions) {
	huma.Register(api, huma.Operation{
		OperationID:   "start-drag",
		Method:        http.MethodPost,
		Path:          "/drag",
		Summary:       "Begin dragging a card or list",
		Tags:          []string{"Drag"},
		DefaultStatus: http.StatusCreated,
	}, func(_ context.Context, input *StartDragInput) (*DragOutput, error) {
		id, st, err := sessions.Start(drag.Kind(input.Body.Kind), input.Body.ActiveID)
		if err != nil {
			return nil, boardError(err, "drag source not found")
		}
		return &DragOutput{Body: DragBody{SessionID: id, State: st, Board: store.Snapshot()}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "drag-over",
		Method:      http.MethodPost,
		Path:        "/drag/{sessionID}/over",
		Summary:     "Report the target under the pointer",
		Tags:        []string{"Drag"},
	}, func(_ context.Context, input *DragOverInput) (*DragOutput, error) {
		st, err := sessions.Over(input.SessionID, input.Body.Target)
		if err != nil {
			return nil, boardError(err, "drag session not found")
		}
		return &DragOutput{Body: DragBody{SessionID: input.SessionID, State: st, Board: store.Snapshot()}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "drag-end",
		Method:      http.MethodPost,
		Path:        "/drag/{sessionID}/end",
		Summary:     "Release the dragged item",
		Tags:        []string{"Drag"},
	}, func(_ context.Context, input *DragEndInput) (*DragOutput, error) {
		st, err := sessions.End(input.SessionID, input.Body.Target)
		if err != nil {
			return nil, boardError(err, "drag session not found")
		}
		return &DragOutput{Body: DragBody{SessionID: input.SessionID, State: st, Board: store.Snapshot()}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "drag-cancel",
		Method:      http.MethodDelete,
		Path:        "/drag/{sessionID}",
		Summary:     "Abort a drag; moves already made are kept",
		Tags:        []string{"Drag"},
	}, func(_ context.Context, input *DragCancelInput) (*DragOutput, error) {
		st, err := sessions.Cancel(input.SessionID)
		if err != nil {
			return nil, boardError(err, "drag session not found")
		}
		return &DragOutput{Body: DragBody{SessionID: input.SessionID, State: st, Board: store.Snapshot()}}, nil
	})
}
