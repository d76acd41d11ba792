package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lilzcyyds-alt/trello-board-prototype/internal/domain"
)

type UpdateCardTitleInput struct {
	CardID string `path:"cardID" doc:"Card ID"`
	Body   struct {
		Title string `json:"title" minLength:"1" maxLength:"500" doc:"Card title"`
	}
}

type SetCardSourceInput struct {
	CardID string `path:"cardID" doc:"Card ID"`
	Body   struct {
		Source string `json:"source" doc:"One of email, slack, teams, chrome, or empty to clear"`
	}
}

type MoveCardInput struct {
	CardID string `path:"cardID" doc:"Card ID"`
	Body   struct {
		Source      string `json:"source" minLength:"1" doc:"Container currently holding the card (list ID or inbox)"`
		Destination string `json:"destination" minLength:"1" doc:"Destination container (list ID or inbox)"`
		Index       int    `json:"index" doc:"Destination position, clamped"`
	}
}

type RemoveCardInput struct {
	ContainerID string `path:"containerID" doc:"List ID or inbox"`
	CardID      string `path:"cardID" doc:"Card ID"`
}

func RegisterCardRoutes(api huma.API, store BoardStore) {
	huma.Register(api, huma.Operation{
		OperationID: "update-card-title",
		Method:      http.MethodPut,
		Path:        "/cards/{cardID}/title",
		Summary:     "Rename a card",
		Tags:        []string{"Cards"},
	}, func(_ context.Context, input *UpdateCardTitleInput) (*BoardOutput, error) {
		b, err := store.UpdateCardTitle(input.CardID, input.Body.Title)
		if err != nil {
			return nil, boardError(err, "card not found")
		}
		return &BoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-card-source",
		Method:      http.MethodPut,
		Path:        "/cards/{cardID}/source",
		Summary:     "Tag a card with where it came from",
		Tags:        []string{"Cards"},
	}, func(_ context.Context, input *SetCardSourceInput) (*BoardOutput, error) {
		b, err := store.SetCardSource(input.CardID, domain.CardSource(input.Body.Source))
		if err != nil {
			return nil, boardError(err, "card not found")
		}
		return &BoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-card",
		Method:      http.MethodPost,
		Path:        "/cards/{cardID}/move",
		Summary:     "Move a card within or between containers",
		Tags:        []string{"Cards"},
	}, func(_ context.Context, input *MoveCardInput) (*BoardOutput, error) {
		b, err := store.MoveCard(input.CardID, input.Body.Source, input.Body.Destination, input.Body.Index)
		if err != nil {
			return nil, boardError(err, "card or container not found")
		}
		return &BoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-card",
		Method:      http.MethodDelete,
		Path:        "/containers/{containerID}/cards/{cardID}",
		Summary:     "Complete or remove a card",
		Tags:        []string{"Cards"},
	}, func(_ context.Context, input *RemoveCardInput) (*BoardOutput, error) {
		b, err := store.RemoveCard(input.CardID, input.ContainerID)
		if err != nil {
			return nil, boardError(err, "card not found in container")
		}
		return &BoardOutput{Body: b}, nil
	})
}
