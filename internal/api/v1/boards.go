package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type UpdateBoardTitleInput struct {
	Body struct {
		Title string `json:"title" maxLength:"200" doc:"Board title; may be empty"`
	}
}

type AddInboxCardInput struct {
	Body struct {
		Title string `json:"title" minLength:"1" maxLength:"500" doc:"Card title"`
	}
}

func RegisterBoardRoutes(api huma.API, store BoardStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-board",
		Method:      http.MethodGet,
		Path:        "/board",
		Summary:     "Get the board read model",
		Tags:        []string{"Board"},
	}, func(_ context.Context, _ *struct{}) (*BoardOutput, error) {
		return &BoardOutput{Body: store.Snapshot()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-board-title",
		Method:      http.MethodPut,
		Path:        "/board/title",
		Summary:     "Rename the board",
		Tags:        []string{"Board"},
	}, func(_ context.Context, input *UpdateBoardTitleInput) (*BoardOutput, error) {
		b, err := store.UpdateBoardTitle(input.Body.Title)
		if err != nil {
			return nil, boardError(err, "board not found")
		}
		return &BoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-inbox-card",
		Method:        http.MethodPost,
		Path:          "/inbox/cards",
		Summary:       "Add a card to the top of the inbox",
		Tags:          []string{"Cards"},
		DefaultStatus: http.StatusCreated,
	}, func(_ context.Context, input *AddInboxCardInput) (*BoardOutput, error) {
		b, err := store.AddCardToInbox(input.Body.Title)
		if err != nil {
			return nil, boardError(err, "inbox not found")
		}
		return &BoardOutput{Body: b}, nil
	})
}
