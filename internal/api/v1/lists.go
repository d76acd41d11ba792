package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type AddListInput struct {
	Body struct {
		Title string `json:"title" maxLength:"200" doc:"List title"`
	}
}

type UpdateListTitleInput struct {
	ListID string `path:"listID" doc:"List ID"`
	Body   struct {
		Title string `json:"title" maxLength:"200" doc:"List title"`
	}
}

type DeleteListInput struct {
	ListID string `path:"listID" doc:"List ID"`
}

type AddListCardInput struct {
	ListID string `path:"listID" doc:"List ID"`
	Body   struct {
		Title string `json:"title" minLength:"1" maxLength:"500" doc:"Card title"`
	}
}

type MoveListInput struct {
	ListID string `path:"listID" doc:"List ID"`
	Body   struct {
		Index int `json:"index" doc:"Destination position in the list order, clamped"`
	}
}

func RegisterListRoutes(api huma.API, store BoardStore) {
	huma.Register(api, huma.Operation{
		OperationID:   "add-list",
		Method:        http.MethodPost,
		Path:          "/lists",
		Summary:       "Append a new list",
		Tags:          []string{"Lists"},
		DefaultStatus: http.StatusCreated,
	}, func(_ context.Context, input *AddListInput) (*BoardOutput, error) {
		b, err := store.AddList(input.Body.Title)
		if err != nil {
			return nil, boardError(err, "board not found")
		}
		return &BoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-list-title",
		Method:      http.MethodPut,
		Path:        "/lists/{listID}/title",
		Summary:     "Rename a list",
		Tags:        []string{"Lists"},
	}, func(_ context.Context, input *UpdateListTitleInput) (*BoardOutput, error) {
		b, err := store.UpdateListTitle(input.ListID, input.Body.Title)
		if err != nil {
			return nil, boardError(err, "list not found")
		}
		return &BoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-list",
		Method:      http.MethodDelete,
		Path:        "/lists/{listID}",
		Summary:     "Delete a list; its cards are kept without a container",
		Tags:        []string{"Lists"},
	}, func(_ context.Context, input *DeleteListInput) (*BoardOutput, error) {
		b, err := store.DeleteList(input.ListID)
		if err != nil {
			return nil, boardError(err, "list not found")
		}
		return &BoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-list-card",
		Method:        http.MethodPost,
		Path:          "/lists/{listID}/cards",
		Summary:       "Append a card to a list",
		Tags:          []string{"Cards"},
		DefaultStatus: http.StatusCreated,
	}, func(_ context.Context, input *AddListCardInput) (*BoardOutput, error) {
		b, err := store.AddCardToList(input.ListID, input.Body.Title)
		if err != nil {
			return nil, boardError(err, "list not found")
		}
		return &BoardOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-list",
		Method:      http.MethodPost,
		Path:        "/lists/{listID}/move",
		Summary:     "Move a list to another position",
		Tags:        []string{"Lists"},
	}, func(_ context.Context, input *MoveListInput) (*BoardOutput, error) {
		b, err := store.MoveList(input.ListID, input.Body.Index)
		if err != nil {
			return nil, boardError(err, "list not found")
		}
		return &BoardOutput{Body: b}, nil
	})
}
