package http

import (
	"net/http"

	"github.com/goliatone/go-solutions/internal/categories"
)

type categoryItemPayload struct {
	Name           string   `json:"name"`
	ShortDesc      string   `json:"shortDesc"`
	FullDesc       string   `json:"fullDesc"`
	Features       []string `json:"features"`
	Implementation string   `json:"implementation"`
}

type categoryCreatePayload struct {
	Title       string                `json:"title"`
	Slug        string                `json:"slug"`
	ImageURL    string                `json:"imageUrl"`
	Description string                `json:"description"`
	Solutions   []categoryItemPayload `json:"solutions"`
}

type categoryUpdatePayload struct {
	Title       *string                `json:"title,omitempty"`
	Slug        *string                `json:"slug,omitempty"`
	ImageURL    *string                `json:"imageUrl,omitempty"`
	Description *string                `json:"description,omitempty"`
	Solutions   *[]categoryItemPayload `json:"solutions,omitempty"`
}

func toItemInputs(payloads []categoryItemPayload) []categories.ItemInput {
	inputs := make([]categories.ItemInput, 0, len(payloads))
	for _, payload := range payloads {
		inputs = append(inputs, categories.ItemInput(payload))
	}
	return inputs
}

func (api *AdminAPI) registerCategoryRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "categories")
	mux.HandleFunc("GET "+root, api.handleCategoryList)
	mux.HandleFunc("POST "+root, api.handleCategoryCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleCategoryGet)
	mux.HandleFunc("PUT "+root+"/{id}", api.handleCategoryUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleCategoryDelete)
}

func (api *AdminAPI) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	if api.categories == nil {
		writeUnavailable(w)
		return
	}
	list, err := api.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handleCategoryGet(w http.ResponseWriter, r *http.Request) {
	if api.categories == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	record, err := api.categories.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	if api.categories == nil {
		writeUnavailable(w)
		return
	}
	var payload categoryCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	created, err := api.categories.Create(r.Context(), categories.CreateCategoryInput{
		Title:       payload.Title,
		Slug:        payload.Slug,
		ImageURL:    payload.ImageURL,
		Description: payload.Description,
		Items:       toItemInputs(payload.Solutions),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	if api.categories == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	var payload categoryUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	input := categories.UpdateCategoryInput{
		ID:          id,
		Title:       payload.Title,
		Slug:        payload.Slug,
		ImageURL:    payload.ImageURL,
		Description: payload.Description,
	}
	if payload.Solutions != nil {
		items := toItemInputs(*payload.Solutions)
		input.Items = &items
	}
	updated, err := api.categories.Update(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if api.categories == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := api.categories.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
