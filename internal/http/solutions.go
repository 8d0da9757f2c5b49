package http

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-solutions/internal/hierarchy"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/google/uuid"
)

const updateAttempts = 3

type partialLinkResponse struct {
	Solution *solutions.Solution `json:"solution"`
	Error    string              `json:"error"`
	Message  string              `json:"message"`
}

func (api *AdminAPI) registerSolutionRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "solutions")
	mux.HandleFunc("GET "+root, api.handleSolutionList)
	mux.HandleFunc("POST "+root, api.handleSolutionCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleSolutionGet)
	mux.HandleFunc("PUT "+root+"/{id}", api.handleSolutionUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleSolutionDelete)
	mux.HandleFunc("PUT "+root+"/{id}/children/{childID}", api.handleChildAttach)
	mux.HandleFunc("DELETE "+root+"/{id}/children/{childID}", api.handleChildDetach)
}

func (api *AdminAPI) handleSolutionList(w http.ResponseWriter, r *http.Request) {
	if api.solutions == nil {
		writeUnavailable(w)
		return
	}
	list, err := api.solutions.List(r.Context(), solutions.Filter{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handleSolutionGet(w http.ResponseWriter, r *http.Request) {
	if api.solutions == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	record, err := api.solutions.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleSolutionCreate(w http.ResponseWriter, r *http.Request) {
	if api.solutions == nil {
		writeUnavailable(w)
		return
	}
	var payload solutionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	draft, err := payload.toDraft(uuid.Nil)
	if err != nil {
		writeError(w, err)
		return
	}

	if payload.ParentID == nil || *payload.ParentID == uuid.Nil {
		created, err := api.solutions.Save(r.Context(), draft)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
		return
	}

	if api.hierarchy == nil {
		writeUnavailable(w)
		return
	}
	created, err := api.hierarchy.SaveChild(r.Context(), *payload.ParentID, draft)
	var partial *hierarchy.PartialLinkError
	switch {
	case errors.As(err, &partial):
		api.logger.Warn("http.solution.partial_link", "parent_id", partial.ParentID.String(), "child_id", partial.ChildID.String())
		writeJSON(w, http.StatusAccepted, partialLinkResponse{
			Solution: created,
			Error:    "partial_link",
			Message:  partial.Error(),
		})
	case err != nil:
		writeError(w, err)
	default:
		writeJSON(w, http.StatusCreated, created)
	}
}

func (api *AdminAPI) handleSolutionUpdate(w http.ResponseWriter, r *http.Request) {
	if api.solutions == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	existing, err := api.solutions.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload solutionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	draft, err := payload.toDraft(id)
	if err != nil {
		writeError(w, err)
		return
	}
	// Omitting children keeps the stored links; child saves own that field.
	// The CAS is pinned to the version the links were read at, so a child
	// attached in between forces a re-read instead of being overwritten.
	keepChildren := payload.Children == nil
	unversioned := payload.Version == 0
	for attempt := 1; ; attempt++ {
		if keepChildren {
			draft.Children = existing.Children
		}
		if unversioned {
			draft.Version = existing.Version
		}
		updated, err := api.solutions.Save(r.Context(), draft)
		if err == nil {
			writeJSON(w, http.StatusOK, updated)
			return
		}
		if !unversioned || !errors.Is(err, solutions.ErrVersionConflict) || attempt >= updateAttempts {
			writeError(w, err)
			return
		}
		if existing, err = api.solutions.Get(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
	}
}

func (api *AdminAPI) handleSolutionDelete(w http.ResponseWriter, r *http.Request) {
	if api.hierarchy == nil {
		writeUnavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := api.hierarchy.DeleteSolution(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handleChildAttach(w http.ResponseWriter, r *http.Request) {
	api.handleChildLink(w, r, func(manager *hierarchy.Manager, r *http.Request, parentID, childID uuid.UUID) error {
		return manager.AttachChild(r.Context(), parentID, childID)
	})
}

func (api *AdminAPI) handleChildDetach(w http.ResponseWriter, r *http.Request) {
	api.handleChildLink(w, r, func(manager *hierarchy.Manager, r *http.Request, parentID, childID uuid.UUID) error {
		return manager.DetachChild(r.Context(), parentID, childID)
	})
}

func (api *AdminAPI) handleChildLink(w http.ResponseWriter, r *http.Request, apply func(*hierarchy.Manager, *http.Request, uuid.UUID, uuid.UUID) error) {
	if api.hierarchy == nil {
		writeUnavailable(w)
		return
	}
	parentID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	childID, err := parseUUID(r.PathValue("childID"))
	if err != nil {
		writeBadRequest(w, "invalid child id")
		return
	}
	if err := apply(api.hierarchy, r, parentID, childID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
