package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/goliatone/go-solutions/internal/categories"
	"github.com/goliatone/go-solutions/internal/hierarchy"
	"github.com/goliatone/go-solutions/internal/site"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/goliatone/go-solutions/internal/validation"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

func writeUnavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if errors.Is(err, blocks.ErrUnknownVariant) {
		return http.StatusBadRequest, errorResponse{
			Error:   "unknown_variant",
			Message: err.Error(),
		}
	}

	if errors.Is(err, validation.ErrSchemaValidation) ||
		errors.Is(err, blocks.ErrInvalidProps) ||
		errors.Is(err, solutions.ErrDraftInvalid) ||
		errors.Is(err, categories.ErrCategoryInvalid) {
		return http.StatusBadRequest, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	if solutions.IsNotFound(err) ||
		categories.IsNotFound(err) ||
		errors.Is(err, site.ErrPageNotFound) ||
		errors.Is(err, blocks.ErrNotFound) ||
		errors.Is(err, categories.ErrItemNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, solutions.ErrSlugExists) ||
		errors.Is(err, solutions.ErrAlreadyExists) ||
		errors.Is(err, categories.ErrSlugExists) ||
		errors.Is(err, solutions.ErrVersionConflict) ||
		errors.Is(err, hierarchy.ErrHasChildren) ||
		errors.Is(err, hierarchy.ErrCycle) ||
		errors.Is(err, hierarchy.ErrContention) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, solutions.ErrNameRequired) ||
		errors.Is(err, solutions.ErrSlugInvalid) ||
		errors.Is(err, solutions.ErrChildSelf) ||
		errors.Is(err, solutions.ErrChildNotFound) ||
		errors.Is(err, blocks.ErrTagMismatch) ||
		errors.Is(err, blocks.ErrPropsRequired) ||
		errors.Is(err, categories.ErrTitleRequired) ||
		errors.Is(err, categories.ErrSlugInvalid) ||
		errors.Is(err, categories.ErrItemNameRequired) ||
		errors.Is(err, categories.ErrFeatureIndex) ||
		errors.Is(err, categories.ErrFeatureRequired) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}
