package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lib/pq"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/security"
	"rentdesk-backend/internal/service"
)

// postgres error classes surfaced to clients as conflicts
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// listResponse is the envelope for paged list endpoints.
type listResponse struct {
	Items      interface{} `json:"items"`
	TotalCount int32       `json:"total_count"`
	Page       int32       `json:"page"`
	PageSize   int32       `json:"page_size"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeList(w http.ResponseWriter, items interface{}, total int32, page domain.Page) {
	writeJSON(w, http.StatusOK, listResponse{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		PageSize:   page.Size,
	})
}

// writeError maps service errors onto HTTP statuses. Unexpected errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classifyError(err)
	reqID := RequestIDFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "request_id", reqID, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: msg, RequestID: reqID})
}

func classifyError(err error) (int, string) {
	var pqErr *pq.Error
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		return http.StatusUnauthorized, err.Error()
	case errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation:
		return http.StatusConflict, "record is referenced by other records"
	case errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation:
		return http.StatusConflict, "record already exists"
	}
	return http.StatusInternalServerError, "internal server error"
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", domain.ErrValidation, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, name, raw)
	}
	return int32(id), nil
}

// queryID reads an optional positive id from the query string; 0 when absent.
func queryID(r *http.Request, name string) (int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, name, raw)
	}
	return int32(id), nil
}

func pageFromQuery(r *http.Request) domain.Page {
	q := r.URL.Query()
	number, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	size, _ := strconv.ParseInt(q.Get("page_size"), 10, 32)
	return domain.NewPage(int32(number), int32(size))
}
