package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/prospectboard/internal/domain/model"
)

// ProspectDependencies defines the interface for single prospect lookups.
type ProspectDependencies interface {
	Prospect(ctx context.Context, rank int) (model.Prospect, error)
}

// ProspectHandler handles prospect lookups.
type ProspectHandler struct {
	deps ProspectDependencies
}

// NewProspectHandler creates a new prospect handler.
func NewProspectHandler(deps ProspectDependencies) *ProspectHandler {
	return &ProspectHandler{deps: deps}
}

// HandleGetProspect handles GET /prospects/{rank} requests.
func (h *ProspectHandler) HandleGetProspect(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_prospect"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	// Extract path parameter after /prospects/
	path := strings.TrimPrefix(r.URL.Path, "/prospects/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	rank, err := strconv.Atoi(path)
	if err != nil || rank < 1 {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("rank must be a positive integer")))
		return
	}
	p, err := h.deps.Prospect(r.Context(), rank)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
