package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/prospectboard/internal/domain/types"
)

// LeadersDependencies defines the interface for leader boards.
type LeadersDependencies interface {
	Leaders(ctx context.Context, metric string, n int, direction string) (types.LeadersView, error)
}

// LeadersHandler handles leader board requests.
type LeadersHandler struct {
	deps         LeadersDependencies
	defaultLimit int
	maxLimit     int
}

// NewLeadersHandler creates a new leaders handler.
func NewLeadersHandler(deps LeadersDependencies, defaultLimit, maxLimit int) *LeadersHandler {
	return &LeadersHandler{
		deps:         deps,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// HandleGetLeaders handles GET /leaders?metric=era&limit=5&dir=asc requests.
func (h *LeadersHandler) HandleGetLeaders(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaders"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	metric := q.Get("metric")
	if metric == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, fmt.Errorf("missing metric")))
		return
	}

	n := h.defaultLimit
	if limitStr := q.Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded",
			WrapKind(op, ErrBadRequest, fmt.Errorf("limit %d exceeds %d", n, h.maxLimit)))
		return
	}

	view, err := h.deps.Leaders(r.Context(), metric, n, q.Get("dir"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
