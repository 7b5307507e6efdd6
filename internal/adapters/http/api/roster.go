package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/prospectboard/internal/domain/types"
)

// RosterDependencies defines the interface for roster reads.
type RosterDependencies interface {
	Roster(ctx context.Context, filter types.RosterFilter) (types.RosterView, error)
}

// RefreshDependencies defines the interface for forced reloads.
type RefreshDependencies interface {
	Refresh(ctx context.Context) (types.SnapshotInfo, error)
}

// RosterHandler handles roster requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleGetRoster handles GET /roster?kind=&level= requests. The response
// carries an ETag derived from the snapshot id and filter; a matching
// If-None-Match yields 304.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_roster"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	filter, err := types.ParseFilter(q.Get("kind"), q.Get("level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	view, err := h.deps.Roster(r.Context(), filter)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	tag := etag(view.ID, filter)
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func etag(snapshotID string, f types.RosterFilter) string {
	if f.IsZero() {
		return `"` + snapshotID + `"`
	}
	return `"` + snapshotID + ";" + string(f.Kind) + ";" + string(f.Level) + `"`
}

func etagMatches(header, tag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}

// RefreshHandler handles forced roster reloads.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandleRefresh handles POST /roster/refresh requests.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.refresh_roster"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	snap, err := h.deps.Refresh(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
