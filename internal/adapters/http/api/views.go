package api

import (
	"context"
	"net/http"

	"github.com/okian/prospectboard/internal/domain/types"
)

// SummaryDependencies defines the interface for the headline summary.
type SummaryDependencies interface {
	Summary(ctx context.Context) (types.SummaryView, error)
}

// ChartsDependencies defines the interface for chart datasets.
type ChartsDependencies interface {
	Charts(ctx context.Context) (types.ChartsView, error)
}

// SummaryHandler handles summary requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /summary requests.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	view, err := h.deps.Summary(r.Context())
	if err != nil {
		writeServiceError(w, "api.get_summary", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ChartsHandler handles chart requests.
type ChartsHandler struct {
	deps ChartsDependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartsDependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandleGetCharts handles GET /charts requests.
func (h *ChartsHandler) HandleGetCharts(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	view, err := h.deps.Charts(r.Context())
	if err != nil {
		writeServiceError(w, "api.get_charts", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
