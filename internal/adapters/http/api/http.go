// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/prospectboard/internal/adapters/repository"
	"github.com/okian/prospectboard/internal/domain/model"
	"github.com/okian/prospectboard/internal/domain/stats"
	"github.com/okian/prospectboard/internal/domain/types"
	"github.com/okian/prospectboard/pkg/logger"
	"github.com/okian/prospectboard/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RosterDependencies
	ProspectDependencies
	LeadersDependencies
	SummaryDependencies
	ChartsDependencies
	RefreshDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	rosterHandler    *RosterHandler
	prospectHandler  *ProspectHandler
	leadersHandler   *LeadersHandler
	summaryHandler   *SummaryHandler
	chartsHandler    *ChartsHandler
	refreshHandler   *RefreshHandler
	dashboardHandler *dashboardHandler
	logger           logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{maxLeaders: defaultMaxLeaders, defaultLeaders: defaultLeaders, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		rosterHandler:    NewRosterHandler(deps),
		prospectHandler:  NewProspectHandler(deps),
		leadersHandler:   NewLeadersHandler(deps, cfg.defaultLeaders, cfg.maxLeaders),
		summaryHandler:   NewSummaryHandler(deps),
		chartsHandler:    NewChartsHandler(deps),
		refreshHandler:   NewRefreshHandler(deps),
		dashboardHandler: newDashboardHandler(),
		logger:           cfg.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", s.instrument(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", s.instrument(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/roster", s.instrument(s.rosterHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("/roster/refresh", s.instrument(s.refreshHandler.HandleRefresh, "roster_refresh"))
	mux.HandleFunc("/prospects/", s.instrument(s.prospectHandler.HandleGetProspect, "prospects"))
	mux.HandleFunc("/leaders", s.instrument(s.leadersHandler.HandleGetLeaders, "leaders"))
	mux.HandleFunc("/summary", s.instrument(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/charts", s.instrument(s.chartsHandler.HandleGetCharts, "charts"))
}

func (s *Server) instrument(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return MetricsMiddleware(logServerErrors(next, endpoint, s.logger), endpoint)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before committing the status, so an unencodable value
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		metrics.RecordErrorByComponent("api", "encode")
		buf.Reset()
		status = http.StatusInternalServerError
		w.Header().Del("ETag")
		_ = json.NewEncoder(&buf).Encode(errorResponse{Code: "internal_error", Message: "response encoding failed"})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps domain errors to status codes.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, stats.ErrUnknownMetric),
		errors.Is(err, stats.ErrUnknownDirection),
		errors.Is(err, types.ErrInvalidFilter):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, repository.ErrDecode),
		errors.Is(err, repository.ErrSourceUnavailable),
		errors.Is(err, repository.ErrEmptyRoster):
		writeError(w, http.StatusServiceUnavailable, "roster_unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	return false
}
