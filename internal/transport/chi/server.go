package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sx-tane/tourii-backend-sub002/internal/domain"
	domcluster "github.com/sx-tane/tourii-backend-sub002/internal/domain/cluster"
	domroute "github.com/sx-tane/tourii-backend-sub002/internal/domain/route"
	"github.com/sx-tane/tourii-backend-sub002/internal/usecase/content"
	healthuc "github.com/sx-tane/tourii-backend-sub002/internal/usecase/health"
)

// Recommender runs the recommendation pipeline.
type Recommender interface {
	Recommend(
		ctx context.Context, req *domroute.Request, extra *content.AdditionalContext,
	) (domroute.Result, error)
}

// RouteReader loads previously generated routes.
type RouteReader interface {
	GetRoute(ctx context.Context, id string) (domroute.GeneratedRoute, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the recommendation pipeline over HTTP.
type Server struct {
	recommender   Recommender
	routes        RouteReader
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	recommender Recommender,
	routes RouteReader,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommender: recommender,
		routes:      routes,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrRouteNotFound, http.StatusNotFound, codeRouteNotFound),
		sentinelHandler(domain.ErrSpotNotFound, http.StatusNotFound, codeSpotNotFound),
		sentinelHandler(domain.ErrGenerationProviderError, http.StatusBadGateway, codeGenerationProviderError),
		sentinelHandler(domain.ErrRoutePersistFailed, http.StatusInternalServerError, codeRoutePersistFailed),
	}
	return s
}

// Register mounts all routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Post("/api/routes/recommendations", s.RecommendRoutes)
	r.Get("/api/routes/{routeID}", s.GetRoute)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// RecommendRoutes handles POST /api/routes/recommendations.
func (s *Server) RecommendRoutes(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	clustering := domcluster.Options{}
	if req.Clustering != nil {
		clustering = domcluster.Options{
			ProximityRadiusKm:  req.Clustering.ProximityRadiusKm,
			MinSpotsPerCluster: req.Clustering.MinSpotsPerCluster,
			MaxSpotsPerCluster: req.Clustering.MaxSpotsPerCluster,
		}
	}

	domReq, err := domroute.NewRequest(
		req.Keywords, domain.MatchMode(req.Mode), req.Region,
		clustering, req.MaxRoutes, req.UserID,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var extra *content.AdditionalContext
	if req.Context != nil {
		extra = &content.AdditionalContext{
			Season:      req.Context.Season,
			TravelStyle: req.Context.TravelStyle,
			GroupSize:   req.Context.GroupSize,
		}
	}

	result, err := s.recommender.Recommend(r.Context(), &domReq, extra)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultToResponse(result))
}

// GetRoute handles GET /api/routes/{routeID}.
func (s *Server) GetRoute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "routeID")
	if id == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "route id is required")
		return
	}

	route, err := s.routes.GetRoute(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, routeToResponse(route))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrNoSpotsFound,
		domain.ErrRouteNotFound,
		domain.ErrSpotNotFound,
		domain.ErrGenerationProviderError,
		domain.ErrImageProviderError,
		domain.ErrRoutePersistFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler surfaces the offending field when available.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":    codeValidationFailed,
			"message": ve.Reason,
			"field":   ve.Field,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
