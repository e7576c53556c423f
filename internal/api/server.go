// Package api exposes the advisory engine over HTTP. Routes and response
// shapes mirror the upstream advisory backend so existing consumers keep
// working against either.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/agrisense/advisor-cli/internal/invest"
	"github.com/agrisense/advisor-cli/internal/service"
)

// Server holds the HTTP handlers over an Advisor.
type Server struct {
	advisor service.Advisor
}

// NewServer creates a Server over the given advisor.
func NewServer(advisor service.Advisor) *Server {
	return &Server{advisor: advisor}
}

// Router builds the chi router with CORS and request logging, mirroring
// the upstream backend's permissive CORS policy.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	r.Use(requestLogger)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/recommend-crop", s.handleRecommend)
	r.Get("/crop-prices", s.handlePrices)
	r.Get("/crop-info/{crop}", s.handleCropInfo)
	r.Get("/climate-data/{district}", s.handleClimate)
	r.Get("/districts", s.handleDistricts)
	r.Get("/investment-analysis/{crop}", s.handleInvestment)

	return r
}

// requestLogger tags each request with an id and logs the access line.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		next.ServeHTTP(w, r)

		zap.L().Info("api: request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Crop Advisor API",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	sample, err := decodeSample(r.Body)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.advisor.Recommend(r.Context(), sample)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "recommendation failed")
		zap.L().Error("api: recommend failed", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.advisor.Prices(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "prices unavailable")
		zap.L().Error("api: prices failed", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"prices": quotes})
}

func (s *Server) handleCropInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.advisor.CropInfo(r.Context(), chi.URLParam(r, "crop"))
	if err != nil {
		if eris.Is(err, service.ErrCropNotFound) {
			writeDetail(w, http.StatusNotFound, "Crop not found")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "crop info unavailable")
		zap.L().Error("api: crop info failed", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleClimate(w http.ResponseWriter, r *http.Request) {
	climate, err := s.advisor.Climate(r.Context(), chi.URLParam(r, "district"))
	if err != nil {
		if eris.Is(err, service.ErrDistrictNotFound) {
			writeDetail(w, http.StatusNotFound, "District not found")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "climate data unavailable")
		zap.L().Error("api: climate failed", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, climate)
}

func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	names, err := s.advisor.Districts(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "districts unavailable")
		zap.L().Error("api: districts failed", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"districts":       names,
		"total_districts": len(names),
	})
}

func (s *Server) handleInvestment(w http.ResponseWriter, r *http.Request) {
	// Area defaults to one hectare. A present-and-invalid value is a 400,
	// never coerced.
	area := 1.0
	if raw := r.URL.Query().Get("area_hectares"); raw != "" {
		parsed, err := parseArea(raw)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "area_hectares must be a positive number")
			return
		}
		area = parsed
	}

	analysis, err := s.advisor.Analyze(r.Context(), chi.URLParam(r, "crop"), area)
	if err != nil {
		switch {
		case eris.Is(err, invest.ErrUnknownCrop):
			writeDetail(w, http.StatusNotFound, "Crop not found")
		case eris.Is(err, invest.ErrInvalidArea):
			writeDetail(w, http.StatusBadRequest, "area_hectares must be a positive number")
		default:
			writeDetail(w, http.StatusInternalServerError, "analysis unavailable")
			zap.L().Error("api: investment analysis failed", zap.Error(err))
		}
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("api: encode response", zap.Error(err))
	}
}

// writeDetail mirrors the upstream backend's {"detail": "..."} error
// payload shape.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
