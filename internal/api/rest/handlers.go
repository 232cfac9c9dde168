package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MavJames/ncaab-modeling-code/internal/service"
	"github.com/MavJames/ncaab-modeling-code/internal/store"
	"github.com/gorilla/mux"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db          *store.Database
	features    *service.FeatureService
	predictions *service.PredictionService
}

// NewHandler creates a new handler. The prediction service may be nil when no
// model is configured.
func NewHandler(db *store.Database, features *service.FeatureService, predictions *service.PredictionService) *Handler {
	return &Handler{
		db:          db,
		features:    features,
		predictions: predictions,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "ncaab-modeling",
	})
}

// GetTeams returns the canonical team names stored for a season
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	season, err := seasonParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	teams, err := h.features.Teams(r.Context(), season)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, teams)
}

// GetFeaturesByDate returns the joined feature rows for one game date
func (h *Handler) GetFeaturesByDate(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	rows, err := h.features.RowsByDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "Feature table unavailable", err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// GetFeaturesByTeam returns one team's feature rows for a season
func (h *Handler) GetFeaturesByTeam(w http.ResponseWriter, r *http.Request) {
	team := mux.Vars(r)["team"]

	season, err := seasonParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	rows, err := h.features.RowsByTeam(season, team)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "Feature table unavailable", err)
		return
	}
	if len(rows) == 0 {
		respondError(w, http.StatusNotFound, "No feature rows for team", nil)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// GetPredictionsByDate returns the stored prediction slate for a date
func (h *Handler) GetPredictionsByDate(w http.ResponseWriter, r *http.Request) {
	if h.predictions == nil {
		respondError(w, http.StatusNotImplemented, "No prediction model configured", nil)
		return
	}

	date, err := dateParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	preds, err := h.predictions.ListByDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch predictions", err)
		return
	}

	respondJSON(w, http.StatusOK, preds)
}

// RunPipeline triggers a full feature rebuild
func (h *Handler) RunPipeline(w http.ResponseWriter, r *http.Request) {
	result, err := h.features.Rebuild(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Pipeline run failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Feature table rebuilt",
		"stats":   result.Stats,
	})
}

// GetPipelineStatus returns the stats of the most recent rebuild
func (h *Handler) GetPipelineStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := h.features.Status()
	if !ok {
		respondError(w, http.StatusNotFound, "No pipeline run yet", nil)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

func dateParam(r *http.Request) (time.Time, error) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	return time.Parse("2006-01-02", dateStr)
}

func seasonParam(r *http.Request) (int, error) {
	seasonStr := r.URL.Query().Get("season")
	if seasonStr == "" {
		return currentSeason(time.Now()), nil
	}
	return strconv.Atoi(seasonStr)
}

// currentSeason maps a calendar date to its NCAA season label: games from
// November onward belong to the following year's season.
func currentSeason(now time.Time) int {
	if now.Month() >= time.November {
		return now.Year() + 1
	}
	return now.Year()
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
