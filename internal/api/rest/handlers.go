package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fortuna/ceres/internal/rating"
	"github.com/fortuna/ceres/internal/store"
	"github.com/gorilla/mux"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	deps Deps
}

// NewHandler creates a new handler
func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.deps.Health))
	status, code := "healthy", http.StatusOK
	for name, checker := range h.deps.Health {
		if err := checker.HealthCheck(ctx); err != nil {
			checks[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	respondJSON(w, code, map[string]interface{}{
		"status":  status,
		"service": "ceres",
		"checks":  checks,
	})
}

// ListGames returns season games filtered by division, date and team
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter store.GameFilter

	if d := q.Get("division"); d != "" {
		division, err := parseDivision(d)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid division", err)
			return
		}
		filter.Division = division
	}
	if ds := q.Get("date"); ds != "" {
		date, err := time.Parse("2006-01-02", ds)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date format (YYYY-MM-DD)", err)
			return
		}
		filter.Date = date
	}
	filter.Team = q.Get("team")

	games, err := h.deps.Games.ListGames(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}
	if games == nil {
		games = []store.SeasonGame{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetGame returns one season game
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.deps.Games.GetGame(r.Context(), mux.Vars(r)["gameID"])
	if err != nil {
		respondStoreError(w, "Failed to fetch game", err)
		return
	}
	respondJSON(w, http.StatusOK, game)
}

// GetTimeline returns the stored timeline of a game
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	tl, err := h.deps.Games.GetTimeline(r.Context(), mux.Vars(r)["gameID"])
	if err != nil {
		respondStoreError(w, "Failed to fetch timeline", err)
		return
	}
	respondJSON(w, http.StatusOK, tl)
}

// GetRatings returns the latest rating run of a division
func (h *Handler) GetRatings(w http.ResponseWriter, r *http.Request) {
	division, err := parseDivision(r.URL.Query().Get("division"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid division", err)
		return
	}

	run, err := h.deps.Ratings.Latest(r.Context(), division)
	if err != nil {
		respondStoreError(w, "Failed to fetch ratings", err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}

// RunRatings computes a fresh rating run for a division
func (h *Handler) RunRatings(w http.ResponseWriter, r *http.Request) {
	division, err := parseDivision(r.URL.Query().Get("division"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid division", err)
		return
	}

	run, err := h.deps.Ratings.Rate(r.Context(), division)
	if errors.Is(err, rating.ErrNoGames) {
		respondError(w, http.StatusConflict, "No rateable games for division", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute ratings", err)
		return
	}
	respondJSON(w, http.StatusCreated, run)
}

// SchedulerStatus reports the nightly crawl
func (h *Handler) SchedulerStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.deps.Scheduler.GetStatus())
}

// parseDivision defaults to Division I.
func parseDivision(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if d < 1 || d > 3 {
		return 0, errors.New("division must be 1, 2 or 3")
	}
	return d, nil
}

func respondStoreError(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, message, err)
		return
	}
	respondError(w, http.StatusInternalServerError, message, err)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
