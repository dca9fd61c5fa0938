package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fortuna/ceres/internal/backfill"
	"github.com/gorilla/mux"
)

// BackfillHandler proxies API calls to the backfill service.
type BackfillHandler struct {
	service *backfill.Service
}

// NewBackfillHandler wires the REST layer to the backfill service.
func NewBackfillHandler(service *backfill.Service) *BackfillHandler {
	return &BackfillHandler{service: service}
}

type apiBackfillRequest struct {
	Sport     string   `json:"sport"`
	Season    string   `json:"season"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	GameID    string   `json:"game_id"`
	GameIDs   []string `json:"game_ids"`
	Divisions []int    `json:"divisions"`
	DryRun    bool     `json:"dry_run"`
}

// HandleBackfillRequest handles POST /api/v1/backfill
func (h *BackfillHandler) HandleBackfillRequest(w http.ResponseWriter, r *http.Request) {
	var req apiBackfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	backfillReq := backfill.Request{
		Sport:     req.Sport,
		Season:    req.Season,
		Divisions: req.Divisions,
		DryRun:    req.DryRun,
	}

	if len(req.GameIDs) > 0 {
		backfillReq.GameIDs = append(backfillReq.GameIDs, req.GameIDs...)
	}
	if req.GameID != "" {
		backfillReq.GameIDs = append(backfillReq.GameIDs, req.GameID)
	}

	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid start_date format (YYYY-MM-DD)", err)
			return
		}
		backfillReq.StartDate = &start
	}

	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid end_date format (YYYY-MM-DD)", err)
			return
		}
		backfillReq.EndDate = &end
	}

	job, err := h.service.Enqueue(backfillReq)
	if errors.Is(err, backfill.ErrQueueFull) {
		respondError(w, http.StatusServiceUnavailable, "Backfill queue is full", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to enqueue backfill job", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job": job,
	})
}

// HandleBackfillStatus handles GET /api/v1/backfill/status
func (h *BackfillHandler) HandleBackfillStatus(w http.ResponseWriter, r *http.Request) {
	summary := h.service.GetStatus()

	response := map[string]interface{}{
		"status":  "idle",
		"message": "No active jobs",
		"history": summary.History,
	}
	if summary.History == nil {
		response["history"] = []*backfill.Job{}
	}
	if summary.ActiveJob != nil {
		response["status"] = summary.ActiveJob.Status
		response["message"] = summary.ActiveJob.StatusMessage
		response["active_job"] = summary.ActiveJob
	}

	respondJSON(w, http.StatusOK, response)
}

// HandleJob handles GET /api/v1/backfill/{jobID}
func (h *BackfillHandler) HandleJob(w http.ResponseWriter, r *http.Request) {
	job, ok := h.service.Job(mux.Vars(r)["jobID"])
	if !ok {
		respondError(w, http.StatusNotFound, "Job not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, job)
}
