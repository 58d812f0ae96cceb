package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sectorlab/sectorpulse/internal/classify"
	"github.com/sectorlab/sectorpulse/internal/contracts"
	"github.com/sectorlab/sectorpulse/pkg/logger"
)

// SnapshotSource reads stored weekly summaries
type SnapshotSource interface {
	GetByWeek(ctx context.Context, week string) (*contracts.WeeklySummary, error)
	GetLatestBefore(ctx context.Context, week string) (*contracts.WeeklySummary, error)
	Weeks(ctx context.Context) ([]string, error)
}

// WeekRunner triggers a classification run
type WeekRunner interface {
	RunWeek(ctx context.Context, asOf time.Time, trigger string) (*contracts.Classification, error)
}

// ClassificationHandler serves classification API endpoints.
// Aggregates are recomputed from stored rows on read; the rules are
// deterministic, so the snapshot only needs to carry the rows.
type ClassificationHandler struct {
	snapshots SnapshotSource
	runner    WeekRunner
	universe  *contracts.Universe
	logger    *logger.Logger
}

// NewClassificationHandler creates a new classification handler
func NewClassificationHandler(snapshots SnapshotSource, runner WeekRunner, universe *contracts.Universe, log *logger.Logger) *ClassificationHandler {
	return &ClassificationHandler{
		snapshots: snapshots,
		runner:    runner,
		universe:  universe,
		logger:    log,
	}
}

// GetUniverse returns the configured universe
// GET /api/universe
func (h *ClassificationHandler) GetUniverse(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.universe)
}

// GetWeeks returns the stored week ids, newest first
// GET /api/weeks
func (h *ClassificationHandler) GetWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.snapshots.Weeks(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list weeks")
		respondError(w, http.StatusInternalServerError, "Failed to list weeks")
		return
	}
	if weeks == nil {
		weeks = []string{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"weeks": weeks})
}

// GetLatest returns the most recent stored classification
// GET /api/classification/latest
func (h *ClassificationHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	weeks, err := h.snapshots.Weeks(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list weeks")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve classification")
		return
	}
	if len(weeks) == 0 {
		respondError(w, http.StatusNotFound, "No classifications stored")
		return
	}

	h.respondWeek(ctx, w, weeks[0])
}

// GetByWeek returns one week's classification
// GET /api/classification/{week}
func (h *ClassificationHandler) GetByWeek(w http.ResponseWriter, r *http.Request) {
	week := mux.Vars(r)["week"]
	h.respondWeek(r.Context(), w, week)
}

// RunRequest triggers a classification run
type RunRequest struct {
	AsOf string `json:"as_of"` // Optional: YYYY-MM-DD, defaults to now
}

// Run triggers an on-demand classification run
// POST /api/classification/run
func (h *ClassificationHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if r.Body != nil {
		// An empty body means "run for now"
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	asOf := time.Now().UTC()
	if req.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", req.AsOf)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	result, err := h.runner.RunWeek(r.Context(), asOf, "api")
	if err != nil {
		var shapeErr *contracts.InputShapeError
		if errors.As(err, &shapeErr) {
			respondError(w, http.StatusUnprocessableEntity, shapeErr.Error())
			return
		}

		h.logger.WithError(err).Error("Classification run failed")
		respondError(w, http.StatusInternalServerError, "Classification run failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *ClassificationHandler) respondWeek(ctx context.Context, w http.ResponseWriter, week string) {
	summary, err := h.snapshots.GetByWeek(ctx, week)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load snapshot")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve classification")
		return
	}
	if summary == nil {
		respondError(w, http.StatusNotFound, "Week not found")
		return
	}

	aggregate := classify.Aggregate(summary, h.universe)

	previous, err := h.snapshots.GetLatestBefore(ctx, week)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load prior snapshot")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve classification")
		return
	}

	changeCount, err := classify.CountChanges(summary, previous)
	if err != nil {
		h.logger.WithError(err).Error("Failed to diff against prior week")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve classification")
		return
	}
	aggregate.ChangeCount = changeCount

	respondJSON(w, http.StatusOK, &contracts.Classification{
		Summary:   summary,
		Aggregate: aggregate,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
