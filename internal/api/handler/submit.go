package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/analyticore/analysis-service/internal/api/response"
	"github.com/analyticore/analysis-service/internal/jobs"
	"github.com/analyticore/analysis-service/pkg/models"
	"github.com/google/uuid"
)

// Submitter registers new text and dispatches its analysis.
type Submitter interface {
	Submit(ctx context.Context, text string) (*models.Job, error)
}

type submitResponse struct {
	JobID  uuid.UUID        `json:"job_id"`
	Status models.JobStatus `json:"status"`
}

// NewSubmitHandler returns an http.HandlerFunc for POST /submit_job.
func NewSubmitHandler(s Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		job, err := s.Submit(r.Context(), req.Text)
		if err != nil {
			if errors.Is(err, jobs.ErrEmptyText) {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "text must not be empty", nil)
				return
			}
			slog.Error("submit job failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.Created(w, submitResponse{JobID: job.ID, Status: job.Status})
	}
}
