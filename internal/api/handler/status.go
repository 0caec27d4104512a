package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/analyticore/analysis-service/internal/api/response"
	"github.com/analyticore/analysis-service/internal/store"
	"github.com/analyticore/analysis-service/pkg/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// JobFinder loads a job by id.
type JobFinder interface {
	FindJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

// StatusReader reads cached job statuses.
type StatusReader interface {
	GetJobStatus(ctx context.Context, jobID uuid.UUID) (models.JobStatus, bool, error)
}

type jobStatusResponse struct {
	JobID     uuid.UUID         `json:"job_id"`
	Status    models.JobStatus  `json:"status"`
	Sentiment *models.Sentiment `json:"sentiment"`
	Keywords  []string          `json:"keywords"`
}

// NewJobStatusHandler returns an http.HandlerFunc for GET /job_status/{jobID}.
//
// A cached non-terminal status is answered from the cache alone. Terminal
// statuses and cache misses read the store. Sentiment and keywords are only
// reported for COMPLETED jobs.
func NewJobStatusHandler(finder JobFinder, statuses StatusReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "jobID must be a valid UUID", nil)
			return
		}

		if statuses != nil {
			status, found, err := statuses.GetJobStatus(r.Context(), jobID)
			if err != nil {
				slog.Warn("job status cache read failed", "job_id", jobID, "error", err)
			}
			if err == nil && found && !status.IsTerminal() {
				response.JSON(w, jobStatusResponse{JobID: jobID, Status: status})
				return
			}
		}

		job, err := finder.FindJob(r.Context(), jobID)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found", nil)
			return
		}
		if err != nil {
			slog.Error("load job failed", "job_id", jobID, "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		resp := jobStatusResponse{JobID: job.ID, Status: job.Status}
		if job.Status == models.JobStatusCompleted {
			resp.Sentiment = job.Sentiment
			resp.Keywords = job.Keywords
		}
		response.JSON(w, resp)
	}
}
