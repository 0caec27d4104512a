package handler

import (
	"encoding/json"
	"net/http"

	"github.com/analyticore/analysis-service/internal/api/response"
	"github.com/google/uuid"
)

// Dispatcher schedules an analysis run without waiting for it.
type Dispatcher interface {
	StartAnalysis(id uuid.UUID)
}

type analyzeResponse struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

// NewAnalyzeHandler returns an http.HandlerFunc for POST /analyze.
// The 202 response only acknowledges scheduling; it says nothing about the outcome.
func NewAnalyzeHandler(d Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JobID string `json:"jobId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.JobID == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Job ID is required.", nil)
			return
		}
		jobID, err := uuid.Parse(req.JobID)
		if err != nil || jobID == uuid.Nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "jobId must be a valid UUID", nil)
			return
		}

		d.StartAnalysis(jobID)

		response.Accepted(w, analyzeResponse{
			Accepted: true,
			Message:  "Analysis started for job: " + jobID.String(),
		})
	}
}
