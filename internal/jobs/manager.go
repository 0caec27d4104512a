package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/analyticore/analysis-service/internal/metrics"
	"github.com/analyticore/analysis-service/internal/store"
	"github.com/analyticore/analysis-service/pkg/models"
	"github.com/google/uuid"
)

// ErrEmptyText is returned by Submit when there is nothing to analyze.
var ErrEmptyText = errors.New("text is required")

// Analyzer turns a job's text into a sentiment and keyword result.
type Analyzer interface {
	Analyze(text string) (models.AnalysisResult, error)
}

// StatusCache mirrors job statuses for cheap polling.
type StatusCache interface {
	SetJobStatus(ctx context.Context, jobID uuid.UUID, status models.JobStatus, ttl time.Duration) error
	DeleteJobStatus(ctx context.Context, jobID uuid.UUID) error
}

// Manager drives jobs through PENDING -> PROCESSING -> COMPLETED | ERROR.
//
// Runs for the same job are not serialized. Two concurrent runs both load the
// job, both write PROCESSING and both write a final status; the last write wins.
type Manager struct {
	store     store.Store
	analyzer  Analyzer
	cache     StatusCache
	statusTTL time.Duration
	now       func() time.Time

	inflight sync.WaitGroup
}

// NewManager creates a new Manager.
func NewManager(st store.Store, analyzer Analyzer, ca StatusCache, statusTTL time.Duration) *Manager {
	return &Manager{
		store:     st,
		analyzer:  analyzer,
		cache:     ca,
		statusTTL: statusTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit creates a PENDING job for text and dispatches its analysis.
// Returns the job immediately without waiting for analysis to complete.
func (m *Manager) Submit(ctx context.Context, text string) (*models.Job, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	now := m.now()
	job := &models.Job{
		ID:        uuid.New(),
		Text:      text,
		Status:    models.JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.store.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}
	m.recordTransition(ctx, job.ID, models.JobStatusPending)

	m.StartAnalysis(job.ID)

	return job, nil
}

// StartAnalysis runs ProcessJob for id in a background goroutine and returns at once.
// The outcome is only visible through the job's persisted status and the logs.
func (m *Manager) StartAnalysis(id uuid.UUID) {
	metrics.AnalysesTriggered.Inc()

	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		if err := m.ProcessJob(context.Background(), id); err != nil {
			slog.Error("analysis failed", "job_id", id, "error", err)
		}
	}()
}

// Wait blocks until every dispatched analysis has finished or ctx is done.
func (m *Manager) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ProcessJob performs one analysis pass over the job identified by id.
//
// An unknown id is a no-op and returns nil. Any failure after the job is loaded,
// including a panic in the analyzer, is persisted as ERROR and then returned.
// The ERROR write starts from the job as it was loaded, so sentiment and keywords
// from the failed pass are never committed.
func (m *Manager) ProcessJob(ctx context.Context, id uuid.UUID) (err error) {
	job, err := m.store.FindJob(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		slog.Debug("job not found, skipping analysis", "job_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading job: %w", err)
	}

	loaded := job.Clone()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			m.markFailed(ctx, loaded, err)
		}
		metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	// Persist PROCESSING before the analysis so pollers see the run in flight.
	job.Status = models.JobStatusProcessing
	job.UpdatedAt = m.now()
	if _, err := m.store.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("saving processing status: %w", err)
	}
	m.recordTransition(ctx, job.ID, models.JobStatusProcessing)

	result, err := m.analyzer.Analyze(job.Text)
	if err != nil {
		return fmt.Errorf("analyzing text: %w", err)
	}

	keywords := result.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	sentiment := result.Sentiment

	job.Sentiment = &sentiment
	job.Keywords = keywords
	job.ErrorMessage = nil
	job.Status = models.JobStatusCompleted
	job.UpdatedAt = m.now()
	if _, err := m.store.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("saving result: %w", err)
	}
	m.recordTransition(ctx, job.ID, models.JobStatusCompleted)

	return nil
}

// markFailed persists ERROR on top of the job as it was before the run.
func (m *Manager) markFailed(ctx context.Context, loaded *models.Job, cause error) {
	failed := loaded.Clone()
	failed.Status = models.JobStatusError
	msg := cause.Error()
	failed.ErrorMessage = &msg
	failed.UpdatedAt = m.now()

	if _, err := m.store.SaveJob(ctx, failed); err != nil {
		slog.Error("failed to persist error status",
			"job_id", failed.ID,
			"error", err,
			"cause", cause,
		)
		return
	}
	m.recordTransition(ctx, failed.ID, models.JobStatusError)
}

// recordTransition updates the status cache (best effort) and the metrics.
// A failed write evicts the cached entry so readers fall back to the store.
func (m *Manager) recordTransition(ctx context.Context, id uuid.UUID, status models.JobStatus) {
	metrics.ObserveTransition(status)
	if m.cache == nil {
		return
	}
	err := m.cache.SetJobStatus(ctx, id, status, m.statusTTL)
	if err == nil {
		return
	}
	slog.Warn("failed to cache job status", "job_id", id, "status", status, "error", err)

	if err := m.cache.DeleteJobStatus(ctx, id); err != nil {
		slog.Error("failed to evict stale job status", "job_id", id, "error", err)
	}
}
