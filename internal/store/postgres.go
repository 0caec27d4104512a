package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/analyticore/analysis-service/pkg/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const jobColumns = `job_id, text_to_analyze, status, sentiment, keywords, error_message, created_at, updated_at`

func (s *PostgresStore) CreateJob(ctx context.Context, job *models.Job) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO jobs (job_id, text_to_analyze, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		job.ID, job.Text, string(job.Status), job.CreatedAt, job.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE job_id = $1`, id)
	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find job: %w", err)
	}
	return j, nil
}

func (s *PostgresStore) SaveJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	var sentiment *string
	if job.Sentiment != nil {
		v := string(*job.Sentiment)
		sentiment = &v
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO jobs (`+jobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (job_id) DO UPDATE SET
		     status        = EXCLUDED.status,
		     sentiment     = EXCLUDED.sentiment,
		     keywords      = EXCLUDED.keywords,
		     error_message = EXCLUDED.error_message,
		     updated_at    = EXCLUDED.updated_at
		 RETURNING `+jobColumns,
		job.ID, job.Text, string(job.Status), sentiment, job.Keywords, job.ErrorMessage,
		job.CreatedAt, job.UpdatedAt)
	saved, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}
	return saved, nil
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var (
		j         models.Job
		status    string
		sentiment *string
	)
	if err := row.Scan(&j.ID, &j.Text, &status, &sentiment, &j.Keywords, &j.ErrorMessage,
		&j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	j.Status = models.JobStatus(status)
	if !j.Status.Valid() {
		return nil, fmt.Errorf("job %s: unknown status %q", j.ID, status)
	}
	if sentiment != nil {
		v := models.Sentiment(*sentiment)
		if !v.Valid() {
			return nil, fmt.Errorf("job %s: unknown sentiment %q", j.ID, *sentiment)
		}
		j.Sentiment = &v
	}
	return &j, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
