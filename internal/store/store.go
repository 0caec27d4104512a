package store

import (
	"context"
	"errors"

	"github.com/analyticore/analysis-service/pkg/models"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All job persistence goes through here.
//
// FindJob followed by SaveJob is not transactional: concurrent writers to the
// same job can overwrite each other and the last SaveJob wins.
type Store interface {
	Ping(ctx context.Context) error

	CreateJob(ctx context.Context, job *models.Job) error
	// FindJob returns ErrNotFound when no job has the given id.
	FindJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	// SaveJob upserts every mutable field of job and returns the stored row.
	// Text and CreatedAt of an existing row are never overwritten.
	SaveJob(ctx context.Context, job *models.Job) (*models.Job, error)
}
