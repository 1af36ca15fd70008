// ABOUTME: Repository interface for the local trace library
// ABOUTME: Enables testability and storage backend swapping

package storage

import (
	"github.com/google/uuid"
	"github.com/harper/trailbook/internal/models"
)

// TraceRepository defines operations for managing stored traces.
type TraceRepository interface {
	CreateTrace(trace *models.Trace) error
	GetTrace(id uuid.UUID) (*models.Trace, error)
	GetTraceByName(name string) (*models.Trace, error)
	ListTraces() ([]*models.Trace, error)
	UpdateTrace(trace *models.Trace) error
	DeleteTrace(id uuid.UUID) error
}

// Repository combines trace operations with lifecycle management.
type Repository interface {
	TraceRepository
	Reset() error
	Close() error
}
