// Package archive stores legalization run records.
//
// This package defines an interface for run storage with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for shared deployments
//
// A run record captures the design hash, the options used, and the full
// outcome, so past runs can be listed, inspected, and re-rendered without
// re-running the resolver.
package archive

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mbecker/rowlegal/pkg/legalize"
)

// Sentinel errors for archive operations.
var (
	// ErrNotFound is returned when a run record does not exist.
	ErrNotFound = errors.New("run not found")
)

// DefaultListLimit bounds List results when no limit is given.
const DefaultListLimit = 20

// RunRecord is one archived legalization run.
type RunRecord struct {
	ID         string            `json:"id" bson:"_id"`
	Name       string            `json:"name" bson:"name"`
	DesignHash string            `json:"design_hash" bson:"design_hash"`
	MaxPasses  int               `json:"max_passes" bson:"max_passes"`
	Outcome    *legalize.Outcome `json:"outcome" bson:"outcome"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
}

// NewRecord creates a run record with a fresh ID and timestamp.
func NewRecord(name, designHash string, maxPasses int, outcome *legalize.Outcome) *RunRecord {
	return &RunRecord{
		ID:         uuid.NewString(),
		Name:       name,
		DesignHash: designHash,
		MaxPasses:  maxPasses,
		Outcome:    outcome,
		CreatedAt:  time.Now().UTC(),
	}
}

// Store is the interface for run archive backends.
type Store interface {
	// Put stores a run record.
	Put(ctx context.Context, rec *RunRecord) error

	// Get retrieves a run record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, id string) (*RunRecord, error)

	// List returns up to limit records, newest first.
	// A non-positive limit uses DefaultListLimit.
	List(ctx context.Context, limit int) ([]*RunRecord, error)

	// Delete removes a run record.
	// Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
