// Package repository defines the session dataset store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/Adelson021/rfv/internal/domain/model"
	"github.com/Adelson021/rfv/internal/domain/types"
)

// Dataset is one uploaded file's parsed and scored state.
type Dataset struct {
	ID           string
	Filename     string
	UploadedAt   time.Time
	ContentHash  string
	Reference    time.Time
	Transactions []model.Transaction
	Rows         []types.SegmentRow
	Cuts         types.Cuts
}

// Store provides access to the session's datasets.
type Store interface {
	// Put stores a dataset, evicting the oldest one when at capacity.
	Put(ctx context.Context, ds *Dataset) error

	// Get returns the dataset with the given id.
	// Returns ErrNotFound for unknown or expired datasets.
	Get(ctx context.Context, id string) (*Dataset, error)

	// Delete removes the dataset with the given id.
	Delete(ctx context.Context, id string) error

	// List returns all live datasets ordered by upload time ascending.
	List(ctx context.Context) []*Dataset

	// Count returns the number of live datasets.
	Count(ctx context.Context) int
}
