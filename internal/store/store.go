// Package store holds the authoritative record collections. The memory
// implementation is the shipped default; the postgres implementation
// backs real deployments.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
)

// ErrNotFound is returned when a record id is absent.
var ErrNotFound = errors.New("not found")

// ConflictError is returned by Add when the id already exists. The store
// is left unchanged.
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("record already exists: %s", e.ID)
}

// IsConflict reports whether err is an id conflict.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// ListOptions filter and order a listing. The zero value lists everything
// in insertion order.
type ListOptions struct {
	Kind            models.ScheduleKind
	Status          models.ScheduleStatus
	MostRecentFirst bool
}

// Store is the record persistence boundary. Every method returns a fresh
// snapshot; mutating a returned record does not touch the store.
type Store interface {
	AddSchedule(ctx context.Context, rec *models.ScheduleRecord) error
	GetSchedule(ctx context.Context, id string) (*models.ScheduleRecord, error)
	UpdateSchedule(ctx context.Context, id string, patch models.SchedulePatch) (*models.ScheduleRecord, error)
	RemoveSchedule(ctx context.Context, id string) error
	ListSchedules(ctx context.Context, opts ListOptions) ([]*models.ScheduleRecord, error)

	AddBooking(ctx context.Context, rec *models.BookingRecord) error
	GetBooking(ctx context.Context, id string) (*models.BookingRecord, error)
	RemoveBooking(ctx context.Context, id string) error
	ListBookings(ctx context.Context, opts ListOptions) ([]*models.BookingRecord, error)
}
