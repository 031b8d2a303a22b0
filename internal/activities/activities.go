package activities

import (
	"context"
	"fmt"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/export"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/store"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/validate"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/logger"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/metrics"
)

// Activities bundles the booking workflow's side effects around the
// shared store so the worker and the API server see the same records.
type Activities struct {
	store     store.Store
	validator *validate.Validator
	exporter  *export.Exporter
	metrics   *metrics.Registry
	log       logger.Logger
}

func NewActivities(st store.Store, va *validate.Validator, ex *export.Exporter, reg *metrics.Registry, log logger.Logger) *Activities {
	return &Activities{
		store:     st,
		validator: va,
		exporter:  ex,
		metrics:   reg,
		log:       log,
	}
}

// ValidatePassenger checks the step-2 submission and returns per-field
// messages keyed by json field name. An empty map means the details are
// acceptable.
func (a *Activities) ValidatePassenger(ctx context.Context, req models.PassengerDetailsRequest) (map[string]string, error) {
	fieldErrors := a.validator.Passenger(req)
	if len(fieldErrors) > 0 {
		a.log.Info("Passenger details rejected", "email", req.Passenger.Email, "fields", len(fieldErrors))
	}
	return map[string]string(fieldErrors), nil
}

// CommitBooking persists the confirmed booking. A duplicate id or a
// storage outage is returned as an error so the workflow can surface a
// retryable failure to the user.
func (a *Activities) CommitBooking(ctx context.Context, record models.BookingRecord) error {
	a.log.Info("Committing booking", "bookingId", record.ID, "total", record.Price.Total)

	record.Status = models.BookingConfirmed

	if err := a.store.AddBooking(ctx, &record); err != nil {
		if store.IsConflict(err) {
			return fmt.Errorf("booking %s already exists: %w", record.ID, err)
		}
		return fmt.Errorf("persist booking %s: %w", record.ID, err)
	}

	// The export mirrors the committed record; a failed sheet write is
	// logged by the exporter and does not fail the booking.
	a.exporter.Export([]export.Row{export.BookingRow(&record)}, export.BookingsFile)

	a.metrics.BookingsCommittedTotal.Inc()
	a.log.Info("Booking committed", "bookingId", record.ID)
	return nil
}

// SendConfirmationInput is the e-ticket notification payload.
type SendConfirmationInput struct {
	BookingID string  `json:"bookingId"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	Total     float64 `json:"total"`
}

// SendConfirmation emits the e-ticket notification. There is no mail
// provider wired up, so the confirmation is logged.
func (a *Activities) SendConfirmation(ctx context.Context, input SendConfirmationInput) error {
	a.log.Info("E-ticket issued",
		"bookingId", input.BookingID,
		"email", input.Email,
		"firstName", input.FirstName,
		"total", input.Total,
	)
	return nil
}
