// Package provider abstracts where the initial dataset comes from, so the
// core runs against fixed fixtures in tests and the sample catalog in the
// demo deployment.
package provider

import (
	"context"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
)

// DataProvider supplies the records loaded into the store at startup.
type DataProvider interface {
	ListSchedules(ctx context.Context) ([]*models.ScheduleRecord, error)
	ListBookings(ctx context.Context) ([]*models.BookingRecord, error)
}

// SampleProvider serves the platform's demo catalog. The dataset is
// deterministic so restarts and tests see the same records.
type SampleProvider struct{}

var _ DataProvider = (*SampleProvider)(nil)

// NewSampleProvider creates the demo catalog provider.
func NewSampleProvider() *SampleProvider {
	return &SampleProvider{}
}

func (p *SampleProvider) ListSchedules(_ context.Context) ([]*models.ScheduleRecord, error) {
	return []*models.ScheduleRecord{
		{
			ID:            "a1",
			Kind:          models.KindAirline,
			Name:          "Lufthansa LH723",
			Origin:        "New York (JFK)",
			Destination:   "London (LHR)",
			DepartureDate: "2025-05-15",
			DepartureTime: "08:15",
			ArrivalDate:   "2025-05-15",
			ArrivalTime:   "15:50",
			Status:        models.StatusActive,
		},
		{
			ID:            "a2",
			Kind:          models.KindAirline,
			Name:          "British Airways BA112",
			Origin:        "New York (JFK)",
			Destination:   "London (LHR)",
			DepartureDate: "2025-05-15",
			DepartureTime: "10:30",
			ArrivalDate:   "2025-05-15",
			ArrivalTime:   "17:40",
			Status:        models.StatusActive,
		},
		{
			ID:            "c1",
			Kind:          models.KindCargo,
			Name:          "DHL Express DL347",
			Origin:        "Singapore",
			Destination:   "Mumbai",
			DepartureDate: "2025-05-16",
			DepartureTime: "14:20",
			ArrivalDate:   "2025-05-17",
			ArrivalTime:   "02:30",
			Status:        models.StatusInTransit,
		},
		{
			ID:            "c2",
			Kind:          models.KindCargo,
			Name:          "FedEx FX903",
			Origin:        "Hong Kong",
			Destination:   "Los Angeles",
			DepartureDate: "2025-05-18",
			DepartureTime: "23:45",
			ArrivalDate:   "2025-05-19",
			ArrivalTime:   "20:15",
			Status:        models.StatusDelayed,
		},
	}, nil
}

func (p *SampleProvider) ListBookings(_ context.Context) ([]*models.BookingRecord, error) {
	return nil, nil
}

// FixtureProvider serves caller-supplied records, for tests.
type FixtureProvider struct {
	Schedules []*models.ScheduleRecord
	Bookings  []*models.BookingRecord
}

var _ DataProvider = (*FixtureProvider)(nil)

func (p *FixtureProvider) ListSchedules(_ context.Context) ([]*models.ScheduleRecord, error) {
	return p.Schedules, nil
}

func (p *FixtureProvider) ListBookings(_ context.Context) ([]*models.BookingRecord, error) {
	return p.Bookings, nil
}
