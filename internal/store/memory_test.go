package store

import (
	"context"
	"testing"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedule(id string, kind models.ScheduleKind, status models.ScheduleStatus) *models.ScheduleRecord {
	return &models.ScheduleRecord{
		ID:            id,
		Kind:          kind,
		Name:          "SkyWings " + id,
		Origin:        "New York (JFK)",
		Destination:   "London (LHR)",
		DepartureDate: "2026-10-01",
		DepartureTime: "08:30",
		ArrivalDate:   "2026-10-01",
		ArrivalTime:   "20:45",
		Status:        status,
	}
}

func TestMemoryStore_AddAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.AddSchedule(ctx, schedule("SCH-1", models.KindAirline, models.StatusActive)))

	list, err := s.ListSchedules(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "SCH-1", list[0].ID)
	assert.EqualValues(t, 1, list[0].Version)
	assert.False(t, list[0].CreatedAt.IsZero())
}

func TestMemoryStore_AddDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	original := schedule("SCH-1", models.KindAirline, models.StatusActive)
	require.NoError(t, s.AddSchedule(ctx, original))

	dup := schedule("SCH-1", models.KindAirline, models.StatusDelayed)
	err := s.AddSchedule(ctx, dup)
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	// Store unchanged: still exactly one record, with the original status.
	list, err := s.ListSchedules(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusActive, list[0].Status)
}

func TestMemoryStore_RemoveMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.AddSchedule(ctx, schedule("SCH-1", models.KindAirline, models.StatusActive)))

	err := s.RemoveSchedule(ctx, "SCH-404")
	assert.ErrorIs(t, err, ErrNotFound)

	// Idempotent failure: nothing was removed.
	list, _ := s.ListSchedules(ctx, ListOptions{})
	assert.Len(t, list, 1)
}

func TestMemoryStore_Remove(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.AddSchedule(ctx, schedule("SCH-1", models.KindAirline, models.StatusActive)))
	require.NoError(t, s.AddSchedule(ctx, schedule("SCH-2", models.KindAirline, models.StatusActive)))

	require.NoError(t, s.RemoveSchedule(ctx, "SCH-1"))

	_, err := s.GetSchedule(ctx, "SCH-1")
	assert.ErrorIs(t, err, ErrNotFound)

	list, _ := s.ListSchedules(ctx, ListOptions{})
	require.Len(t, list, 1)
	assert.Equal(t, "SCH-2", list[0].ID)
}

func TestMemoryStore_UpdatePatchesAndBumpsVersion(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.AddSchedule(ctx, schedule("SCH-1", models.KindAirline, models.StatusActive)))

	status := models.StatusDelayed
	name := "SkyWings SW-201"
	updated, err := s.UpdateSchedule(ctx, "SCH-1", models.SchedulePatch{Status: &status, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelayed, updated.Status)
	assert.Equal(t, "SkyWings SW-201", updated.Name)
	assert.EqualValues(t, 2, updated.Version)

	// Unpatched fields untouched.
	assert.Equal(t, "New York (JFK)", updated.Origin)

	_, err = s.UpdateSchedule(ctx, "SCH-404", models.SchedulePatch{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.AddSchedule(ctx, schedule("SCH-1", models.KindAirline, models.StatusActive)))
	require.NoError(t, s.AddSchedule(ctx, schedule("SCH-2", models.KindCargo, models.StatusInTransit)))
	require.NoError(t, s.AddSchedule(ctx, schedule("SCH-3", models.KindAirline, models.StatusDelayed)))

	airline, err := s.ListSchedules(ctx, ListOptions{Kind: models.KindAirline})
	require.NoError(t, err)
	require.Len(t, airline, 2)
	assert.Equal(t, "SCH-1", airline[0].ID)
	assert.Equal(t, "SCH-3", airline[1].ID)

	newest, err := s.ListSchedules(ctx, ListOptions{MostRecentFirst: true})
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, "SCH-3", newest[0].ID)

	delayed, err := s.ListSchedules(ctx, ListOptions{Status: models.StatusDelayed})
	require.NoError(t, err)
	require.Len(t, delayed, 1)
	assert.Equal(t, "SCH-3", delayed[0].ID)
}

func TestMemoryStore_ListReturnsSnapshots(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.AddSchedule(ctx, schedule("SCH-1", models.KindAirline, models.StatusActive)))

	list, _ := s.ListSchedules(ctx, ListOptions{})
	list[0].Status = models.StatusCancelled

	got, err := s.GetSchedule(ctx, "SCH-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)
}

func TestMemoryStore_Bookings(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := &models.BookingRecord{
		ID:        "BK-1",
		FlightRef: "SCH-1",
		Passenger: models.Passenger{FirstName: "John", LastName: "Doe", Email: "john@example.com"},
		Status:    models.BookingConfirmed,
	}
	require.NoError(t, s.AddBooking(ctx, rec))

	err := s.AddBooking(ctx, &models.BookingRecord{ID: "BK-1"})
	assert.True(t, IsConflict(err))

	got, err := s.GetBooking(ctx, "BK-1")
	require.NoError(t, err)
	assert.Equal(t, "SCH-1", got.FlightRef)

	require.NoError(t, s.RemoveBooking(ctx, "BK-1"))
	assert.ErrorIs(t, s.RemoveBooking(ctx, "BK-1"), ErrNotFound)
}

func TestMemoryStore_DeleteScheduleDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.AddSchedule(ctx, schedule("SCH-1", models.KindAirline, models.StatusActive)))
	require.NoError(t, s.AddBooking(ctx, &models.BookingRecord{ID: "BK-1", FlightRef: "SCH-1", Status: models.BookingConfirmed}))

	require.NoError(t, s.RemoveSchedule(ctx, "SCH-1"))

	// The booking keeps its weak reference to the deleted schedule.
	got, err := s.GetBooking(ctx, "BK-1")
	require.NoError(t, err)
	assert.Equal(t, "SCH-1", got.FlightRef)
}
