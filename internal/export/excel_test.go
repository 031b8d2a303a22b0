package export

import (
	"path/filepath"
	"testing"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSchedule() *models.ScheduleRecord {
	return &models.ScheduleRecord{
		ID:            "SCH-1001",
		Kind:          models.KindAirline,
		Name:          "SkyWings SW-101",
		Origin:        "New York (JFK)",
		Destination:   "London (LHR)",
		DepartureDate: "2026-10-01",
		DepartureTime: "08:30",
		ArrivalDate:   "2026-10-01",
		ArrivalTime:   "20:45",
		Status:        models.StatusActive,
	}
}

func TestScheduleRow_KeysAndOrder(t *testing.T) {
	row := ScheduleRow(sampleSchedule())

	keys := make([]string, len(row))
	for i, c := range row {
		keys[i] = c.Key
	}
	assert.Equal(t, []string{
		"ID", "Name", "Origin", "Destination",
		"DepartureDate", "DepartureTime", "ArrivalDate", "ArrivalTime", "Status",
	}, keys)

	// Identity fields survive the flattening untouched.
	assert.Equal(t, "SCH-1001", row[0].Value)
	assert.Equal(t, "active", row[8].Value)
}

func TestExport_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, logger.NewNop())

	rec := sampleSchedule()
	ok := e.Export(ScheduleRows([]*models.ScheduleRecord{rec}), FlightSchedulesFile)
	require.True(t, ok)

	f, err := excelize.OpenFile(filepath.Join(dir, FlightSchedulesFile))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Status", rows[0][8])
	assert.Equal(t, "SCH-1001", rows[1][0])
	assert.Equal(t, "active", rows[1][8])
}

func TestExport_FailureReturnsFalse(t *testing.T) {
	// Unwritable directory: the exporter logs and reports false.
	e := NewExporter("/nonexistent/path/for/sure", logger.NewNop())
	ok := e.Export(ScheduleRows([]*models.ScheduleRecord{sampleSchedule()}), FlightSchedulesFile)
	assert.False(t, ok)
}

func TestBookingRow_IdentityFields(t *testing.T) {
	rec := &models.BookingRecord{
		ID:        "BK-42",
		FlightRef: "SCH-1001",
		Passenger: models.Passenger{FirstName: "John", LastName: "Doe"},
		Price:     models.PriceBreakdown{BaseFare: 1250, Taxes: 150, AddOnCharges: 50, Total: 1450},
		Status:    models.BookingConfirmed,
	}
	row := BookingRow(rec)

	byKey := map[string]any{}
	for _, c := range row {
		byKey[c.Key] = c.Value
	}
	assert.Equal(t, "BK-42", byKey["ID"])
	assert.Equal(t, "confirmed", byKey["Status"])
	assert.Equal(t, 1450.0, byKey["Total"])
}

func TestScheduleFileName(t *testing.T) {
	assert.Equal(t, FlightSchedulesFile, ScheduleFileName(models.KindAirline))
	assert.Equal(t, CargoSchedulesFile, ScheduleFileName(models.KindCargo))
}
