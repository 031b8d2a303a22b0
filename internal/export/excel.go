// Package export writes flat record rows to spreadsheet files. Failures
// are logged and reported as false, never propagated as errors; callers
// surface a notification either way.
package export

import (
	"path/filepath"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// File names kept from the platform's original reports.
const (
	FlightSchedulesFile = "AirCargo_Flights_Schedules.xlsx"
	CargoSchedulesFile  = "AirCargo_Cargo_Schedules.xlsx"
	BookingsFile        = "AirCargo_Bookings.xlsx"
)

// Cell is one key/value pair of a row. Rows are ordered slices, not maps,
// so exported column order is stable.
type Cell struct {
	Key   string
	Value any
}

// Row is one spreadsheet row.
type Row []Cell

const sheetName = "Sheet1"

// Exporter writes xlsx files into a directory.
type Exporter struct {
	dir string
	log logger.Logger
}

// NewExporter creates an exporter rooted at dir.
func NewExporter(dir string, log logger.Logger) *Exporter {
	return &Exporter{dir: dir, log: log}
}

// Export serializes rows to an xlsx file. The header row comes from the
// first row's keys. Returns false (and logs) on any failure, true on
// success; an empty row set still produces a file with no rows.
func (e *Exporter) Export(rows []Row, fileName string) bool {
	f := excelize.NewFile()
	defer f.Close()

	if len(rows) > 0 {
		for col, cell := range rows[0] {
			name, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				e.log.Error("export failed", "file", fileName, "error", err)
				return false
			}
			if err := f.SetCellValue(sheetName, name, cell.Key); err != nil {
				e.log.Error("export failed", "file", fileName, "error", err)
				return false
			}
		}
		for i, row := range rows {
			for col, cell := range row {
				name, err := excelize.CoordinatesToCellName(col+1, i+2)
				if err != nil {
					e.log.Error("export failed", "file", fileName, "error", err)
					return false
				}
				if err := f.SetCellValue(sheetName, name, cell.Value); err != nil {
					e.log.Error("export failed", "file", fileName, "error", err)
					return false
				}
			}
		}
	}

	path := filepath.Join(e.dir, fileName)
	if err := f.SaveAs(path); err != nil {
		e.log.Error("export failed", "file", fileName, "error", err)
		return false
	}

	e.log.Info("report generated", "file", fileName, "rows", len(rows))
	return true
}

// ScheduleRow flattens a schedule record with the report's column order.
func ScheduleRow(rec *models.ScheduleRecord) Row {
	return Row{
		{Key: "ID", Value: rec.ID},
		{Key: "Name", Value: rec.Name},
		{Key: "Origin", Value: rec.Origin},
		{Key: "Destination", Value: rec.Destination},
		{Key: "DepartureDate", Value: rec.DepartureDate},
		{Key: "DepartureTime", Value: rec.DepartureTime},
		{Key: "ArrivalDate", Value: rec.ArrivalDate},
		{Key: "ArrivalTime", Value: rec.ArrivalTime},
		{Key: "Status", Value: string(rec.Status)},
	}
}

// ScheduleRows flattens a schedule listing.
func ScheduleRows(recs []*models.ScheduleRecord) []Row {
	rows := make([]Row, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, ScheduleRow(rec))
	}
	return rows
}

// BookingRow flattens a booking record.
func BookingRow(rec *models.BookingRecord) Row {
	return Row{
		{Key: "ID", Value: rec.ID},
		{Key: "FlightRef", Value: rec.FlightRef},
		{Key: "FirstName", Value: rec.Passenger.FirstName},
		{Key: "LastName", Value: rec.Passenger.LastName},
		{Key: "Email", Value: rec.Passenger.Email},
		{Key: "Phone", Value: rec.Passenger.Phone},
		{Key: "Nationality", Value: rec.Passenger.Nationality},
		{Key: "PassportNumber", Value: rec.Passenger.PassportNumber},
		{Key: "Seat", Value: string(rec.Preferences.Seat)},
		{Key: "Meal", Value: string(rec.Preferences.Meal)},
		{Key: "BaseFare", Value: rec.Price.BaseFare},
		{Key: "Taxes", Value: rec.Price.Taxes},
		{Key: "AddOnCharges", Value: rec.Price.AddOnCharges},
		{Key: "Total", Value: rec.Price.Total},
		{Key: "Status", Value: string(rec.Status)},
	}
}

// ScheduleFileName picks the report file for a schedule kind.
func ScheduleFileName(kind models.ScheduleKind) string {
	if kind == models.KindCargo {
		return CargoSchedulesFile
	}
	return FlightSchedulesFile
}
