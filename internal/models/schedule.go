package models

import (
	"fmt"
	"time"
)

// ScheduleKind distinguishes the two timetable vocabularies.
type ScheduleKind string

const (
	KindAirline ScheduleKind = "airline"
	KindCargo   ScheduleKind = "cargo"
)

// ScheduleStatus is the lifecycle status of a schedule record. Airline
// schedules use active/delayed/cancelled; cargo shipments use
// scheduled/in_transit/customs_clearance/delivered plus delayed.
type ScheduleStatus string

const (
	StatusActive    ScheduleStatus = "active"
	StatusDelayed   ScheduleStatus = "delayed"
	StatusCancelled ScheduleStatus = "cancelled"

	StatusScheduled        ScheduleStatus = "scheduled"
	StatusInTransit        ScheduleStatus = "in_transit"
	StatusCustomsClearance ScheduleStatus = "customs_clearance"
	StatusDelivered        ScheduleStatus = "delivered"
)

// ScheduleRecord is a flight or cargo-transport timetable entry.
type ScheduleRecord struct {
	ID            string         `json:"id"`
	Kind          ScheduleKind   `json:"kind"`
	Name          string         `json:"name"`
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	DepartureDate string         `json:"departureDate"` // 2006-01-02
	DepartureTime string         `json:"departureTime"` // 15:04
	ArrivalDate   string         `json:"arrivalDate"`
	ArrivalTime   string         `json:"arrivalTime"`
	Status        ScheduleStatus `json:"status"`
	Version       int64          `json:"version"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// DepartureAt parses the departure date/time pair.
func (s *ScheduleRecord) DepartureAt() (time.Time, error) {
	return parseDateTime(s.DepartureDate, s.DepartureTime)
}

// ArrivalAt parses the arrival date/time pair.
func (s *ScheduleRecord) ArrivalAt() (time.Time, error) {
	return parseDateTime(s.ArrivalDate, s.ArrivalTime)
}

func parseDateTime(date, clock string) (time.Time, error) {
	if clock == "" {
		return time.Parse(dateLayout, date)
	}
	t, err := time.Parse(dateTimeLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// CreateScheduleRequest is the payload for creating or replacing a schedule.
type CreateScheduleRequest struct {
	Kind          ScheduleKind `json:"kind" validate:"oneof=airline cargo"`
	Name          string       `json:"name" validate:"required"`
	Origin        string       `json:"origin" validate:"required"`
	Destination   string       `json:"destination" validate:"required,nefield=Origin"`
	DepartureDate string       `json:"departureDate" validate:"required"`
	DepartureTime string       `json:"departureTime" validate:"required"`
	ArrivalDate   string       `json:"arrivalDate" validate:"required"`
	ArrivalTime   string       `json:"arrivalTime" validate:"required"`
}

// UpdateStatusRequest is the payload for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// SchedulePatch carries optional field updates; nil fields are left as-is.
type SchedulePatch struct {
	Name          *string         `json:"name,omitempty"`
	Origin        *string         `json:"origin,omitempty"`
	Destination   *string         `json:"destination,omitempty"`
	DepartureDate *string         `json:"departureDate,omitempty"`
	DepartureTime *string         `json:"departureTime,omitempty"`
	ArrivalDate   *string         `json:"arrivalDate,omitempty"`
	ArrivalTime   *string         `json:"arrivalTime,omitempty"`
	Status        *ScheduleStatus `json:"status,omitempty"`
}
