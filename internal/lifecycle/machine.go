// Package lifecycle holds the status vocabularies and transition rules for
// schedule records. Tables are data, so a stricter policy can be adopted
// without touching callers.
package lifecycle

import (
	"fmt"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
)

// TransitionTable maps a status to the set of statuses reachable from it.
type TransitionTable map[models.ScheduleStatus]map[models.ScheduleStatus]bool

// AirlineStatuses are the valid statuses for airline schedules.
var AirlineStatuses = []models.ScheduleStatus{
	models.StatusActive,
	models.StatusDelayed,
	models.StatusCancelled,
}

// CargoStatuses are the valid statuses for cargo shipments.
var CargoStatuses = []models.ScheduleStatus{
	models.StatusScheduled,
	models.StatusInTransit,
	models.StatusCustomsClearance,
	models.StatusDelivered,
	models.StatusDelayed,
}

// DefaultAirlineTransitions allows every airline status to move to every
// other, including out of cancelled. This mirrors the admin toggle
// behavior the platform shipped with.
var DefaultAirlineTransitions = allPairs(AirlineStatuses)

// DefaultCargoTransitions mirrors shipped behavior for cargo shipments:
// forward progression along the timeline, delayed reachable from any
// status, and no terminal lock on delivered.
var DefaultCargoTransitions = allPairs(CargoStatuses)

// StrictCargoTransitions is the opt-in policy with forward-only
// progression and delivered as a terminal state.
var StrictCargoTransitions = TransitionTable{
	models.StatusScheduled: {
		models.StatusInTransit: true,
		models.StatusDelayed:   true,
	},
	models.StatusInTransit: {
		models.StatusCustomsClearance: true,
		models.StatusDelayed:          true,
	},
	models.StatusCustomsClearance: {
		models.StatusDelivered: true,
		models.StatusDelayed:   true,
	},
	models.StatusDelayed: {
		models.StatusScheduled:        true,
		models.StatusInTransit:        true,
		models.StatusCustomsClearance: true,
	},
	models.StatusDelivered: {},
}

func allPairs(statuses []models.ScheduleStatus) TransitionTable {
	t := make(TransitionTable, len(statuses))
	for _, from := range statuses {
		t[from] = make(map[models.ScheduleStatus]bool, len(statuses))
		for _, to := range statuses {
			if from != to {
				t[from][to] = true
			}
		}
	}
	return t
}

// Machine evaluates transitions for one record kind.
type Machine struct {
	kind  models.ScheduleKind
	table TransitionTable
}

// NewMachine builds a machine with the default table for the kind.
func NewMachine(kind models.ScheduleKind) *Machine {
	if kind == models.KindCargo {
		return &Machine{kind: kind, table: DefaultCargoTransitions}
	}
	return &Machine{kind: kind, table: DefaultAirlineTransitions}
}

// NewMachineWithTable builds a machine with a caller-supplied policy.
func NewMachineWithTable(kind models.ScheduleKind, table TransitionTable) *Machine {
	return &Machine{kind: kind, table: table}
}

// CanTransition reports whether from → to is allowed. Identity moves are
// allowed so that re-applying the current status is a no-op, not an error.
func (m *Machine) CanTransition(from, to models.ScheduleStatus) bool {
	if from == to {
		return true
	}
	next, ok := m.table[from]
	if !ok {
		return false
	}
	return next[to]
}

// ParseStatus validates a raw status string against the kind's vocabulary.
func ParseStatus(kind models.ScheduleKind, raw string) (models.ScheduleStatus, error) {
	statuses := AirlineStatuses
	if kind == models.KindCargo {
		statuses = CargoStatuses
	}
	for _, s := range statuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown %s status: %s", kind, raw)
}

// InitialStatus is the status a freshly created record starts in.
func InitialStatus(kind models.ScheduleKind) models.ScheduleStatus {
	if kind == models.KindCargo {
		return models.StatusScheduled
	}
	return models.StatusActive
}

// cargoTimeline is the ordered delivery progression used for progress
// derivation on the tracking views.
var cargoTimeline = []models.ScheduleStatus{
	models.StatusScheduled,
	models.StatusInTransit,
	models.StatusCustomsClearance,
	models.StatusDelivered,
}

// Progress returns percent complete for a cargo shipment based on its
// position on the delivery timeline. Delayed reports the same progress as
// scheduled since the shipment has not advanced.
func Progress(status models.ScheduleStatus) int {
	for i, s := range cargoTimeline {
		if s == status {
			return i * 100 / (len(cargoTimeline) - 1)
		}
	}
	return 0
}
