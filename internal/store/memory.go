package store

import (
	"context"
	"sync"
	"time"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
)

// MemoryStore keeps records in maps guarded by a RWMutex, with insertion
// order tracked separately so listings are stable. Versions start at 1 and
// bump on every mutation.
type MemoryStore struct {
	mu sync.RWMutex

	schedules     map[string]*models.ScheduleRecord
	scheduleOrder []string

	bookings     map[string]*models.BookingRecord
	bookingOrder []string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		schedules: make(map[string]*models.ScheduleRecord),
		bookings:  make(map[string]*models.BookingRecord),
	}
}

// --- Schedule operations ---

func (s *MemoryStore) AddSchedule(_ context.Context, rec *models.ScheduleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.schedules[rec.ID]; exists {
		return &ConflictError{ID: rec.ID}
	}

	cp := *rec
	if cp.Version == 0 {
		cp.Version = 1
	}
	now := time.Now()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now

	s.schedules[cp.ID] = &cp
	s.scheduleOrder = append(s.scheduleOrder, cp.ID)
	return nil
}

func (s *MemoryStore) GetSchedule(_ context.Context, id string) (*models.ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.schedules[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) UpdateSchedule(_ context.Context, id string, patch models.SchedulePatch) (*models.ScheduleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.schedules[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		rec.Name = *patch.Name
	}
	if patch.Origin != nil {
		rec.Origin = *patch.Origin
	}
	if patch.Destination != nil {
		rec.Destination = *patch.Destination
	}
	if patch.DepartureDate != nil {
		rec.DepartureDate = *patch.DepartureDate
	}
	if patch.DepartureTime != nil {
		rec.DepartureTime = *patch.DepartureTime
	}
	if patch.ArrivalDate != nil {
		rec.ArrivalDate = *patch.ArrivalDate
	}
	if patch.ArrivalTime != nil {
		rec.ArrivalTime = *patch.ArrivalTime
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	rec.Version++
	rec.UpdatedAt = time.Now()

	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) RemoveSchedule(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schedules[id]; !ok {
		return ErrNotFound
	}
	delete(s.schedules, id)
	s.scheduleOrder = removeID(s.scheduleOrder, id)
	return nil
}

func (s *MemoryStore) ListSchedules(_ context.Context, opts ListOptions) ([]*models.ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.ScheduleRecord, 0, len(s.scheduleOrder))
	for _, id := range s.scheduleOrder {
		rec := s.schedules[id]
		if opts.Kind != "" && rec.Kind != opts.Kind {
			continue
		}
		if opts.Status != "" && rec.Status != opts.Status {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	if opts.MostRecentFirst {
		reverse(out)
	}
	return out, nil
}

// --- Booking operations ---

func (s *MemoryStore) AddBooking(_ context.Context, rec *models.BookingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[rec.ID]; exists {
		return &ConflictError{ID: rec.ID}
	}

	cp := *rec
	if cp.Version == 0 {
		cp.Version = 1
	}
	now := time.Now()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now

	s.bookings[cp.ID] = &cp
	s.bookingOrder = append(s.bookingOrder, cp.ID)
	return nil
}

func (s *MemoryStore) GetBooking(_ context.Context, id string) (*models.BookingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) RemoveBooking(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(s.bookings, id)
	s.bookingOrder = removeID(s.bookingOrder, id)
	return nil
}

func (s *MemoryStore) ListBookings(_ context.Context, opts ListOptions) ([]*models.BookingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.BookingRecord, 0, len(s.bookingOrder))
	for _, id := range s.bookingOrder {
		cp := *s.bookings[id]
		out = append(out, &cp)
	}
	if opts.MostRecentFirst {
		reverse(out)
	}
	return out, nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
