package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the Store implementation for real deployments. Rows
// carry a version column bumped on every update so concurrent mutations
// against the same id serialize on the row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const scheduleColumns = `id, kind, name, origin, destination,
       departure_date, departure_time, arrival_date, arrival_time,
       status, version, created_at, updated_at`

func scanSchedule(row pgx.Row) (*models.ScheduleRecord, error) {
	var rec models.ScheduleRecord
	err := row.Scan(
		&rec.ID, &rec.Kind, &rec.Name, &rec.Origin, &rec.Destination,
		&rec.DepartureDate, &rec.DepartureTime, &rec.ArrivalDate, &rec.ArrivalTime,
		&rec.Status, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan schedule: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) AddSchedule(ctx context.Context, rec *models.ScheduleRecord) error {
	query := `
		INSERT INTO schedules (id, kind, name, origin, destination,
		                       departure_date, departure_time, arrival_date, arrival_time,
		                       status, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1)
		RETURNING version, created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		rec.ID, rec.Kind, rec.Name, rec.Origin, rec.Destination,
		rec.DepartureDate, rec.DepartureTime, rec.ArrivalDate, rec.ArrivalTime,
		rec.Status,
	).Scan(&rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return &ConflictError{ID: rec.ID}
		}
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSchedule(ctx context.Context, id string) (*models.ScheduleRecord, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`
	return scanSchedule(s.pool.QueryRow(ctx, query, id))
}

func (s *PostgresStore) UpdateSchedule(ctx context.Context, id string, patch models.SchedulePatch) (*models.ScheduleRecord, error) {
	set := []string{"version = version + 1", "updated_at = NOW()"}
	args := []any{id}

	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Origin != nil {
		add("origin", *patch.Origin)
	}
	if patch.Destination != nil {
		add("destination", *patch.Destination)
	}
	if patch.DepartureDate != nil {
		add("departure_date", *patch.DepartureDate)
	}
	if patch.DepartureTime != nil {
		add("departure_time", *patch.DepartureTime)
	}
	if patch.ArrivalDate != nil {
		add("arrival_date", *patch.ArrivalDate)
	}
	if patch.ArrivalTime != nil {
		add("arrival_time", *patch.ArrivalTime)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	query := `UPDATE schedules SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 RETURNING ` + scheduleColumns
	return scanSchedule(s.pool.QueryRow(ctx, query, args...))
}

func (s *PostgresStore) RemoveSchedule(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListSchedules(ctx context.Context, opts ListOptions) ([]*models.ScheduleRecord, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules`
	var where []string
	var args []any
	if opts.Kind != "" {
		args = append(args, opts.Kind)
		where = append(where, fmt.Sprintf("kind = $%d", len(args)))
	}
	if opts.Status != "" {
		args = append(args, opts.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if opts.MostRecentFirst {
		query += " ORDER BY created_at DESC"
	} else {
		query += " ORDER BY created_at ASC"
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var out []*models.ScheduleRecord
	for rows.Next() {
		rec, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

const bookingColumns = `id, flight_ref, first_name, last_name, email, phone,
       date_of_birth, nationality, passport_number, passport_expiry,
       seat_preference, meal_preference, extra_baggage, insurance,
       base_fare, taxes, addon_charges, total,
       status, version, created_at, updated_at`

func scanBooking(row pgx.Row) (*models.BookingRecord, error) {
	var rec models.BookingRecord
	err := row.Scan(
		&rec.ID, &rec.FlightRef,
		&rec.Passenger.FirstName, &rec.Passenger.LastName, &rec.Passenger.Email, &rec.Passenger.Phone,
		&rec.Passenger.DateOfBirth, &rec.Passenger.Nationality, &rec.Passenger.PassportNumber, &rec.Passenger.PassportExpiry,
		&rec.Preferences.Seat, &rec.Preferences.Meal, &rec.AddOns.ExtraBaggage, &rec.AddOns.Insurance,
		&rec.Price.BaseFare, &rec.Price.Taxes, &rec.Price.AddOnCharges, &rec.Price.Total,
		&rec.Status, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) AddBooking(ctx context.Context, rec *models.BookingRecord) error {
	query := `
		INSERT INTO bookings (id, flight_ref, first_name, last_name, email, phone,
		                      date_of_birth, nationality, passport_number, passport_expiry,
		                      seat_preference, meal_preference, extra_baggage, insurance,
		                      base_fare, taxes, addon_charges, total, status, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, 1)
		RETURNING version, created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		rec.ID, rec.FlightRef,
		rec.Passenger.FirstName, rec.Passenger.LastName, rec.Passenger.Email, rec.Passenger.Phone,
		rec.Passenger.DateOfBirth, rec.Passenger.Nationality, rec.Passenger.PassportNumber, rec.Passenger.PassportExpiry,
		rec.Preferences.Seat, rec.Preferences.Meal, rec.AddOns.ExtraBaggage, rec.AddOns.Insurance,
		rec.Price.BaseFare, rec.Price.Taxes, rec.Price.AddOnCharges, rec.Price.Total, rec.Status,
	).Scan(&rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return &ConflictError{ID: rec.ID}
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetBooking(ctx context.Context, id string) (*models.BookingRecord, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(s.pool.QueryRow(ctx, query, id))
}

func (s *PostgresStore) RemoveBooking(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListBookings(ctx context.Context, opts ListOptions) ([]*models.BookingRecord, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at ASC`
	if opts.MostRecentFirst {
		query = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var out []*models.BookingRecord
	for rows.Next() {
		rec, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
