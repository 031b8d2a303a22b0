package activities

import (
	"context"
	"testing"
	"time"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/export"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/store"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/validate"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/logger"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Metrics register on the default registerer, so the suite shares one.
var testMetrics = metrics.NewRegistry()

func setupActivities(t *testing.T) (*Activities, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	log := logger.NewNop()
	ex := export.NewExporter(t.TempDir(), log)
	return NewActivities(st, validate.New(), ex, testMetrics, log), st
}

func validPassengerRequest() models.PassengerDetailsRequest {
	return models.PassengerDetailsRequest{
		Passenger: models.Passenger{
			FirstName:      "Jane",
			LastName:       "Doe",
			Email:          "jane@example.com",
			Phone:          "+49301234567",
			DateOfBirth:    "1990-05-14",
			Nationality:    "German",
			PassportNumber: "C01X00T47",
			PassportExpiry: "2030-01-01",
		},
		Preferences: models.Preferences{
			Seat: models.SeatWindow,
			Meal: models.MealStandard,
		},
		TermsAccepted: true,
	}
}

func confirmedBooking(id string) models.BookingRecord {
	return models.BookingRecord{
		ID:        id,
		FlightRef: "a1",
		Passenger: validPassengerRequest().Passenger,
		AddOns:    models.AddOns{ExtraBaggage: true},
		Price: models.PriceBreakdown{
			BaseFare:     1250,
			Taxes:        150,
			AddOnCharges: 50,
			Total:        1450,
		},
		Status:    models.BookingConfirmed,
		CreatedAt: time.Now(),
	}
}

func TestValidatePassenger_Valid(t *testing.T) {
	acts, _ := setupActivities(t)
	ctx := context.Background()

	fieldErrors, err := acts.ValidatePassenger(ctx, validPassengerRequest())

	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
}

func TestValidatePassenger_BadEmail(t *testing.T) {
	acts, _ := setupActivities(t)
	ctx := context.Background()

	req := validPassengerRequest()
	req.Passenger.Email = "not-an-email"

	fieldErrors, err := acts.ValidatePassenger(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "Invalid email address", fieldErrors["email"])
}

func TestValidatePassenger_TermsNotAccepted(t *testing.T) {
	acts, _ := setupActivities(t)
	ctx := context.Background()

	req := validPassengerRequest()
	req.TermsAccepted = false

	fieldErrors, err := acts.ValidatePassenger(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "You must accept the terms and conditions", fieldErrors["termsAccepted"])
}

func TestCommitBooking_Success(t *testing.T) {
	acts, st := setupActivities(t)
	ctx := context.Background()

	err := acts.CommitBooking(ctx, confirmedBooking("bk-1"))
	require.NoError(t, err)

	saved, err := st.GetBooking(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, saved.Status)
	assert.Equal(t, 1450.0, saved.Price.Total)
}

func TestCommitBooking_Duplicate(t *testing.T) {
	acts, _ := setupActivities(t)
	ctx := context.Background()

	require.NoError(t, acts.CommitBooking(ctx, confirmedBooking("bk-1")))

	err := acts.CommitBooking(ctx, confirmedBooking("bk-1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSendConfirmation(t *testing.T) {
	acts, _ := setupActivities(t)
	ctx := context.Background()

	err := acts.SendConfirmation(ctx, SendConfirmationInput{
		BookingID: "bk-1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		Total:     1450,
	})

	require.NoError(t, err)
}
