package models

import "time"

// SeatPreference is the passenger's seat choice.
type SeatPreference string

const (
	SeatWindow SeatPreference = "window"
	SeatAisle  SeatPreference = "aisle"
	SeatMiddle SeatPreference = "middle"
	SeatNone   SeatPreference = "none"
)

// MealPreference is the passenger's meal choice.
type MealPreference string

const (
	MealStandard   MealPreference = "standard"
	MealVegetarian MealPreference = "vegetarian"
	MealVegan      MealPreference = "vegan"
	MealDiabetic   MealPreference = "diabetic"
	MealGlutenFree MealPreference = "glutenFree"
	MealKosher     MealPreference = "kosher"
	MealHalal      MealPreference = "halal"
)

// Passenger holds the traveller details collected in the booking wizard.
type Passenger struct {
	FirstName      string `json:"firstName" validate:"min=2"`
	LastName       string `json:"lastName" validate:"min=2"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"min=10"`
	DateOfBirth    string `json:"dateOfBirth" validate:"required"`
	Nationality    string `json:"nationality" validate:"required"`
	PassportNumber string `json:"passportNumber" validate:"min=5"`
	PassportExpiry string `json:"passportExpiry" validate:"required"`
}

// Preferences are the optional seat/meal selections.
type Preferences struct {
	Seat SeatPreference `json:"seat" validate:"omitempty,oneof=window aisle middle none"`
	Meal MealPreference `json:"meal" validate:"omitempty,oneof=standard vegetarian vegan diabetic glutenFree kosher halal"`
}

// AddOns are the priced optional extras.
type AddOns struct {
	ExtraBaggage bool `json:"extraBaggage"`
	Insurance    bool `json:"insurance"`
}

// PriceBreakdown is the derived cost of a booking.
type PriceBreakdown struct {
	BaseFare     float64 `json:"baseFare"`
	Taxes        float64 `json:"taxes"`
	AddOnCharges float64 `json:"addOnCharges"`
	Total        float64 `json:"total"`
}

// BookingStatus is the lifecycle status of a committed booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingRecord is a passenger reservation against a schedule. FlightRef
// is a weak reference: deleting the schedule does not cascade here.
type BookingRecord struct {
	ID          string         `json:"id"`
	FlightRef   string         `json:"flightRef"`
	Passenger   Passenger      `json:"passenger"`
	Preferences Preferences    `json:"preferences"`
	AddOns      AddOns         `json:"addOns"`
	Price       PriceBreakdown `json:"priceBreakdown"`
	Status      BookingStatus  `json:"status"`
	Version     int64          `json:"version"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// CreateBookingRequest starts a booking wizard against a schedule. BaseFare
// is optional; the published offer fare is used when it is zero.
type CreateBookingRequest struct {
	FlightRef string  `json:"flightRef"`
	BaseFare  float64 `json:"baseFare,omitempty"`
}

// PassengerDetailsRequest is the step-2 submission.
type PassengerDetailsRequest struct {
	Passenger     Passenger   `json:"passenger"`
	Preferences   Preferences `json:"preferences"`
	AddOns        AddOns      `json:"addOns"`
	TermsAccepted bool        `json:"termsAccepted"`
}

// PaymentRequest is the step-3 submission. The card fields are carried for
// the simulated payment only and are never persisted.
type PaymentRequest struct {
	CardHolder string `json:"cardHolder"`
	CardNumber string `json:"cardNumber"`
}

// BookingStateResponse is the live wizard state returned to clients.
type BookingStateResponse struct {
	BookingID   string            `json:"bookingId"`
	Step        BookingStep       `json:"step"`
	Submission  SubmissionState   `json:"submission"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Price       *PriceBreakdown   `json:"priceBreakdown,omitempty"`
	Record      *BookingRecord    `json:"record,omitempty"`
	Message     string            `json:"message,omitempty"`
}
