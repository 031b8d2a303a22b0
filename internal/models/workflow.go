package models

import "time"

// BookingStep is one stage of the booking wizard.
type BookingStep string

const (
	StepOfferReview      BookingStep = "offer_review"
	StepPassengerDetails BookingStep = "passenger_details"
	StepPayment          BookingStep = "payment"
	StepCommitted        BookingStep = "committed"
)

// SubmissionState tracks the commit attempt, replacing a bare
// "processing" flag with an explicit in-flight state machine.
type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionCommitted  SubmissionState = "committed"
	SubmissionFailed     SubmissionState = "failed"
)

// BookingWorkflowInput starts the wizard workflow.
type BookingWorkflowInput struct {
	BookingID string  `json:"bookingId"`
	FlightRef string  `json:"flightRef"`
	BaseFare  float64 `json:"baseFare"`
}

// BookingWorkflowState is the queryable state of an in-flight wizard.
type BookingWorkflowState struct {
	BookingID     string            `json:"bookingId"`
	FlightRef     string            `json:"flightRef"`
	Step          BookingStep       `json:"step"`
	Submission    SubmissionState   `json:"submission"`
	Passenger     *Passenger        `json:"passenger,omitempty"`
	Preferences   Preferences       `json:"preferences"`
	AddOns        AddOns            `json:"addOns"`
	TermsAccepted bool              `json:"termsAccepted"`
	FieldErrors   map[string]string `json:"fieldErrors,omitempty"`
	Price         *PriceBreakdown   `json:"priceBreakdown,omitempty"`
	LastError     string            `json:"lastError,omitempty"`
	LastUpdated   time.Time         `json:"lastUpdated"`
}

// BookingWorkflowResult is the terminal outcome of the wizard.
type BookingWorkflowResult struct {
	Committed     bool   `json:"committed"`
	BookingID     string `json:"bookingId"`
	FailureReason string `json:"failureReason,omitempty"`
}

// Signals for wizard progression.
const (
	SignalConfirmOffer     = "confirm-offer"
	SignalPassengerDetails = "passenger-details"
	SignalSubmitPayment    = "submit-payment"
	SignalStepBack         = "step-back"
	SignalCancelBooking    = "cancel-booking"
)

// PassengerDetailsSignal carries the step-2 submission into the workflow.
type PassengerDetailsSignal struct {
	Passenger     Passenger   `json:"passenger"`
	Preferences   Preferences `json:"preferences"`
	AddOns        AddOns      `json:"addOns"`
	TermsAccepted bool        `json:"termsAccepted"`
}

// SubmitPaymentSignal carries the step-3 submission into the workflow.
type SubmitPaymentSignal struct {
	CardHolder string `json:"cardHolder"`
	CardNumber string `json:"cardNumber"`
}

// Queries for wizard state.
const (
	QueryGetState = "get_state"
)
