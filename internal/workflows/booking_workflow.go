package workflows

import (
	"time"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/activities"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/pricing"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// ProcessingDelay stands in for the payment provider round-trip.
	ProcessingDelay = 2 * time.Second
	// CommitTimeout bounds the persist activity.
	CommitTimeout = 10 * time.Second
)

// Error messages surfaced through workflow state.
const (
	msgPersistFailed = "Could not save your booking. Please try again."
)

// BookingWorkflow drives the three-step booking wizard: offer review,
// passenger details, payment. Signals move the wizard forward or back;
// the get_state query exposes the current step, field errors, and price
// to the API layer.
func BookingWorkflow(ctx workflow.Context, input models.BookingWorkflowInput) (*models.BookingWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Booking wizard started", "bookingId", input.BookingID, "flightRef", input.FlightRef)

	state := models.BookingWorkflowState{
		BookingID:   input.BookingID,
		FlightRef:   input.FlightRef,
		Step:        models.StepOfferReview,
		Submission:  models.SubmissionIdle,
		LastUpdated: workflow.Now(ctx),
	}

	if err := workflow.SetQueryHandler(ctx, models.QueryGetState, func() (models.BookingWorkflowState, error) {
		return state, nil
	}); err != nil {
		return nil, err
	}

	touch := func() {
		state.LastUpdated = workflow.Now(ctx)
	}

	activityOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOpts)

	// The commit is not retried automatically: a failed persist surfaces
	// to the user, who resubmits.
	commitCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: CommitTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	confirmCh := workflow.GetSignalChannel(ctx, models.SignalConfirmOffer)
	detailsCh := workflow.GetSignalChannel(ctx, models.SignalPassengerDetails)
	payCh := workflow.GetSignalChannel(ctx, models.SignalSubmitPayment)
	backCh := workflow.GetSignalChannel(ctx, models.SignalStepBack)
	cancelCh := workflow.GetSignalChannel(ctx, models.SignalCancelBooking)

	cancelled := false

	for state.Step != models.StepCommitted && !cancelled {
		selector := workflow.NewSelector(ctx)

		selector.AddReceive(confirmCh, func(c workflow.ReceiveChannel, more bool) {
			c.Receive(ctx, nil)
			if state.Step != models.StepOfferReview {
				return
			}
			state.Step = models.StepPassengerDetails
			touch()
		})

		selector.AddReceive(detailsCh, func(c workflow.ReceiveChannel, more bool) {
			var sig models.PassengerDetailsSignal
			c.Receive(ctx, &sig)
			if state.Step != models.StepPassengerDetails {
				logger.Warn("Passenger details received out of step", "step", state.Step)
				return
			}

			req := models.PassengerDetailsRequest{
				Passenger:     sig.Passenger,
				Preferences:   sig.Preferences,
				AddOns:        sig.AddOns,
				TermsAccepted: sig.TermsAccepted,
			}

			var fieldErrors map[string]string
			err := workflow.ExecuteActivity(ctx, "ValidatePassenger", req).Get(ctx, &fieldErrors)
			if err != nil {
				logger.Error("Validation activity failed", "error", err)
				state.LastError = err.Error()
				touch()
				return
			}
			if len(fieldErrors) > 0 {
				state.FieldErrors = fieldErrors
				touch()
				return
			}

			state.FieldErrors = nil
			state.LastError = ""
			state.Passenger = &sig.Passenger
			state.Preferences = sig.Preferences
			state.AddOns = sig.AddOns
			state.TermsAccepted = sig.TermsAccepted

			price := pricing.ComputeTotal(input.BaseFare, sig.AddOns)
			state.Price = &price
			state.Step = models.StepPayment
			touch()
		})

		selector.AddReceive(payCh, func(c workflow.ReceiveChannel, more bool) {
			var sig models.SubmitPaymentSignal
			c.Receive(ctx, &sig)
			if state.Step != models.StepPayment {
				logger.Warn("Payment received out of step", "step", state.Step)
				return
			}
			if state.Submission == models.SubmissionSubmitting {
				// A commit is already in flight; drop the resubmission.
				logger.Warn("Duplicate payment submission dropped", "bookingId", input.BookingID)
				return
			}

			state.Submission = models.SubmissionSubmitting
			touch()

			// Simulated payment provider processing.
			_ = workflow.Sleep(ctx, ProcessingDelay)

			record := models.BookingRecord{
				ID:          input.BookingID,
				FlightRef:   input.FlightRef,
				Passenger:   *state.Passenger,
				Preferences: state.Preferences,
				AddOns:      state.AddOns,
				Price:       *state.Price,
				Status:      models.BookingConfirmed,
				CreatedAt:   workflow.Now(ctx),
			}

			err := workflow.ExecuteActivity(commitCtx, "CommitBooking", record).Get(ctx, nil)
			if err != nil {
				logger.Error("Commit failed", "bookingId", input.BookingID, "error", err)
				state.Submission = models.SubmissionFailed
				state.LastError = msgPersistFailed
				touch()
				return
			}

			// Confirmation is best effort; the booking is already saved.
			if err := workflow.ExecuteActivity(ctx, "SendConfirmation", activities.SendConfirmationInput{
				BookingID: input.BookingID,
				Email:     state.Passenger.Email,
				FirstName: state.Passenger.FirstName,
				Total:     state.Price.Total,
			}).Get(ctx, nil); err != nil {
				logger.Warn("Confirmation delivery failed", "bookingId", input.BookingID, "error", err)
			}

			state.Submission = models.SubmissionCommitted
			state.LastError = ""
			state.Step = models.StepCommitted
			touch()
			logger.Info("Booking committed", "bookingId", input.BookingID, "total", state.Price.Total)
		})

		selector.AddReceive(backCh, func(c workflow.ReceiveChannel, more bool) {
			c.Receive(ctx, nil)
			state.FieldErrors = nil
			state.LastError = ""
			if state.Submission == models.SubmissionFailed {
				state.Submission = models.SubmissionIdle
			}
			switch state.Step {
			case models.StepPassengerDetails:
				state.Step = models.StepOfferReview
			case models.StepPayment:
				state.Step = models.StepPassengerDetails
			}
			touch()
		})

		selector.AddReceive(cancelCh, func(c workflow.ReceiveChannel, more bool) {
			c.Receive(ctx, nil)
			cancelled = true
		})

		selector.Select(ctx)

		if ctx.Err() != nil {
			cancelled = true
		}
	}

	if cancelled {
		logger.Info("Booking wizard cancelled", "bookingId", input.BookingID)
		return &models.BookingWorkflowResult{
			Committed:     false,
			BookingID:     input.BookingID,
			FailureReason: "cancelled",
		}, nil
	}

	return &models.BookingWorkflowResult{
		Committed: true,
		BookingID: input.BookingID,
	}, nil
}
