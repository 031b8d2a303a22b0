package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/chat"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/export"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/lifecycle"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/provider"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/store"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/validate"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/ws"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/logger"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/metrics"
	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
)

const (
	// TaskQueue is the default Temporal task queue for booking workflows.
	TaskQueue = "aircargo-booking-queue"

	// DefaultBaseFare is the published offer fare used when the booking
	// request does not carry one.
	DefaultBaseFare = 1250.0
)

// ValidationError carries per-field messages for a rejected submission.
type ValidationError struct {
	Fields validate.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// AsValidation extracts a ValidationError if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// TransitionError is returned when a status change is outside the
// record's transition table.
type TransitionError struct {
	From models.ScheduleStatus
	To   models.ScheduleStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s is not allowed", e.From, e.To)
}

// IsInvalidTransition reports whether err is a rejected status change.
func IsInvalidTransition(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}

// ErrExportFailed is returned when the spreadsheet could not be written.
var ErrExportFailed = errors.New("export failed")

// NexusService is the operation surface behind the HTTP handlers.
type NexusService interface {
	ListSchedules(ctx context.Context, opts store.ListOptions) ([]*models.ScheduleRecord, error)
	GetSchedule(ctx context.Context, id string) (*models.ScheduleRecord, error)
	CreateSchedule(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleRecord, error)
	UpdateSchedule(ctx context.Context, id string, req *models.CreateScheduleRequest) (*models.ScheduleRecord, error)
	UpdateScheduleStatus(ctx context.Context, id, rawStatus string) (*models.ScheduleRecord, error)
	DeleteSchedule(ctx context.Context, id string) error
	ExportSchedules(ctx context.Context, kind models.ScheduleKind) (string, error)

	CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingStateResponse, error)
	GetBookingState(ctx context.Context, bookingID string) (*models.BookingStateResponse, error)
	ListBookings(ctx context.Context) ([]*models.BookingRecord, error)
	ConfirmOffer(ctx context.Context, bookingID string) error
	SubmitPassengerDetails(ctx context.Context, bookingID string, req *models.PassengerDetailsRequest) error
	SubmitPayment(ctx context.Context, bookingID string, req *models.PaymentRequest) error
	StepBack(ctx context.Context, bookingID string) error
	CancelBooking(ctx context.Context, bookingID string) error

	Chat(ctx context.Context, message string) string
}

// Deps are the collaborators a nexus service is built from.
type Deps struct {
	Temporal  client.Client
	Store     store.Store
	Hub       *ws.Hub
	Exporter  *export.Exporter
	Validator *validate.Validator
	Chat      *chat.Client
	Metrics   *metrics.Registry
	Provider  provider.DataProvider
	Log       logger.Logger
	TaskQueue string
}

type nexusServiceImpl struct {
	temporal  client.Client
	store     store.Store
	hub       *ws.Hub
	exporter  *export.Exporter
	validator *validate.Validator
	chat      *chat.Client
	metrics   *metrics.Registry
	log       logger.Logger
	taskQueue string
}

// NewNexusService wires the service and seeds the store from the data
// provider when it is empty.
func NewNexusService(deps Deps) NexusService {
	taskQueue := deps.TaskQueue
	if taskQueue == "" {
		taskQueue = TaskQueue
	}
	svc := &nexusServiceImpl{
		temporal:  deps.Temporal,
		store:     deps.Store,
		hub:       deps.Hub,
		exporter:  deps.Exporter,
		validator: deps.Validator,
		chat:      deps.Chat,
		metrics:   deps.Metrics,
		log:       deps.Log,
		taskQueue: taskQueue,
	}
	if deps.Provider != nil {
		svc.seed(deps.Provider)
	}
	return svc
}

func (s *nexusServiceImpl) seed(p provider.DataProvider) {
	ctx := context.Background()

	existing, err := s.store.ListSchedules(ctx, store.ListOptions{})
	if err != nil || len(existing) > 0 {
		return
	}

	schedules, err := p.ListSchedules(ctx)
	if err != nil {
		s.log.Warn("seed provider failed", "error", err)
		return
	}
	for _, rec := range schedules {
		if err := s.store.AddSchedule(ctx, rec); err != nil {
			s.log.Warn("seed schedule skipped", "id", rec.ID, "error", err)
		}
	}

	bookings, err := p.ListBookings(ctx)
	if err != nil {
		return
	}
	for _, rec := range bookings {
		if err := s.store.AddBooking(ctx, rec); err != nil {
			s.log.Warn("seed booking skipped", "id", rec.ID, "error", err)
		}
	}
	s.log.Info("store seeded", "schedules", len(schedules), "bookings", len(bookings))
}

func (s *nexusServiceImpl) ListSchedules(ctx context.Context, opts store.ListOptions) ([]*models.ScheduleRecord, error) {
	return s.store.ListSchedules(ctx, opts)
}

func (s *nexusServiceImpl) GetSchedule(ctx context.Context, id string) (*models.ScheduleRecord, error) {
	return s.store.GetSchedule(ctx, id)
}

func (s *nexusServiceImpl) CreateSchedule(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleRecord, error) {
	if fe := s.validator.Schedule(*req); !fe.Valid() {
		return nil, &ValidationError{Fields: fe}
	}

	now := time.Now()
	rec := &models.ScheduleRecord{
		ID:            uuid.New().String()[:8],
		Kind:          req.Kind,
		Name:          req.Name,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		DepartureTime: req.DepartureTime,
		ArrivalDate:   req.ArrivalDate,
		ArrivalTime:   req.ArrivalTime,
		Status:        lifecycle.InitialStatus(req.Kind),
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.AddSchedule(ctx, rec); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.log.Info("schedule created", "id", rec.ID, "kind", rec.Kind, "name", rec.Name)
	return rec, nil
}

func (s *nexusServiceImpl) UpdateSchedule(ctx context.Context, id string, req *models.CreateScheduleRequest) (*models.ScheduleRecord, error) {
	if fe := s.validator.Schedule(*req); !fe.Valid() {
		return nil, &ValidationError{Fields: fe}
	}

	// Kind and status are immutable through this path; status moves via the
	// transition endpoint only.
	patch := models.SchedulePatch{
		Name:          &req.Name,
		Origin:        &req.Origin,
		Destination:   &req.Destination,
		DepartureDate: &req.DepartureDate,
		DepartureTime: &req.DepartureTime,
		ArrivalDate:   &req.ArrivalDate,
		ArrivalTime:   &req.ArrivalTime,
	}

	updated, err := s.store.UpdateSchedule(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info("schedule updated", "id", id, "name", updated.Name)
	return updated, nil
}

func (s *nexusServiceImpl) UpdateScheduleStatus(ctx context.Context, id, rawStatus string) (*models.ScheduleRecord, error) {
	rec, err := s.store.GetSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := lifecycle.ParseStatus(rec.Kind, rawStatus)
	if err != nil {
		return nil, &ValidationError{Fields: validate.FieldErrors{"status": err.Error()}}
	}

	machine := lifecycle.NewMachine(rec.Kind)
	if !machine.CanTransition(rec.Status, status) {
		return nil, &TransitionError{From: rec.Status, To: status}
	}

	updated, err := s.store.UpdateSchedule(ctx, id, models.SchedulePatch{Status: &status})
	if err != nil {
		return nil, err
	}

	s.metrics.StatusTransitionsTotal.WithLabelValues(string(rec.Kind), string(status)).Inc()
	if s.hub != nil {
		s.hub.BroadcastStatus(id, status, lifecycle.Progress(status))
	}

	s.log.Info("schedule status updated", "id", id, "from", rec.Status, "to", status)
	return updated, nil
}

func (s *nexusServiceImpl) DeleteSchedule(ctx context.Context, id string) error {
	if err := s.store.RemoveSchedule(ctx, id); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.BroadcastDeleted(id)
	}
	s.log.Info("schedule deleted", "id", id)
	return nil
}

func (s *nexusServiceImpl) ExportSchedules(ctx context.Context, kind models.ScheduleKind) (string, error) {
	recs, err := s.store.ListSchedules(ctx, store.ListOptions{Kind: kind})
	if err != nil {
		return "", err
	}

	fileName := export.ScheduleFileName(kind)
	if !s.exporter.Export(export.ScheduleRows(recs), fileName) {
		s.metrics.ExportsTotal.WithLabelValues("failure").Inc()
		return "", ErrExportFailed
	}

	s.metrics.ExportsTotal.WithLabelValues("success").Inc()
	return fileName, nil
}

func (s *nexusServiceImpl) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingStateResponse, error) {
	if _, err := s.store.GetSchedule(ctx, req.FlightRef); err != nil {
		return nil, err
	}

	baseFare := req.BaseFare
	if baseFare <= 0 {
		baseFare = DefaultBaseFare
	}

	bookingID := uuid.New().String()[:8]
	input := models.BookingWorkflowInput{
		BookingID: bookingID,
		FlightRef: req.FlightRef,
		BaseFare:  baseFare,
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        "booking-" + bookingID,
		TaskQueue: s.taskQueue,
	}

	if _, err := s.temporal.ExecuteWorkflow(ctx, workflowOptions, "BookingWorkflow", input); err != nil {
		return nil, fmt.Errorf("start booking workflow: %w", err)
	}

	s.log.Info("booking wizard started", "bookingId", bookingID, "flightRef", req.FlightRef)
	return &models.BookingStateResponse{
		BookingID:  bookingID,
		Step:       models.StepOfferReview,
		Submission: models.SubmissionIdle,
	}, nil
}

func (s *nexusServiceImpl) GetBookingState(ctx context.Context, bookingID string) (*models.BookingStateResponse, error) {
	// Committed bookings are answered from the store even after the
	// workflow has gone away.
	if rec, err := s.store.GetBooking(ctx, bookingID); err == nil {
		return &models.BookingStateResponse{
			BookingID:  bookingID,
			Step:       models.StepCommitted,
			Submission: models.SubmissionCommitted,
			Price:      &rec.Price,
			Record:     rec,
		}, nil
	}

	response, err := s.temporal.QueryWorkflow(ctx, "booking-"+bookingID, "", models.QueryGetState)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, store.ErrNotFound)
	}

	var state models.BookingWorkflowState
	if err := response.Get(&state); err != nil {
		return nil, fmt.Errorf("decode workflow state: %w", err)
	}

	return &models.BookingStateResponse{
		BookingID:   bookingID,
		Step:        state.Step,
		Submission:  state.Submission,
		FieldErrors: state.FieldErrors,
		Price:       state.Price,
		Message:     state.LastError,
	}, nil
}

func (s *nexusServiceImpl) ListBookings(ctx context.Context) ([]*models.BookingRecord, error) {
	return s.store.ListBookings(ctx, store.ListOptions{})
}

func (s *nexusServiceImpl) ConfirmOffer(ctx context.Context, bookingID string) error {
	return s.temporal.SignalWorkflow(ctx, "booking-"+bookingID, "", models.SignalConfirmOffer, nil)
}

func (s *nexusServiceImpl) SubmitPassengerDetails(ctx context.Context, bookingID string, req *models.PassengerDetailsRequest) error {
	signal := models.PassengerDetailsSignal{
		Passenger:     req.Passenger,
		Preferences:   req.Preferences,
		AddOns:        req.AddOns,
		TermsAccepted: req.TermsAccepted,
	}
	return s.temporal.SignalWorkflow(ctx, "booking-"+bookingID, "", models.SignalPassengerDetails, signal)
}

func (s *nexusServiceImpl) SubmitPayment(ctx context.Context, bookingID string, req *models.PaymentRequest) error {
	signal := models.SubmitPaymentSignal{
		CardHolder: req.CardHolder,
		CardNumber: req.CardNumber,
	}
	return s.temporal.SignalWorkflow(ctx, "booking-"+bookingID, "", models.SignalSubmitPayment, signal)
}

func (s *nexusServiceImpl) StepBack(ctx context.Context, bookingID string) error {
	return s.temporal.SignalWorkflow(ctx, "booking-"+bookingID, "", models.SignalStepBack, nil)
}

func (s *nexusServiceImpl) CancelBooking(ctx context.Context, bookingID string) error {
	removed := false
	if err := s.store.RemoveBooking(ctx, bookingID); err == nil {
		removed = true
		s.metrics.BookingsCancelledTotal.Inc()
	}

	// Best effort: the workflow may already be gone for committed
	// bookings.
	err := s.temporal.SignalWorkflow(ctx, "booking-"+bookingID, "", models.SignalCancelBooking, nil)
	if err != nil && !removed {
		return fmt.Errorf("booking %s: %w", bookingID, store.ErrNotFound)
	}

	s.log.Info("booking cancelled", "bookingId", bookingID, "recordRemoved", removed)
	return nil
}

func (s *nexusServiceImpl) Chat(ctx context.Context, message string) string {
	reply, fallback := s.chat.Reply(ctx, message)
	if fallback {
		s.metrics.ChatFallbackRepliesTotal.Inc()
	}
	return reply
}
