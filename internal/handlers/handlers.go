package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/service"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/store"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/ws"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/logger"
	"github.com/gorilla/mux"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	svc service.NexusService
	hub *ws.Hub
	log logger.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(svc service.NexusService, hub *ws.Hub, log logger.Logger) *Handler {
	return &Handler{
		svc: svc,
		hub: hub,
		log: log,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	if ve, ok := service.AsValidation(err); ok {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": ve.Fields})
		return
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Record not found")
	case store.IsConflict(err):
		respondError(w, http.StatusConflict, err.Error())
	case service.IsInvalidTransition(err):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrExportFailed):
		respondError(w, http.StatusInternalServerError, "Export failed")
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// listOptionsFromQuery parses the schedule listing filters.
func listOptionsFromQuery(r *http.Request) store.ListOptions {
	q := r.URL.Query()
	return store.ListOptions{
		Kind:            models.ScheduleKind(q.Get("kind")),
		Status:          models.ScheduleStatus(q.Get("status")),
		MostRecentFirst: q.Get("sort") == "recent",
	}
}

// GetSchedules handles GET /api/schedules
func (h *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.ListSchedules(r.Context(), listOptionsFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recs)
}

// GetSchedule handles GET /api/schedules/{id}
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := h.svc.GetSchedule(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// CreateSchedule handles POST /api/schedules
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req models.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.svc.CreateSchedule(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, rec)
}

// UpdateSchedule handles PUT /api/schedules/{id}
func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.svc.UpdateSchedule(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// UpdateScheduleStatus handles PATCH /api/schedules/{id}/status
func (h *Handler) UpdateScheduleStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status == "" {
		respondError(w, http.StatusBadRequest, "Status is required")
		return
	}

	rec, err := h.svc.UpdateScheduleStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// DeleteSchedule handles DELETE /api/schedules/{id}
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteSchedule(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Schedule deleted"})
}

// ExportSchedules handles POST /api/schedules/export
func (h *Handler) ExportSchedules(w http.ResponseWriter, r *http.Request) {
	kind := models.ScheduleKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = models.KindAirline
	}
	if kind != models.KindAirline && kind != models.KindCargo {
		respondError(w, http.StatusBadRequest, "Kind must be airline or cargo")
		return
	}

	fileName, err := h.svc.ExportSchedules(r.Context(), kind)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "file": fileName})
}

// SubscribeSchedule handles GET /api/schedules/{id}/ws
func (h *Handler) SubscribeSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := h.svc.GetSchedule(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	h.hub.Subscribe(w, r, id)
}

// CreateBooking handles POST /api/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FlightRef == "" {
		respondError(w, http.StatusBadRequest, "Flight reference is required")
		return
	}

	state, err := h.svc.CreateBooking(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, state)
}

// GetBookings handles GET /api/bookings
func (h *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.ListBookings(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recs)
}

// GetBooking handles GET /api/bookings/{id}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	state, err := h.svc.GetBookingState(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// ConfirmOffer handles POST /api/bookings/{id}/confirm-offer
func (h *Handler) ConfirmOffer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.ConfirmOffer(r.Context(), id); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondWizardState(w, r, id)
}

// SubmitPassengerDetails handles POST /api/bookings/{id}/passenger
func (h *Handler) SubmitPassengerDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.PassengerDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.SubmitPassengerDetails(r.Context(), id, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondWizardState(w, r, id)
}

// SubmitPayment handles POST /api/bookings/{id}/pay
func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CardHolder == "" || req.CardNumber == "" {
		respondError(w, http.StatusBadRequest, "Card holder and number are required")
		return
	}

	if err := h.svc.SubmitPayment(r.Context(), id, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondWizardState(w, r, id)
}

// StepBack handles POST /api/bookings/{id}/back
func (h *Handler) StepBack(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.StepBack(r.Context(), id); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondWizardState(w, r, id)
}

// CancelBooking handles DELETE /api/bookings/{id}
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.CancelBooking(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled"})
}

// respondWizardState waits briefly for the workflow to process the
// signal, then returns the refreshed state.
func (h *Handler) respondWizardState(w http.ResponseWriter, r *http.Request, bookingID string) {
	time.Sleep(100 * time.Millisecond)
	state, err := h.svc.GetBookingState(r.Context(), bookingID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// ChatRequest is the assistant prompt payload.
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply := h.svc.Chat(r.Context(), req.Message)
	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
