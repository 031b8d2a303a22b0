package router

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/handlers"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/session"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, reg *metrics.Registry) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)
	r.Use(session.Middleware)
	r.Use(metricsMiddleware(reg))

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Schedules
	api.HandleFunc("/schedules", h.GetSchedules).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/schedules", h.CreateSchedule).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/schedules/export", h.ExportSchedules).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/schedules/{id}", h.GetSchedule).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/schedules/{id}", h.UpdateSchedule).Methods(http.MethodPut, http.MethodOptions)
	api.Handle("/schedules/{id}/status",
		session.RequireAdmin(http.HandlerFunc(h.UpdateScheduleStatus))).Methods(http.MethodPatch, http.MethodOptions)
	api.Handle("/schedules/{id}",
		session.RequireAdmin(http.HandlerFunc(h.DeleteSchedule))).Methods(http.MethodDelete, http.MethodOptions)

	// WebSocket for real-time updates
	api.HandleFunc("/schedules/{id}/ws", h.SubscribeSchedule)

	// Bookings
	api.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings", h.GetBookings).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/bookings/{id}", h.GetBooking).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/bookings/{id}", h.CancelBooking).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/bookings/{id}/confirm-offer", h.ConfirmOffer).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings/{id}/passenger", h.SubmitPassengerDetails).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings/{id}/pay", h.SubmitPayment).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings/{id}/back", h.StepBack).Methods(http.MethodPost, http.MethodOptions)

	// Assistant
	api.HandleFunc("/chat", h.Chat).Methods(http.MethodPost, http.MethodOptions)

	// Health check and metrics
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+
			session.HeaderAuthenticated+", "+session.HeaderRole)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through the recorder.
func (rec *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rec.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func metricsMiddleware(reg *metrics.Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tmpl
				}
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			reg.HTTPRequestsTotal.WithLabelValues(endpoint, r.Method, strconv.Itoa(rec.status)).Inc()
			reg.HTTPRequestDuration.WithLabelValues(endpoint, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
