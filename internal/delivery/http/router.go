package http

import (
	"net/http"

	"github.com/Ariel200609/TuTurnoYa/internal/delivery/http/handler"
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	bookingHandler *handler.BookingHandler
	courtHandler   *handler.CourtHandler
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	bookingHandler *handler.BookingHandler,
	courtHandler *handler.CourtHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		bookingHandler: bookingHandler,
		courtHandler:   courtHandler,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public availability lookup
	api.HandleFunc("/courts/{id}/availability", r.courtHandler.GetAvailability).Methods(http.MethodGet)

	// User booking routes
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.Handle("", middleware.RequireUser(http.HandlerFunc(r.bookingHandler.CreateBooking))).Methods(http.MethodPost)
	bookings.Handle("", middleware.RequireUser(http.HandlerFunc(r.bookingHandler.GetMyBookings))).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", r.bookingHandler.GetBooking).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}/cancel", r.bookingHandler.CancelBooking).Methods(http.MethodPost)

	// Venue-side lifecycle routes
	bookings.Handle("/{id}/confirm", middleware.RequireVenueOwnerOrAdmin(http.HandlerFunc(r.bookingHandler.ConfirmBooking))).Methods(http.MethodPost)
	bookings.Handle("/{id}/reject", middleware.RequireVenueOwnerOrAdmin(http.HandlerFunc(r.bookingHandler.RejectBooking))).Methods(http.MethodPost)
	bookings.Handle("/{id}/check-in", middleware.RequireVenueOwnerOrAdmin(http.HandlerFunc(r.bookingHandler.CheckInBooking))).Methods(http.MethodPost)
	bookings.Handle("/{id}/complete", middleware.RequireVenueOwnerOrAdmin(http.HandlerFunc(r.bookingHandler.CompleteBooking))).Methods(http.MethodPost)
	bookings.Handle("/{id}/no-show", middleware.RequireVenueOwnerOrAdmin(http.HandlerFunc(r.bookingHandler.MarkNoShow))).Methods(http.MethodPost)

	// Court management (venue owner or admin)
	courts := api.PathPrefix("/courts").Subrouter()
	courts.Use(r.authMiddleware.Authenticate)
	courts.Use(middleware.RequireVenueOwnerOrAdmin)
	courts.HandleFunc("/{id}", r.courtHandler.GetCourt).Methods(http.MethodGet)
	courts.HandleFunc("/{id}/availability-rules", r.courtHandler.UpdateAvailabilityRules).Methods(http.MethodPut)
	courts.HandleFunc("/{id}/price-rules", r.courtHandler.UpdatePriceRules).Methods(http.MethodPut)
	courts.HandleFunc("/{id}/blocked-slots", r.courtHandler.BlockSlot).Methods(http.MethodPost)
	courts.HandleFunc("/{id}/blocked-slots", r.courtHandler.UnblockSlot).Methods(http.MethodDelete)
	courts.HandleFunc("/{id}/maintenance", r.courtHandler.SetMaintenance).Methods(http.MethodPut)
	courts.HandleFunc("/{id}/day-sheet", r.courtHandler.GetDaySheet).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
