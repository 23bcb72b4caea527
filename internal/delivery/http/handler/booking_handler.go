package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Ariel200609/TuTurnoYa/internal/delivery/dto"
	"github.com/Ariel200609/TuTurnoYa/internal/usecase"
	"github.com/Ariel200609/TuTurnoYa/pkg/response"
	"github.com/Ariel200609/TuTurnoYa/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase   usecase.BookingUsecase
	lifecycleUsecase usecase.BookingLifecycleUsecase
	validator        *validator.CustomValidator
}

func NewBookingHandler(
	bookingUsecase usecase.BookingUsecase,
	lifecycleUsecase usecase.BookingLifecycleUsecase,
	validator *validator.CustomValidator,
) *BookingHandler {
	return &BookingHandler{
		bookingUsecase:   bookingUsecase,
		lifecycleUsecase: lifecycleUsecase,
		validator:        validator,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCourtNotFound:
			response.NotFound(w, "Court not found")
		case usecase.ErrCourtUnavailable:
			response.Error(w, http.StatusUnprocessableEntity, "Court is not accepting bookings", nil)
		case usecase.ErrPastBooking:
			response.Error(w, http.StatusBadRequest, "Cannot book a slot in the past", nil)
		case usecase.ErrDateOutOfRange:
			response.Error(w, http.StatusBadRequest, "Date is outside the booking window", nil)
		case usecase.ErrInvalidDuration:
			response.Error(w, http.StatusBadRequest, "Duration is outside the court's limits", nil)
		case usecase.ErrInvalidTimeValue:
			response.Error(w, http.StatusBadRequest, "Invalid date or time", nil)
		case usecase.ErrSlotUnavailable:
			response.Error(w, http.StatusUnprocessableEntity, "The slot is outside opening hours or blocked", nil)
		case usecase.ErrPriceRuleMissing:
			response.Error(w, http.StatusUnprocessableEntity, "Court pricing is not configured for this time", nil)
		case usecase.ErrBookingConflict:
			response.Conflict(w, "The slot is already booked")
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	req := listRequestFromQuery(r)
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bookings, err := h.bookingUsecase.GetMyBookings(r.Context(), req)
	if err != nil {
		if err == usecase.ErrInvalidFilter {
			response.Error(w, http.StatusBadRequest, "Invalid listing filter", nil)
			return
		}
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Bookings retrieved successfully", bookings.Bookings, &response.Meta{
		Page:       bookings.Page,
		Limit:      bookings.Limit,
		Total:      bookings.Total,
		TotalPages: totalPages(bookings.Total, bookings.Limit),
	})
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), bookingID)
	if err != nil {
		h.writeLookupError(w, err, "Failed to get booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	booking, err := h.lifecycleUsecase.ConfirmBooking(r.Context(), bookingID)
	if err != nil {
		h.writeLifecycleError(w, err, "Failed to confirm booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking confirmed successfully", booking)
}

func (h *BookingHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dto.RejectBookingRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.lifecycleUsecase.RejectBooking(r.Context(), bookingID, &req)
	if err != nil {
		h.writeLifecycleError(w, err, "Failed to reject booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking rejected", booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dto.CancelBookingRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.lifecycleUsecase.CancelBooking(r.Context(), bookingID, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingNotOwned, usecase.ErrBookingNotManagedBy:
			response.Forbidden(w, "Booking does not belong to you")
		case usecase.ErrInvalidTransition:
			response.Conflict(w, "Booking cannot be cancelled in its current status")
		case usecase.ErrCancellationWindow:
			response.Error(w, http.StatusUnprocessableEntity, "Bookings can only be cancelled 24 hours in advance", nil)
		default:
			response.InternalServerError(w, "Failed to cancel booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", result)
}

func (h *BookingHandler) CheckInBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	booking, err := h.lifecycleUsecase.CheckInBooking(r.Context(), bookingID)
	if err != nil {
		if err == usecase.ErrNotCheckInDay {
			response.Error(w, http.StatusUnprocessableEntity, "Check-in is only possible on the booking date", nil)
			return
		}
		h.writeLifecycleError(w, err, "Failed to check in booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking checked in", booking)
}

func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	booking, err := h.lifecycleUsecase.CompleteBooking(r.Context(), bookingID)
	if err != nil {
		if err == usecase.ErrBookingNotFinished {
			response.Error(w, http.StatusUnprocessableEntity, "Booking has not finished yet", nil)
			return
		}
		h.writeLifecycleError(w, err, "Failed to complete booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking completed", booking)
}

func (h *BookingHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	booking, err := h.lifecycleUsecase.MarkNoShow(r.Context(), bookingID)
	if err != nil {
		if err == usecase.ErrBookingNotStarted {
			response.Error(w, http.StatusUnprocessableEntity, "Booking has not started yet", nil)
			return
		}
		h.writeLifecycleError(w, err, "Failed to mark booking as no-show")
		return
	}

	response.Success(w, http.StatusOK, "Booking marked as no-show", booking)
}

func (h *BookingHandler) writeLookupError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrBookingNotFound:
		response.NotFound(w, "Booking not found")
	case usecase.ErrBookingNotOwned, usecase.ErrBookingNotManagedBy:
		response.Forbidden(w, "Booking does not belong to you")
	default:
		response.InternalServerError(w, fallback)
	}
}

func (h *BookingHandler) writeLifecycleError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrBookingNotFound:
		response.NotFound(w, "Booking not found")
	case usecase.ErrBookingNotOwned, usecase.ErrBookingNotManagedBy:
		response.Forbidden(w, "Booking does not belong to your venue")
	case usecase.ErrInvalidTransition:
		response.Conflict(w, "Booking cannot move to that status")
	default:
		response.InternalServerError(w, fallback)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func listRequestFromQuery(r *http.Request) *dto.ListBookingsRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return &dto.ListBookingsRequest{
		Status:   q.Get("status"),
		CourtID:  q.Get("court_id"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
		Page:     page,
		Limit:    limit,
	}
}

func totalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}
