package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Ariel200609/TuTurnoYa/internal/delivery/dto"
	"github.com/Ariel200609/TuTurnoYa/internal/usecase"
	"github.com/Ariel200609/TuTurnoYa/pkg/response"
	"github.com/Ariel200609/TuTurnoYa/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CourtHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	courtUsecase        usecase.CourtUsecase
	validator           *validator.CustomValidator
}

func NewCourtHandler(
	availabilityUsecase usecase.AvailabilityUsecase,
	courtUsecase usecase.CourtUsecase,
	validator *validator.CustomValidator,
) *CourtHandler {
	return &CourtHandler{
		availabilityUsecase: availabilityUsecase,
		courtUsecase:        courtUsecase,
		validator:           validator,
	}
}

// GetAvailability serves the public slot listing. With ?days=N it returns a
// multi-day view clamped to the court's booking horizon; otherwise a single
// date.
func (h *CourtHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	courtID, ok := courtPathID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	dateStr := q.Get("date")
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date", nil)
		return
	}

	if daysStr := q.Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 {
			response.Error(w, http.StatusBadRequest, "Invalid days", nil)
			return
		}

		availability, err := h.availabilityUsecase.GetAvailabilityRange(r.Context(), courtID, date, days)
		if err != nil {
			h.writeAvailabilityError(w, err)
			return
		}
		response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
		return
	}

	slots, err := h.availabilityUsecase.GetDaySlots(r.Context(), courtID, date)
	if err != nil {
		h.writeAvailabilityError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Availability retrieved successfully", slots)
}

func (h *CourtHandler) GetCourt(w http.ResponseWriter, r *http.Request) {
	courtID, ok := courtPathID(w, r)
	if !ok {
		return
	}

	court, err := h.courtUsecase.GetCourt(r.Context(), courtID)
	if err != nil {
		h.writeCourtError(w, err, "Failed to get court")
		return
	}

	response.Success(w, http.StatusOK, "Court retrieved successfully", court)
}

func (h *CourtHandler) UpdateAvailabilityRules(w http.ResponseWriter, r *http.Request) {
	courtID, ok := courtPathID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateAvailabilityRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	court, err := h.courtUsecase.UpdateAvailabilityRules(r.Context(), courtID, &req)
	if err != nil {
		h.writeCourtError(w, err, "Failed to update availability rules")
		return
	}

	response.Success(w, http.StatusOK, "Availability rules updated successfully", court)
}

func (h *CourtHandler) UpdatePriceRules(w http.ResponseWriter, r *http.Request) {
	courtID, ok := courtPathID(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePriceRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	court, err := h.courtUsecase.UpdatePriceRules(r.Context(), courtID, &req)
	if err != nil {
		h.writeCourtError(w, err, "Failed to update price rules")
		return
	}

	response.Success(w, http.StatusOK, "Price rules updated successfully", court)
}

func (h *CourtHandler) BlockSlot(w http.ResponseWriter, r *http.Request) {
	courtID, ok := courtPathID(w, r)
	if !ok {
		return
	}

	var req dto.BlockSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	court, err := h.courtUsecase.BlockSlot(r.Context(), courtID, &req)
	if err != nil {
		if err == usecase.ErrBlockedSlotConflict {
			response.Conflict(w, "The window overlaps an active booking")
			return
		}
		h.writeCourtError(w, err, "Failed to block slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot blocked successfully", court)
}

func (h *CourtHandler) UnblockSlot(w http.ResponseWriter, r *http.Request) {
	courtID, ok := courtPathID(w, r)
	if !ok {
		return
	}

	var req dto.UnblockSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	court, err := h.courtUsecase.UnblockSlot(r.Context(), courtID, &req)
	if err != nil {
		h.writeCourtError(w, err, "Failed to unblock slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot unblocked successfully", court)
}

func (h *CourtHandler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	courtID, ok := courtPathID(w, r)
	if !ok {
		return
	}

	var req dto.SetMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	court, err := h.courtUsecase.SetMaintenance(r.Context(), courtID, &req)
	if err != nil {
		h.writeCourtError(w, err, "Failed to set maintenance mode")
		return
	}

	response.Success(w, http.StatusOK, "Maintenance mode updated", court)
}

func (h *CourtHandler) GetDaySheet(w http.ResponseWriter, r *http.Request) {
	courtID, ok := courtPathID(w, r)
	if !ok {
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date", nil)
		return
	}

	sheet, err := h.courtUsecase.GetDaySheet(r.Context(), courtID, date)
	if err != nil {
		h.writeCourtError(w, err, "Failed to get day sheet")
		return
	}

	response.Success(w, http.StatusOK, "Day sheet retrieved successfully", sheet)
}

func (h *CourtHandler) writeAvailabilityError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrCourtNotFound:
		response.NotFound(w, "Court not found")
	case usecase.ErrCourtUnavailable:
		response.Error(w, http.StatusUnprocessableEntity, "Court is not accepting bookings", nil)
	case usecase.ErrDateOutOfRange:
		response.Error(w, http.StatusBadRequest, "Date is outside the booking window", nil)
	case usecase.ErrPriceRuleMissing:
		response.Error(w, http.StatusUnprocessableEntity, "Court pricing is not configured for this time", nil)
	default:
		response.InternalServerError(w, "Failed to get availability")
	}
}

func (h *CourtHandler) writeCourtError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrCourtNotFound:
		response.NotFound(w, "Court not found")
	case usecase.ErrCourtNotManagedBy:
		response.Forbidden(w, "Court does not belong to your venue")
	case usecase.ErrInvalidRules:
		response.Error(w, http.StatusBadRequest, "Availability or price rules are invalid", nil)
	case usecase.ErrInvalidTimeValue:
		response.Error(w, http.StatusBadRequest, "Invalid date or time", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

func courtPathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid court ID", nil)
		return uuid.Nil, false
	}
	return id, true
}
