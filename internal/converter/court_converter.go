package converter

import (
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/dto"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"

	"github.com/google/uuid"
)

// CourtToResponse converts a Court entity to CourtResponse DTO
func CourtToResponse(court *entity.Court) *dto.CourtResponse {
	if court == nil {
		return nil
	}

	return &dto.CourtResponse{
		ID:          court.ID,
		VenueID:     court.VenueID,
		Name:        court.Name,
		Description: court.Description,
		CourtType:   court.CourtType,
		SurfaceType: court.SurfaceType,
		MaxPlayers:  court.MaxPlayers,

		BasePrice: court.BasePrice,

		MinBookingDuration: court.MinBookingDuration,
		MaxBookingDuration: court.MaxBookingDuration,
		SlotDuration:       court.SlotDuration,
		AdvanceBookingDays: court.AdvanceBookingDays,

		IsActive:        court.IsActive,
		IsAvailable:     court.IsAvailable,
		MaintenanceMode: court.MaintenanceMode,

		BlockedSlots: blockedSlotsToResponses(court.BlockedSlots),

		TotalBookings: court.TotalBookings,
		TotalRevenue:  court.TotalRevenue,

		CreatedAt: court.CreatedAt,
		UpdatedAt: court.UpdatedAt,
	}
}

// CourtToSummaryResponse converts a Court entity to the compact summary
// embedded in booking responses.
func CourtToSummaryResponse(court *entity.Court) *dto.CourtSummaryResponse {
	if court == nil {
		return nil
	}

	summary := &dto.CourtSummaryResponse{
		ID:          court.ID,
		VenueID:     court.VenueID,
		Name:        court.Name,
		CourtType:   court.CourtType,
		SurfaceType: court.SurfaceType,
	}
	if court.Venue.ID != uuid.Nil {
		summary.VenueName = court.Venue.Name
	}
	return summary
}

// SlotsToResponses converts generated slots to DTOs.
func SlotsToResponses(slots []entity.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.SlotResponse{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Price:     slot.Price,
		}
	}
	return responses
}

func blockedSlotsToResponses(slots entity.BlockedSlotList) []dto.BlockedSlotResponse {
	if len(slots) == 0 {
		return nil
	}
	out := make([]dto.BlockedSlotResponse, len(slots))
	for i, s := range slots {
		out[i] = dto.BlockedSlotResponse{
			Date:      s.Date,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Reason:    s.Reason,
		}
	}
	return out
}
