package converter

import (
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/dto"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:            booking.ID,
		BookingNumber: booking.BookingNumber,
		UserID:        booking.UserID,
		CourtID:       booking.CourtID,

		BookingDate: booking.BookingDate.Format("2006-01-02"),
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Duration:    booking.Duration,

		BasePrice:        booking.BasePrice,
		PriceMultiplier:  booking.PriceMultiplier,
		TotalPrice:       booking.TotalPrice,
		CommissionAmount: booking.CommissionAmount,
		VenueAmount:      booking.VenueAmount,

		PlayerCount:        booking.PlayerCount,
		Players:            playersToRequests(booking.Players),
		ContactName:        booking.ContactName,
		ContactPhone:       booking.ContactPhone,
		ContactEmail:       booking.ContactEmail,
		SpecialRequests:    booking.SpecialRequests,
		EquipmentRequested: booking.EquipmentRequested,

		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),

		CancelledAt:        booking.CancelledAt,
		CancellationReason: booking.CancellationReason,
		CancelledBy:        string(booking.CancelledBy),
		RefundAmount:       booking.RefundAmount,

		ConfirmedAt: booking.ConfirmedAt,
		CheckInAt:   booking.CheckInAt,

		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}

	if booking.Court.ID != uuid.Nil {
		response.Court = CourtToSummaryResponse(&booking.Court)
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp := BookingToResponse(&bookings[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

func playersToRequests(players entity.PlayerList) []dto.PlayerRequest {
	if len(players) == 0 {
		return nil
	}
	out := make([]dto.PlayerRequest, len(players))
	for i, p := range players {
		out[i] = dto.PlayerRequest{Name: p.Name, Phone: p.Phone, Position: p.Position}
	}
	return out
}

// PlayersFromRequests converts request players to the JSONB roster.
func PlayersFromRequests(players []dto.PlayerRequest) entity.PlayerList {
	if len(players) == 0 {
		return nil
	}
	out := make(entity.PlayerList, len(players))
	for i, p := range players {
		out[i] = entity.Player{Name: p.Name, Phone: p.Phone, Position: p.Position}
	}
	return out
}
