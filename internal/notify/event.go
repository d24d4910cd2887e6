package notify

import (
	"context"
	"time"

	"github.com/avstrong/hotel/internal/booking"
)

// BookingConfirmedEvent carries enough of the booking snapshot for consumers
// to notify or account without reading the ledger.
type BookingConfirmedEvent struct {
	BookingID     int    `json:"booking_id"`
	UserID        int    `json:"user_id"`
	RoomNumber    int    `json:"room_number"`
	RoomType      string `json:"room_type"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Nights        int    `json:"nights"`
	PricePerNight int    `json:"price_per_night"`
	TotalCost     int    `json:"total_cost"`
	BalanceBefore int    `json:"balance_before"`
	ConfirmedAt   string `json:"confirmed_at"`
}

func NewBookingConfirmedEvent(b booking.Booking) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:     b.ID,
		UserID:        b.UserID,
		RoomNumber:    b.RoomNumber,
		RoomType:      b.RoomTypeAtBooking.String(),
		CheckIn:       b.CheckIn.Format(time.DateOnly),
		CheckOut:      b.CheckOut.Format(time.DateOnly),
		Nights:        b.Nights(),
		PricePerNight: b.PricePerNightAtBooking,
		TotalCost:     b.TotalCost(),
		BalanceBefore: b.UserBalanceAtBooking,
		ConfirmedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type Noop struct{}

func (Noop) PublishBookingConfirmed(_ context.Context, _ booking.Booking) error {
	return nil
}
