package booking

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type RoomType string

const (
	RoomTypeStandard RoomType = "STANDARD"
	RoomTypeJunior   RoomType = "JUNIOR"
	RoomTypeSuite    RoomType = "SUITE"
)

func ParseRoomType(s string) (RoomType, error) {
	rt := RoomType(strings.ToUpper(strings.TrimSpace(s)))
	if !rt.Valid() {
		return "", fmt.Errorf("unknown room type %q", s)
	}

	return rt, nil
}

func (rt RoomType) Valid() bool {
	switch rt {
	case RoomTypeStandard, RoomTypeJunior, RoomTypeSuite:
		return true
	default:
		return false
	}
}

func (rt RoomType) String() string {
	return string(rt)
}

type Room struct {
	Number        int      `json:"room_number"`
	Type          RoomType `json:"room_type"`
	PricePerNight int      `json:"price_per_night"`
}

type User struct {
	ID      int `json:"user_id"`
	Balance int `json:"balance"`
}

// Booking is a frozen snapshot taken at commit time. It never points at the
// live Room or User.
type Booking struct {
	ID                     int       `json:"id"`
	UserID                 int       `json:"user_id"`
	RoomNumber             int       `json:"room_number"`
	CheckIn                time.Time `json:"check_in"`
	CheckOut               time.Time `json:"check_out"`
	RoomTypeAtBooking      RoomType  `json:"room_type_at_booking"`
	PricePerNightAtBooking int       `json:"price_per_night_at_booking"`
	UserBalanceAtBooking   int       `json:"user_balance_at_booking"`
	CreatedAt              time.Time `json:"created_at"`
}

func (b Booking) Nights() int {
	return nights(b.CheckIn, b.CheckOut)
}

func (b Booking) TotalCost() int {
	cost, _ := stayCost(b.Nights(), b.PricePerNightAtBooking)

	return cost
}

// overlaps reports whether [checkIn, checkOut) intersects the booking's stay.
// Touching boundaries do not overlap.
func (b Booking) overlaps(checkIn, checkOut time.Time) bool {
	return checkIn.Before(b.CheckOut) && checkOut.After(b.CheckIn)
}

const EventBookingCommitted = "booking.committed"

type Event struct {
	ID        int       `json:"id"`
	BookingID int       `json:"booking_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type BookInput struct {
	UserID     int
	RoomNumber int
	CheckIn    time.Time
	CheckOut   time.Time
}

const secondsPerDay = 24 * 60 * 60

// Date drops the clock part and pins the value to a UTC calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nights counts calendar days on Unix seconds; time.Duration saturates
// after roughly 292 years.
func nights(checkIn, checkOut time.Time) int {
	return int((Date(checkOut).Unix() - Date(checkIn).Unix()) / secondsPerDay)
}

// stayCost returns nights times price. ok is false when the product does not
// fit in an int, in which case cost is math.MaxInt.
func stayCost(nights, price int) (cost int, ok bool) {
	if nights < 0 || price < 0 {
		return nights * price, true
	}

	if price != 0 && nights > math.MaxInt/price {
		return math.MaxInt, false
	}

	return nights * price, true
}
