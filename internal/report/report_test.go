package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avstrong/hotel/internal/booking"
)

func TestPrintAll_LatestFirst(t *testing.T) {
	rooms := []booking.Room{
		{Number: 1, Type: booking.RoomTypeStandard, PricePerNight: 1000},
		{Number: 3, Type: booking.RoomTypeSuite, PricePerNight: 3000},
	}

	bookings := []booking.Booking{
		{
			ID:                     1,
			UserID:                 1,
			RoomNumber:             1,
			CheckIn:                time.Date(2026, time.July, 7, 0, 0, 0, 0, time.UTC),
			CheckOut:               time.Date(2026, time.July, 8, 0, 0, 0, 0, time.UTC),
			RoomTypeAtBooking:      booking.RoomTypeStandard,
			PricePerNightAtBooking: 1000,
			UserBalanceAtBooking:   5000,
		},
		{
			ID:                     3,
			UserID:                 2,
			RoomNumber:             3,
			CheckIn:                time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC),
			CheckOut:               time.Date(2026, time.July, 12, 0, 0, 0, 0, time.UTC),
			RoomTypeAtBooking:      booking.RoomTypeJunior,
			PricePerNightAtBooking: 3000,
			UserBalanceAtBooking:   10000,
		},
	}

	var buf bytes.Buffer

	require.NoError(t, PrintAll(&buf, rooms, bookings))

	out := buf.String()

	assert.Less(t, strings.Index(out, "ROOMS"), strings.Index(out, "BOOKINGS"))
	assert.Less(t, strings.Index(out, "SUITE"), strings.Index(out, "STANDARD"))
	assert.Less(t, strings.Index(out, "2026-07-10"), strings.Index(out, "2026-07-07"))
	assert.Contains(t, out, "JUNIOR", "bookings show the type they were made with")
	assert.Contains(t, out, "6000", "total of a two night stay")
}

func TestPrintAll_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintAll(&buf, nil, nil))

	assert.Equal(t, 2, strings.Count(buf.String(), "(none)"))
}

func TestPrintAllUsers_LatestFirst(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintAllUsers(&buf, []booking.User{{ID: 1, Balance: 4000}, {ID: 2, Balance: 7000}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"2", "7000"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"1", "4000"}, strings.Fields(lines[3]))
}
