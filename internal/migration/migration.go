package migration

import (
	"context"
	"fmt"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/logger"
)

type ledger interface {
	SetRoom(ctx context.Context, number int, roomType booking.RoomType, pricePerNight int) error
	SetUser(ctx context.Context, id, balance int) error
}

var (
	Rooms = []booking.Room{
		{Number: 1, Type: booking.RoomTypeStandard, PricePerNight: 1000},
		{Number: 2, Type: booking.RoomTypeJunior, PricePerNight: 2000},
		{Number: 3, Type: booking.RoomTypeSuite, PricePerNight: 3000},
	}

	Users = []booking.User{
		{ID: 1, Balance: 5000},
		{ID: 2, Balance: 10000},
	}
)

func Up(ctx context.Context, l *logger.Logger, ledger ledger) error {
	for _, room := range Rooms {
		if err := ledger.SetRoom(ctx, room.Number, room.Type, room.PricePerNight); err != nil {
			return fmt.Errorf("seed room %d: %w", room.Number, err)
		}
	}

	for _, user := range Users {
		if err := ledger.SetUser(ctx, user.ID, user.Balance); err != nil {
			return fmt.Errorf("seed user %d: %w", user.ID, err)
		}
	}

	l.LogInfo("Seeded %d rooms and %d users", len(Rooms), len(Users))

	return nil
}
