package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/logger"
)

type Config struct {
	L *logger.Logger
}

// DB keeps every entity by value. Rooms and users are indexed by identity and
// remember their first insertion; bookings and events are append-only.
type DB struct {
	mu           sync.Mutex
	l            *logger.Logger
	rooms        map[int]booking.Room
	roomOrder    []int
	users        map[int]booking.User
	userOrder    []int
	bookings     []booking.Booking
	roomBookings map[int][]int
	events       []booking.Event
	transactions map[string]*transaction
	nextTrxID    int64
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:            conf.L,
		rooms:        make(map[int]booking.Room),
		users:        make(map[int]booking.User),
		roomBookings: make(map[int][]int),
		transactions: make(map[string]*transaction),
	}
}

func (db *DB) BeginTransaction(ctx context.Context, _ string) (context.Context, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID := fmt.Sprintf("trx-%d", db.nextTrxID)
	db.nextTrxID++

	db.transactions[trxID] = &transaction{
		id:                trxID,
		roomModifications: make(map[int]booking.Room),
		userModifications: make(map[int]booking.User),
	}

	return withTransactionID(ctx, trxID), nil
}

func (db *DB) CommitTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	for _, number := range trx.roomOrder {
		if _, exists := db.rooms[number]; !exists {
			db.roomOrder = append(db.roomOrder, number)
		}

		db.rooms[number] = trx.roomModifications[number]
	}

	for _, id := range trx.userOrder {
		if _, exists := db.users[id]; !exists {
			db.userOrder = append(db.userOrder, id)
		}

		db.users[id] = trx.userModifications[id]
	}

	for _, b := range trx.bookingModifications {
		db.roomBookings[b.RoomNumber] = append(db.roomBookings[b.RoomNumber], len(db.bookings))
		db.bookings = append(db.bookings, b)
	}

	db.events = append(db.events, trx.eventModifications...)

	delete(db.transactions, trx.id)

	return nil
}

func (db *DB) RollbackTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	db.l.LogInfo(
		"Transaction %s discarded: %d rooms, %d users, %d bookings staged",
		trx.id,
		len(trx.roomModifications),
		len(trx.userModifications),
		len(trx.bookingModifications),
	)

	delete(db.transactions, trx.id)

	return nil
}

func (db *DB) SaveRoom(ctx context.Context, room booking.Room) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	if _, ok := trx.roomModifications[room.Number]; !ok {
		trx.roomOrder = append(trx.roomOrder, room.Number)
	}

	trx.roomModifications[room.Number] = room

	return nil
}

func (db *DB) SaveUser(ctx context.Context, user booking.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	if _, ok := trx.userModifications[user.ID]; !ok {
		trx.userOrder = append(trx.userOrder, user.ID)
	}

	trx.userModifications[user.ID] = user

	return nil
}

func (db *DB) SaveBooking(ctx context.Context, b booking.Booking) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	trx.bookingModifications = append(trx.bookingModifications, b)

	return nil
}

func (db *DB) SaveEvent(ctx context.Context, event booking.Event) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trx, err := db.transaction(ctx)
	if err != nil {
		return err
	}

	trx.eventModifications = append(trx.eventModifications, event)

	return nil
}

func (db *DB) GetRoom(_ context.Context, number int) (booking.Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	room, ok := db.rooms[number]
	if !ok {
		return booking.Room{}, booking.ErrRecordNotFound
	}

	return room, nil
}

func (db *DB) GetUser(_ context.Context, id int) (booking.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	user, ok := db.users[id]
	if !ok {
		return booking.User{}, booking.ErrRecordNotFound
	}

	return user, nil
}

func (db *DB) GetBookingsByRoom(_ context.Context, number int) ([]booking.Booking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	idxs := db.roomBookings[number]
	result := make([]booking.Booking, 0, len(idxs))

	for _, idx := range idxs {
		result = append(result, db.bookings[idx])
	}

	return result, nil
}

func (db *DB) ListRooms(_ context.Context) ([]booking.Room, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]booking.Room, 0, len(db.roomOrder))

	for _, number := range db.roomOrder {
		result = append(result, db.rooms[number])
	}

	return result, nil
}

func (db *DB) ListUsers(_ context.Context) ([]booking.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]booking.User, 0, len(db.userOrder))

	for _, id := range db.userOrder {
		result = append(result, db.users[id])
	}

	return result, nil
}

func (db *DB) ListBookings(_ context.Context) ([]booking.Booking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return slices.Clone(db.bookings), nil
}

func (db *DB) ListEvents(_ context.Context) ([]booking.Event, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return slices.Clone(db.events), nil
}
