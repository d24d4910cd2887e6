package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avstrong/hotel/internal/logger"
)

type idGenerator interface {
	GetID(ctx context.Context) (int, error)
}

type storageReader interface {
	GetRoom(ctx context.Context, number int) (Room, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetBookingsByRoom(ctx context.Context, number int) ([]Booking, error)
	ListRooms(ctx context.Context) ([]Room, error)
	ListUsers(ctx context.Context) ([]User, error)
	ListBookings(ctx context.Context) ([]Booking, error)
}

type storageWriter interface {
	BeginTransaction(ctx context.Context, level string) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveRoom(ctx context.Context, room Room) error
	SaveUser(ctx context.Context, user User) error
	SaveBooking(ctx context.Context, booking Booking) error
	SaveEvent(ctx context.Context, event Event) error
}

type storage interface {
	storageReader
	storageWriter
}

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, booking Booking) error
}

// Manager is the only entry point that mutates rooms, users and bookings.
// mu serialises every write so that the overlap check and the commit of a
// booking are observed as one step.
type Manager struct {
	mu          sync.Mutex
	l           *logger.Logger
	storage     storage
	idGenerator idGenerator
	publisher   Publisher
}

func New(l *logger.Logger, storage storage, idGenerator idGenerator, publisher Publisher) *Manager {
	//nolint:exhaustruct
	return &Manager{
		l:           l,
		storage:     storage,
		idGenerator: idGenerator,
		publisher:   publisher,
	}
}

func (m *Manager) SetRoom(ctx context.Context, number int, roomType RoomType, pricePerNight int) error {
	inputErr := newInputError()

	if !roomType.Valid() {
		inputErr.addError("room_type", "room_type must be one of STANDARD, JUNIOR, SUITE")
	}

	if pricePerNight < 0 {
		inputErr.addError("price_per_night", "price_per_night must not be negative")
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	room := Room{
		Number:        number,
		Type:          roomType,
		PricePerNight: pricePerNight,
	}

	if err := m.withTransaction(ctx, func(ctx context.Context) error {
		return m.storage.SaveRoom(ctx, room)
	}); err != nil {
		return fmt.Errorf("save room %d: %w", number, err)
	}

	return nil
}

func (m *Manager) SetUser(ctx context.Context, id, balance int) error {
	if balance < 0 {
		inputErr := newInputError()
		inputErr.addError("balance", "balance must not be negative")

		return inputErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.withTransaction(ctx, func(ctx context.Context) error {
		return m.storage.SaveUser(ctx, User{ID: id, Balance: balance})
	}); err != nil {
		return fmt.Errorf("save user %d: %w", id, err)
	}

	return nil
}

func (b *BookInput) validate() error {
	inputErr := newInputError()

	if b.CheckIn.IsZero() {
		inputErr.addError("check_in", "provide check_in")
	}

	if b.CheckOut.IsZero() {
		inputErr.addError("check_out", "provide check_out")
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

func (b *BookInput) prepareDates() {
	b.CheckIn = Date(b.CheckIn)
	b.CheckOut = Date(b.CheckOut)
}

// BookRoom validates the request against the current state and, when it is
// admissible, charges the user and records the booking in one transaction.
// Any returned error leaves the store untouched.
func (m *Manager) BookRoom(ctx context.Context, userID, roomNumber int, checkIn, checkOut time.Time) (*Booking, error) {
	input := BookInput{
		UserID:     userID,
		RoomNumber: roomNumber,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	input.prepareDates()

	booking, err := m.bookRoom(ctx, input)
	if err != nil {
		return nil, err
	}

	m.l.LogInfo(
		"Booking %d committed: user %d, room %d, %s - %s",
		booking.ID,
		booking.UserID,
		booking.RoomNumber,
		booking.CheckIn.Format(time.DateOnly),
		booking.CheckOut.Format(time.DateOnly),
	)

	if m.publisher != nil {
		if err := m.publisher.PublishBookingConfirmed(ctx, booking); err != nil {
			m.l.LogWarnf("Could not publish booking %d confirmation: %v", booking.ID, err.Error())
		}
	}

	return &booking, nil
}

// bookRoom validates and commits under the lock. Publishing stays outside it.
func (m *Manager) bookRoom(ctx context.Context, input BookInput) (Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, user, err := m.validate(ctx, input)
	if err != nil {
		return Booking{}, err
	}

	booking, err := m.commit(ctx, input, room, user)
	if err != nil {
		return Booking{}, fmt.Errorf("commit booking: %w", err)
	}

	return booking, nil
}

func (m *Manager) validate(ctx context.Context, input BookInput) (Room, User, error) {
	if !input.CheckOut.After(input.CheckIn) {
		return Room{}, User{}, &InvalidDateRangeError{CheckIn: input.CheckIn, CheckOut: input.CheckOut}
	}

	room, err := m.storage.GetRoom(ctx, input.RoomNumber)
	if errors.Is(err, ErrRecordNotFound) {
		return Room{}, User{}, &RoomNotFoundError{RoomNumber: input.RoomNumber}
	}

	if err != nil {
		return Room{}, User{}, fmt.Errorf("get room %d: %w", input.RoomNumber, err)
	}

	user, err := m.storage.GetUser(ctx, input.UserID)
	if errors.Is(err, ErrRecordNotFound) {
		return Room{}, User{}, &UserNotFoundError{UserID: input.UserID}
	}

	if err != nil {
		return Room{}, User{}, fmt.Errorf("get user %d: %w", input.UserID, err)
	}

	existing, err := m.storage.GetBookingsByRoom(ctx, input.RoomNumber)
	if err != nil {
		return Room{}, User{}, fmt.Errorf("get bookings of room %d: %w", input.RoomNumber, err)
	}

	for _, b := range existing {
		if b.overlaps(input.CheckIn, input.CheckOut) {
			return Room{}, User{}, &RoomUnavailableError{
				RoomNumber: input.RoomNumber,
				CheckIn:    input.CheckIn,
				CheckOut:   input.CheckOut,
				Conflict:   b,
			}
		}
	}

	if cost, ok := totalCost(room, input); !ok || user.Balance < cost {
		return Room{}, User{}, &InsufficientBalanceError{
			UserID:    user.ID,
			Required:  cost,
			Available: user.Balance,
		}
	}

	return room, user, nil
}

func (m *Manager) commit(ctx context.Context, input BookInput, room Room, user User) (Booking, error) {
	cost, ok := totalCost(room, input)
	if !ok || cost > user.Balance {
		return Booking{}, fmt.Errorf("cost %d exceeds validated balance %d: %w", cost, user.Balance, ErrLogic)
	}

	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return Booking{}, ErrNextID
	}

	eventID, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return Booking{}, ErrNextID
	}

	now := time.Now().UTC()

	booking := Booking{
		ID:                     id,
		UserID:                 user.ID,
		RoomNumber:             room.Number,
		CheckIn:                input.CheckIn,
		CheckOut:               input.CheckOut,
		RoomTypeAtBooking:      room.Type,
		PricePerNightAtBooking: room.PricePerNight,
		UserBalanceAtBooking:   user.Balance,
		CreatedAt:              now,
	}

	user.Balance -= cost

	event := Event{
		ID:        eventID,
		BookingID: booking.ID,
		Type:      EventBookingCommitted,
		CreatedAt: now,
	}

	err = m.withTransaction(ctx, func(ctx context.Context) error {
		if err := m.storage.SaveUser(ctx, user); err != nil {
			return fmt.Errorf("save user to storage: %w", err)
		}

		if err := m.storage.SaveBooking(ctx, booking); err != nil {
			return fmt.Errorf("save booking to storage: %w", err)
		}

		if err := m.storage.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("save event to storage: %w", err)
		}

		return nil
	})
	if err != nil {
		return Booking{}, err
	}

	return booking, nil
}

func totalCost(room Room, input BookInput) (int, bool) {
	return stayCost(nights(input.CheckIn, input.CheckOut), room.PricePerNight)
}

func (m *Manager) withTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	ctx, err = m.storage.BeginTransaction(ctx, "SERIALIZABLE")
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := m.storage.RollbackTransaction(ctx); rbErr != nil {
				m.l.LogErrorf("Could not roll back transaction after panic %v: %v", p, rbErr.Error())
			} else {
				m.l.LogInfo("Transaction has been rolled back after panic")
			}

			panic(p)
		}

		if err != nil {
			if rbErr := m.storage.RollbackTransaction(ctx); rbErr != nil {
				m.l.LogErrorf("Could not roll back transaction after error %v: %v", err.Error(), rbErr.Error())
			} else {
				m.l.LogInfo("Transaction has been rolled back after error: %v", err.Error())
			}

			return
		}

		if err = m.storage.CommitTransaction(ctx); err != nil {
			err = fmt.Errorf("commit transaction: %w", err)
		}
	}()

	return fn(ctx)
}

func (m *Manager) ListRooms(ctx context.Context) ([]Room, error) {
	rooms, err := m.storage.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms from storage: %w", err)
	}

	return rooms, nil
}

func (m *Manager) ListUsers(ctx context.Context) ([]User, error) {
	users, err := m.storage.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users from storage: %w", err)
	}

	return users, nil
}

func (m *Manager) ListBookings(ctx context.Context) ([]Booking, error) {
	bookings, err := m.storage.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings from storage: %w", err)
	}

	return bookings, nil
}
