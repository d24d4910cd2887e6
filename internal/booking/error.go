package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrRoomNotFound        = errors.New("room not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrRoomUnavailable     = errors.New("room unavailable")
	ErrInsufficientBalance = errors.New("insufficient balance")

	ErrNextID         = errors.New("get next id from generator")
	ErrLogic          = errors.New("logic error")
	ErrRecordNotFound = errors.New("record not found")
)

type InvalidDateRangeError struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf(
		"invalid date range: check-out %s must be after check-in %s",
		e.CheckOut.Format(time.DateOnly),
		e.CheckIn.Format(time.DateOnly),
	)
}

func (e *InvalidDateRangeError) Is(target error) bool {
	return target == ErrInvalidDateRange
}

func IsInvalidDateRangeError(err error) *InvalidDateRangeError {
	var target *InvalidDateRangeError

	if errors.As(err, &target) {
		return target
	}

	return nil
}

type RoomNotFoundError struct {
	RoomNumber int
}

func (e *RoomNotFoundError) Error() string {
	return fmt.Sprintf("room %d not found", e.RoomNumber)
}

func (e *RoomNotFoundError) Is(target error) bool {
	return target == ErrRoomNotFound
}

func IsRoomNotFoundError(err error) *RoomNotFoundError {
	var target *RoomNotFoundError

	if errors.As(err, &target) {
		return target
	}

	return nil
}

type UserNotFoundError struct {
	UserID int
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user %d not found", e.UserID)
}

func (e *UserNotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}

func IsUserNotFoundError(err error) *UserNotFoundError {
	var target *UserNotFoundError

	if errors.As(err, &target) {
		return target
	}

	return nil
}

type RoomUnavailableError struct {
	RoomNumber int
	CheckIn    time.Time
	CheckOut   time.Time
	Conflict   Booking
}

func (e *RoomUnavailableError) Error() string {
	return fmt.Sprintf(
		"room %d is already booked from %s to %s",
		e.RoomNumber,
		e.Conflict.CheckIn.Format(time.DateOnly),
		e.Conflict.CheckOut.Format(time.DateOnly),
	)
}

func (e *RoomUnavailableError) Is(target error) bool {
	return target == ErrRoomUnavailable
}

func IsRoomUnavailableError(err error) *RoomUnavailableError {
	var target *RoomUnavailableError

	if errors.As(err, &target) {
		return target
	}

	return nil
}

type InsufficientBalanceError struct {
	UserID    int
	Required  int
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %d, available %d", e.UserID, e.Required, e.Available)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

func IsInsufficientBalanceError(err error) *InsufficientBalanceError {
	var target *InsufficientBalanceError

	if errors.As(err, &target) {
		return target
	}

	return nil
}

type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) fieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
