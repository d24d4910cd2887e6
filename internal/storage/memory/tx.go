package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/avstrong/hotel/internal/booking"
)

var (
	ErrTransactionIDNotFoundInCtx = errors.New("no transaction id found in ctx")
	ErrTransactionNotFound        = errors.New("transaction not found")
)

type contextKey string

const transactionKey contextKey = "hotelStorageTransactionID"

// transaction stages writes until commit. Nothing staged is visible to readers.
type transaction struct {
	id                   string
	roomModifications    map[int]booking.Room
	roomOrder            []int
	userModifications    map[int]booking.User
	userOrder            []int
	bookingModifications []booking.Booking
	eventModifications   []booking.Event
}

func withTransactionID(ctx context.Context, trxID string) context.Context {
	return context.WithValue(ctx, transactionKey, trxID)
}

func transactionIDFromContext(ctx context.Context) (string, bool) {
	trxID, ok := ctx.Value(transactionKey).(string)

	return trxID, ok
}

// transaction must be called with db.mu held.
func (db *DB) transaction(ctx context.Context) (*transaction, error) {
	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return nil, ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return nil, fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	return trx, nil
}
