// Package report renders the ledger for people: every listing runs from the
// most recently inserted entity to the oldest one.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/avstrong/hotel/internal/booking"
)

const (
	minWidth = 0
	tabWidth = 4
	padding  = 2
)

func PrintAll(w io.Writer, rooms []booking.Room, bookings []booking.Booking) error {
	tw := tabwriter.NewWriter(w, minWidth, tabWidth, padding, ' ', 0)

	fmt.Fprintln(tw, "ROOMS (latest first)")

	if len(rooms) == 0 {
		fmt.Fprintln(tw, "(none)")
	} else {
		fmt.Fprintln(tw, "ROOM\tTYPE\tPRICE/NIGHT")

		for i := len(rooms) - 1; i >= 0; i-- {
			r := rooms[i]
			fmt.Fprintf(tw, "%d\t%s\t%d\n", r.Number, r.Type, r.PricePerNight)
		}
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "BOOKINGS (latest first)")

	if len(bookings) == 0 {
		fmt.Fprintln(tw, "(none)")
	} else {
		fmt.Fprintln(tw, "ID\tUSER\tROOM\tCHECK-IN\tCHECK-OUT\tNIGHTS\tTYPE\tPRICE/NIGHT\tTOTAL\tBALANCE BEFORE")

		for i := len(bookings) - 1; i >= 0; i-- {
			b := bookings[i]
			fmt.Fprintf(
				tw,
				"%d\t%d\t%d\t%s\t%s\t%d\t%s\t%d\t%d\t%d\n",
				b.ID,
				b.UserID,
				b.RoomNumber,
				b.CheckIn.Format(time.DateOnly),
				b.CheckOut.Format(time.DateOnly),
				b.Nights(),
				b.RoomTypeAtBooking,
				b.PricePerNightAtBooking,
				b.TotalCost(),
				b.UserBalanceAtBooking,
			)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush rooms and bookings report: %w", err)
	}

	return nil
}

func PrintAllUsers(w io.Writer, users []booking.User) error {
	tw := tabwriter.NewWriter(w, minWidth, tabWidth, padding, ' ', 0)

	fmt.Fprintln(tw, "USERS (latest first)")

	if len(users) == 0 {
		fmt.Fprintln(tw, "(none)")
	} else {
		fmt.Fprintln(tw, "USER\tBALANCE")

		for i := len(users) - 1; i >= 0; i-- {
			fmt.Fprintf(tw, "%d\t%d\n", users[i].ID, users[i].Balance)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush users report: %w", err)
	}

	return nil
}
