package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/config"
	"github.com/avstrong/hotel/internal/idgen/simple"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/migration"
	"github.com/avstrong/hotel/internal/notify"
	"github.com/avstrong/hotel/internal/report"
	"github.com/avstrong/hotel/internal/storage/memory"
	"github.com/avstrong/hotel/internal/transport/web"
)

func Run(l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	conf, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	bookManager := newManager(l, conf)

	if err := migration.Up(ctx, l, bookManager); err != nil {
		return fmt.Errorf("up seed migration: %w", err)
	}

	if conf.Mode == config.ModeDemo {
		return RunDemo(ctx, l, bookManager, os.Stdout)
	}

	return serve(ctx, l, conf, bookManager)
}

func newManager(l *logger.Logger, conf config.Config) *booking.Manager {
	storage := memory.New(memory.Config{L: l})
	idGen := simple.New()

	var publisher booking.Publisher = notify.Noop{}

	if conf.AMQPURL != "" {
		publisher = notify.NewAMQP(notify.AMQPConf{URL: conf.AMQPURL, Queue: conf.AMQPQueue})

		l.LogInfo("Booking confirmations are published to queue %s", conf.AMQPQueue)
	}

	return booking.New(l, storage, idGen, publisher)
}

type attempt struct {
	userID     int
	roomNumber int
	checkIn    time.Time
	checkOut   time.Time
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// demoAttempts replays the reference scenario against the seeded rooms and users.
var demoAttempts = []attempt{
	{userID: 1, roomNumber: 2, checkIn: date(2026, time.June, 30), checkOut: date(2026, time.July, 7)},
	{userID: 1, roomNumber: 2, checkIn: date(2026, time.July, 7), checkOut: date(2026, time.June, 30)},
	{userID: 1, roomNumber: 1, checkIn: date(2026, time.July, 7), checkOut: date(2026, time.July, 8)},
	{userID: 2, roomNumber: 1, checkIn: date(2026, time.July, 7), checkOut: date(2026, time.July, 9)},
	{userID: 2, roomNumber: 3, checkIn: date(2026, time.July, 7), checkOut: date(2026, time.July, 8)},
}

func RunDemo(ctx context.Context, l *logger.Logger, bookManager *booking.Manager, out io.Writer) error {
	for _, a := range demoAttempts {
		_, err := bookManager.BookRoom(ctx, a.userID, a.roomNumber, a.checkIn, a.checkOut)
		if err != nil {
			if booking.IsInputError(err) == nil && !isRejection(err) {
				return fmt.Errorf("book room %d for user %d: %w", a.roomNumber, a.userID, err)
			}

			fmt.Fprintf(out, "✗ User %d booking Room %d failed: %v\n", a.userID, a.roomNumber, err)

			continue
		}

		fmt.Fprintf(out, "✓ User %d booked Room %d\n", a.userID, a.roomNumber)
	}

	if err := bookManager.SetRoom(ctx, 1, booking.RoomTypeSuite, 10000); err != nil {
		return fmt.Errorf("update room 1: %w", err)
	}

	rooms, err := bookManager.ListRooms(ctx)
	if err != nil {
		return fmt.Errorf("list rooms: %w", err)
	}

	bookings, err := bookManager.ListBookings(ctx)
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}

	users, err := bookManager.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	fmt.Fprintln(out)

	if err := report.PrintAll(out, rooms, bookings); err != nil {
		return fmt.Errorf("print rooms and bookings: %w", err)
	}

	fmt.Fprintln(out)

	if err := report.PrintAllUsers(out, users); err != nil {
		return fmt.Errorf("print users: %w", err)
	}

	l.LogInfo("Demo finished: %d bookings recorded", len(bookings))

	return nil
}

func isRejection(err error) bool {
	return errors.Is(err, booking.ErrInvalidDateRange) ||
		errors.Is(err, booking.ErrRoomNotFound) ||
		errors.Is(err, booking.ErrUserNotFound) ||
		errors.Is(err, booking.ErrRoomUnavailable) ||
		errors.Is(err, booking.ErrInsufficientBalance)
}

func serve(ctx context.Context, l *logger.Logger, conf config.Config, bookManager *booking.Manager) error {
	webConf := web.Conf{
		L:                  l,
		ServerLogger:       log.Default(),
		Host:               conf.HTTPHost,
		Port:               conf.HTTPPort,
		ReadHeaderTimeout:  conf.ReadHeaderTimeout,
		LivenessEndpoint:   conf.LivenessEndpoint,
		RateLimitRPS:       conf.RateLimitRPS,
		RateLimitBurst:     conf.RateLimitBurst,
		CORSAllowedOrigins: conf.CORSAllowedOrigins,
	}

	srv, err := web.New(ctx, webConf, bookManager)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*4) //nolint:gomnd
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run http server: %w", err)
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
