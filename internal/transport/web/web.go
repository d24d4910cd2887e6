package web

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/logger"
)

var ErrPanic = errors.New("panic in handler")

type Server struct {
	srv      *http.Server
	router   *http.ServeMux
	l        *logger.Logger
	conf     Conf
	bManager *booking.Manager
	limiter  *clientLimiter
}

type Conf struct {
	L                  *logger.Logger
	ServerLogger       *log.Logger
	Host               string
	Port               string
	ReadHeaderTimeout  time.Duration
	LivenessEndpoint   string
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string
}

func New(ctx context.Context, conf Conf, bookingManager *booking.Manager) (*Server, error) {
	mux := http.NewServeMux()

	corsHandler := cors.New(cors.Options{ //nolint:exhaustruct
		AllowedOrigins: conf.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	}).Handler(mux)

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           corsHandler,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:      srv,
		router:   mux,
		l:        conf.L,
		conf:     conf,
		bManager: bookingManager,
		limiter:  newClientLimiter(conf.RateLimitRPS, conf.RateLimitBurst),
	}

	server.addRoutes(mux)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}

// Handler exposes the full middleware chain, CORS included.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
