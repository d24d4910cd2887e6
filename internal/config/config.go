package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModeDemo  = "demo"
	ModeServe = "serve"
)

var ErrInvalidValue = errors.New("invalid config value")

type Config struct {
	Mode               string
	HTTPHost           string
	HTTPPort           string
	ReadHeaderTimeout  time.Duration
	LivenessEndpoint   string
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string
	AMQPURL            string
	AMQPQueue          string
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	return FromEnv()
}

func FromEnv() (Config, error) {
	var conf Config

	conf.Mode = strings.ToLower(getenv("APP_MODE", ModeDemo))
	if conf.Mode != ModeDemo && conf.Mode != ModeServe {
		return Config{}, fmt.Errorf("APP_MODE %q: %w", conf.Mode, ErrInvalidValue)
	}

	conf.HTTPHost = getenv("HTTP_HOST", "localhost")
	conf.HTTPPort = getenv("HTTP_PORT", "8092")
	conf.LivenessEndpoint = getenv("LIVENESS_ENDPOINT", "/liveness")

	var err error

	if conf.ReadHeaderTimeout, err = time.ParseDuration(getenv("HTTP_READ_HEADER_TIMEOUT", "20s")); err != nil {
		return Config{}, fmt.Errorf("HTTP_READ_HEADER_TIMEOUT: %w", ErrInvalidValue)
	}

	if conf.RateLimitRPS, err = strconv.ParseFloat(getenv("RATE_LIMIT_RPS", "10"), 64); err != nil || conf.RateLimitRPS < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", ErrInvalidValue)
	}

	if conf.RateLimitBurst, err = strconv.Atoi(getenv("RATE_LIMIT_BURST", "20")); err != nil || conf.RateLimitBurst < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", ErrInvalidValue)
	}

	conf.CORSAllowedOrigins = splitList(getenv("CORS_ALLOWED_ORIGINS", "*"))
	conf.AMQPURL = os.Getenv("AMQP_URL")
	conf.AMQPQueue = getenv("AMQP_QUEUE", "booking.confirmed")

	return conf, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return def
}

func splitList(s string) []string {
	var out []string

	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
