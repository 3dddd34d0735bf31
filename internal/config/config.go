package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

const (
	defaultAddr         = ":3000"
	defaultAllowOrigins = "http://localhost:5173"
	defaultLogLevel     = "info"
	defaultWSBufferSize = 1024
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the server configuration. Flags win over the environment, which
// wins over the defaults.
type Config struct {
	Addr         string
	AllowOrigins string
	LogLevel     log.Level
	WSBufferSize int
}

// Origins splits AllowOrigins into the list the websocket upgrader expects.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", defaultAddr), "listen address")
	origins := fs.String("origins", getenv("CHESS_ALLOW_ORIGINS", defaultAllowOrigins), "comma separated CORS origins")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", defaultLogLevel), "trace, debug, info, warn or error")
	bufferSize := fs.Int("ws-buffer", defaultWSBufferSize, "websocket read and write buffer size in bytes")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Config{
		Addr:         *addr,
		AllowOrigins: *origins,
		WSBufferSize: *bufferSize,
	}
	if cfg.Addr == "" {
		return Config{}, fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if cfg.WSBufferSize <= 0 {
		return Config{}, fmt.Errorf("%w: websocket buffer size must be positive, got %d", ErrInvalidConfig, cfg.WSBufferSize)
	}
	l, err := ParseLevel(*level)
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = l
	return cfg, nil
}

func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return log.LevelInfo, fmt.Errorf("%w: unknown log level %s", ErrInvalidConfig, strconv.Quote(s))
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
