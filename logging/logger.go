// Package logging sets up the structured logger used by the commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

type Config struct {
	// Level is one of trace, debug, info, warn or error.
	Level string
	// Format is json or console.
	Format string
	Output io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: os.Stderr,
	}
}

func New(cfg Config) *bolt.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	var handler bolt.Handler
	if cfg.Format == "json" {
		handler = bolt.NewJSONHandler(out)
	} else {
		handler = bolt.NewConsoleHandler(out)
	}
	return bolt.New(handler).SetLevel(parseLevel(cfg.Level))
}

func parseLevel(s string) bolt.Level {
	switch s {
	case "trace":
		return bolt.TRACE
	case "debug":
		return bolt.DEBUG
	case "info":
		return bolt.INFO
	case "warn":
		return bolt.WARN
	case "error":
		return bolt.ERROR
	default:
		return bolt.INFO
	}
}

// Field adds structured data to an event.
type Field func(*bolt.Event) *bolt.Event

// With applies all fields to e.
func With(e *bolt.Event, fields ...Field) *bolt.Event {
	for _, f := range fields {
		e = f(e)
	}
	return e
}

func Chart(kind string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("chart", kind)
	}
}

func File(file string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("file", file)
	}
}

func Index(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("document", n)
	}
}

func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

func Err(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}
