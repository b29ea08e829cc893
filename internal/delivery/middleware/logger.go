package middleware

import (
	"log/slog"

	"usersvc/config"

	"github.com/labstack/echo/v4"
	slogecho "github.com/samber/slog-echo"
)

// NewAccessLogger returns the access log middleware: one line per request with method,
// path, status and latency. Headers and bodies are never logged, they carry
// Basic credentials and plaintext passwords. request_id and principal are attached as
// custom attributes by the request id middleware and the gate.
func NewAccessLogger(logger *slog.Logger, cfg *config.Config) echo.MiddlewareFunc {
	logConfig := slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,

		WithUserAgent:      cfg.Env.Debug,
		WithRequestID:      false,
		WithRequestBody:    false,
		WithRequestHeader:  false,
		WithResponseBody:   false,
		WithResponseHeader: false,
	}

	// Scrapes are noise outside debug.
	if !cfg.Env.Debug && cfg.Metrics.Enabled && cfg.Metrics.Path != "" {
		logConfig.Filters = []slogecho.Filter{slogecho.IgnorePath(cfg.Metrics.Path)}
	}

	return slogecho.NewWithConfig(logger, logConfig)
}
