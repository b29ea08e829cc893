package impl

import (
	"io"
	"log/slog"
	"time"

	"usersvc/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(verifyTimeout time.Duration) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:    4,
			VerifyTimeout: verifyTimeout,
		},
	}
}
