package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gotp/internal/auth"
)

func (a *App) initModules() {
	if err := auth.New(auth.Dependency{
		Ctx:          a.ctx,
		Database:     a.database,
		Goroutine:    a.goroutine,
		Router:       a.router,
		Messaging:    a.messaging,
		Config:       a.config,
		Instrument:   a.ins,
		Bcrypt:       a.bcrypt,
		Clock:        a.clock,
		Totp:         a.totp,
		Validator:    a.validator,
		LoginLimiter: a.loginLimiter,
		OTPLimiter:   a.otpLimiter,
	}); err != nil {
		slog.Error("failed to init module auth", "error", err)
		os.Exit(1)
	}
}
