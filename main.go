package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shandysiswandi/otpauth/internal/app"
)

// @title           OTP Auth API
// @version         1.0
// @description     OTP Auth registers accounts and signs them in with one-time codes sent by email.
// @contact.name    Contact Support
// @contact.email   support@otpauth.local
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
func main() {
	application, err := app.New()
	if err != nil {
		slog.Error("failed to start application", "error", err)
		os.Exit(1)
	}

	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx)
}
