// Command jta_token mints a bearer token for local development, signed with
// the configured JWT_SECRET. Identity is otherwise provided upstream.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/platform/config"
	"github.com/SscSPs/job_tracker_app/internal/utils"
	"github.com/google/uuid"
)

func main() {
	userID := flag.String("user", "", "user ID to put in the token subject (random when empty)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *userID == "" {
		*userID = uuid.NewString()
		logger.Info("Generated user ID", slog.String("user_id", *userID))
	}

	token, err := utils.GenerateJWT(*userID, cfg.JWTSecret, *ttl)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
