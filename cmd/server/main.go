package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Radz112/jeet-timer-api/pkg/api"
	"github.com/Radz112/jeet-timer-api/pkg/config"
	"github.com/Radz112/jeet-timer-api/pkg/helius"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
	log.Info().Msg("⏱️  Jeet Timer API starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	client := helius.NewClient(cfg)
	srv := api.New(cfg, client)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	printSummary(cfg)
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server error")
	}
	log.Info().Msg("goodbye 👋")
}

func printSummary(cfg *config.Config) {
	fmt.Println("\n" + strings.Repeat("═", 60))
	fmt.Println("  ⏱️  JEET TIMER API - RUNNING")
	fmt.Println(strings.Repeat("═", 60))
	fmt.Printf("  Endpoint:  POST http://localhost:%d/api/v1/solana/jeet-timer\n", cfg.Port)
	fmt.Printf("  Upstream:  %s\n", cfg.HeliusBaseURL)
	fmt.Printf("  Pay to:    %s\n", cfg.PayToAddress)
	fmt.Println(strings.Repeat("═", 60) + "\n")
}
