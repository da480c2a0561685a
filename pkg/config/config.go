package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultHeliusBaseURL = "https://api-mainnet.helius-rpc.com"

type Config struct {
	// Helius
	HeliusAPIKey   string
	HeliusBaseURL  string
	FetchTimeout   time.Duration
	SwapFetchLimit int

	// Payment / attribution
	PayToAddress  string
	CreatorWallet string

	// Server
	Port int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HeliusAPIKey:   os.Getenv("HELIUS_API_KEY"),
		HeliusBaseURL:  envOr("HELIUS_BASE_URL", DefaultHeliusBaseURL),
		FetchTimeout:   time.Duration(envInt("HELIUS_TIMEOUT_SECONDS", 10)) * time.Second,
		SwapFetchLimit: envInt("SWAP_FETCH_LIMIT", 50),

		PayToAddress: os.Getenv("PAY_TO_ADDRESS"),

		Port: envInt("PORT", 3000),
	}
	cfg.CreatorWallet = envOr("CREATOR_WALLET_ADDRESS", cfg.PayToAddress)

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HeliusAPIKey == "" {
		return fmt.Errorf("HELIUS_API_KEY is required")
	}
	if c.PayToAddress == "" {
		return fmt.Errorf("PAY_TO_ADDRESS is required")
	}
	if c.Port <= 0 {
		return fmt.Errorf("PORT must be a positive integer, got %d", c.Port)
	}
	return nil
}

// helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
