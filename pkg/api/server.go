package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Radz112/jeet-timer-api/pkg/analyzer"
	"github.com/Radz112/jeet-timer-api/pkg/config"
	"github.com/Radz112/jeet-timer-api/pkg/gauge"
	"github.com/Radz112/jeet-timer-api/pkg/helius"
	"github.com/Radz112/jeet-timer-api/pkg/jeet"
	"github.com/Radz112/jeet-timer-api/pkg/solana"
)

const basePath = "/api/v1/solana/jeet-timer"

// HistoryFetcher is what the endpoint needs from the Helius client.
type HistoryFetcher interface {
	FetchSwapHistory(ctx context.Context, wallet string) ([]helius.EnhancedTransaction, error)
}

type Server struct {
	cfg     *config.Config
	fetcher HistoryFetcher
}

func New(cfg *config.Config, fetcher HistoryFetcher) *Server {
	return &Server{cfg: cfg, fetcher: fetcher}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(basePath, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.handleMetadata(w, r)
		case http.MethodPost:
			s.handleAnalyze(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		}
	})
	return mux
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("🌐 jeet timer api started")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}

func (s *Server) handleMetadata(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name": "Jeet Timer",
		"description": "Analyzes a Solana wallet's trade history to determine how quickly they sell (jeet) " +
			"their tokens. Returns hold-time stats, jeet classification, and a speedometer image.",
		"version":        "1.0.0",
		"pricing":        "$0.01 per call",
		"pay_to_address": s.cfg.PayToAddress,
		"endpoint":       "POST " + basePath,
		"request_schema": map[string]interface{}{
			"body": map[string]string{
				"wallet": "string (Solana base58 address)",
			},
		},
		"response_fields": []string{
			"wallet",
			"avg_hold_seconds",
			"avg_hold_time",
			"jeet_level",
			"fastest_jeet",
			"fastest_exit",
			"total_trades_analyzed",
			"unmatched_buys",
			"image_base64",
			"creator_wallet",
			"trade_pairs",
		},
	})
}

type analysisData struct {
	Wallet              string               `json:"wallet"`
	AvgHoldSeconds      float64              `json:"avg_hold_seconds"`
	AvgHoldTime         string               `json:"avg_hold_time"`
	JeetLevel           string               `json:"jeet_level"`
	FastestJeet         int64                `json:"fastest_jeet"`
	FastestExit         string               `json:"fastest_exit"`
	TotalTradesAnalyzed int                  `json:"total_trades_analyzed"`
	UnmatchedBuys       int                  `json:"unmatched_buys"`
	ImageBase64         string               `json:"image_base64"`
	CreatorWallet       string               `json:"creator_wallet"`
	TradePairs          []analyzer.TradePair `json:"trade_pairs"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	wallet, verr := parseWalletRequest(r)
	if verr != nil {
		writeError(w, http.StatusBadRequest, verr.message, verr.errors)
		return
	}

	txs, err := s.fetcher.FetchSwapHistory(r.Context(), wallet)
	if err != nil {
		log.Error().Err(err).Str("wallet", solana.Abbrev(wallet)).Msg("swap history fetch failed")
		writeError(w, http.StatusBadGateway, err.Error(), nil)
		return
	}

	analysis := analyzer.AnalyzeHoldTimes(txs)
	level := jeet.LevelFor(analysis.AvgHoldSeconds)

	img, err := gauge.Render(analysis, wallet)
	if err != nil {
		log.Error().Err(err).Msg("gauge render failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	log.Info().Str("wallet", solana.Abbrev(wallet)).
		Int("pairs", analysis.TotalTradesAnalyzed).
		Str("level", level.Name).Msg("📊 wallet analyzed")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": analysisData{
			Wallet:              wallet,
			AvgHoldSeconds:      analysis.AvgHoldSeconds,
			AvgHoldTime:         jeet.FormatHoldTime(analysis.AvgHoldSeconds),
			JeetLevel:           level.Label(),
			FastestJeet:         analysis.FastestJeet,
			FastestExit:         jeet.FormatHoldTime(float64(analysis.FastestJeet)),
			TotalTradesAnalyzed: analysis.TotalTradesAnalyzed,
			UnmatchedBuys:       analysis.UnmatchedBuys,
			ImageBase64:         img,
			CreatorWallet:       s.cfg.CreatorWallet,
			TradePairs:          analysis.TradePairs,
		},
	})
}

type validationError struct {
	message string
	errors  map[string][]string
}

// parseWalletRequest validates the `{ body: { wallet } }` envelope.
// A missing or non-object top-level `body` is a format error; anything
// wrong past that point is a wallet error.
func parseWalletRequest(r *http.Request) (string, *validationError) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return "", &validationError{"Invalid request format", map[string][]string{"body": {"Unreadable request body"}}}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return "", &validationError{"Invalid request format", map[string][]string{"body": {"Expected a JSON object"}}}
	}
	bodyRaw, ok := top["body"]
	if !ok {
		return "", &validationError{"Invalid request format", map[string][]string{"body": {"Required"}}}
	}

	var body map[string]json.RawMessage
	// json.Unmarshal accepts `null` into a nil map; that is still not an object.
	if err := json.Unmarshal(bodyRaw, &body); err != nil || body == nil {
		return "", &validationError{"Invalid request format", map[string][]string{"body": {"Expected a JSON object"}}}
	}
	walletRaw, ok := body["wallet"]
	if !ok {
		return "", &validationError{"Invalid wallet address", map[string][]string{"wallet": {"Required"}}}
	}

	var wallet string
	if err := json.Unmarshal(walletRaw, &wallet); err != nil {
		return "", &validationError{"Invalid wallet address", map[string][]string{"wallet": {"Expected a string"}}}
	}
	if !solana.ValidAddress(wallet) {
		return "", &validationError{"Invalid wallet address", map[string][]string{
			"wallet": {"Invalid Solana address: must be 32-44 base58 characters"},
		}}
	}
	return wallet, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, fieldErrors map[string][]string) {
	resp := map[string]interface{}{
		"status":  "error",
		"message": message,
	}
	if fieldErrors != nil {
		resp["errors"] = fieldErrors
	}
	writeJSON(w, status, resp)
}
