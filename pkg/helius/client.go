package helius

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Radz112/jeet-timer-api/pkg/config"
)

const maxRetries = 2 // additional attempts after the first, 429 only

var requiredFields = []string{
	"signature", "timestamp", "type", "source",
	"fee", "feePayer", "description", "events",
}

// Client fetches parsed swap history from the Helius
// enhanced-transactions API.
type Client struct {
	apiKey     string
	baseURL    string
	limit      int
	client     *http.Client
	retryDelay time.Duration
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:     cfg.HeliusAPIKey,
		baseURL:    cfg.HeliusBaseURL,
		limit:      cfg.SwapFetchLimit,
		client:     &http.Client{Timeout: cfg.FetchTimeout},
		retryDelay: time.Second,
	}
}

func (c *Client) swapHistoryURL(wallet string) string {
	return fmt.Sprintf("%s/v0/addresses/%s/transactions?api-key=%s&type=SWAP&limit=%d",
		c.baseURL, wallet, url.QueryEscape(c.apiKey), c.limit)
}

// FetchSwapHistory returns the wallet's recent SWAP transactions.
// Rate-limit responses are retried up to 2 more times with exponential
// backoff (1s, 2s); every other failure aborts immediately.
func (c *Client) FetchSwapHistory(ctx context.Context, wallet string) ([]EnhancedTransaction, error) {
	reqURL := c.swapHistoryURL(wallet)

	for attempt := 0; ; attempt++ {
		body, status, err := c.get(ctx, reqURL)
		if err != nil {
			return nil, err
		}

		switch {
		case status == http.StatusTooManyRequests:
			if attempt >= maxRetries {
				return nil, apiErr(KindRateLimited, status, "helius api rate limited: max retries exceeded")
			}
			delay := c.retryDelay << attempt
			log.Warn().Int("attempt", attempt+1).Dur("backoff", delay).Msg("helius rate limited, retrying")
			select {
			case <-ctx.Done():
				return nil, apiErr(KindTimeout, 0, "helius api request cancelled: %v", ctx.Err())
			case <-time.After(delay):
			}
			continue
		case status == http.StatusBadRequest:
			return nil, apiErr(KindBadRequest, status, "helius api bad request: invalid wallet address or parameters")
		case status == http.StatusUnauthorized:
			return nil, apiErr(KindUnauthorized, status, "helius api unauthorized: invalid api key")
		case status == http.StatusForbidden:
			return nil, apiErr(KindForbidden, status, "helius api forbidden: access denied")
		case status < 200 || status > 299:
			return nil, apiErr(KindUpstream, status, "helius api error: %d %s", status, http.StatusText(status))
		}

		txs, err := decodeTransactions(body)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("wallet", wallet).Int("txs", len(txs)).Msg("fetched swap history")
		return txs, nil
	}
}

// get performs one attempt. A non-nil error means no usable response
// (transport failure or timeout) — those are never retried.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, apiErr(KindNetwork, 0, "helius api network error: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, 0, apiErr(KindTimeout, 0, "helius api request timed out after %s", c.client.Timeout)
		}
		return nil, 0, apiErr(KindNetwork, 0, "helius api network error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20)) // 10MB max
	if err != nil {
		return nil, 0, apiErr(KindNetwork, 0, "helius api network error: %v", err)
	}
	return body, resp.StatusCode, nil
}

func isTimeout(err error) bool {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// decodeTransactions validates the payload structurally: it must be a JSON
// array, and every record must carry the baseline enhanced-transaction
// fields. Extra fields are fine — Helius adds them without notice.
func decodeTransactions(body []byte) ([]EnhancedTransaction, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apiErr(KindBadShape, 0, "helius api invalid response: expected a transaction array")
	}

	txs := make([]EnhancedTransaction, 0, len(raw))
	for i, rec := range raw {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(rec, &keys); err != nil {
			return nil, apiErr(KindBadShape, 0, "helius api invalid response: record %d is not an object", i)
		}
		for _, f := range requiredFields {
			if _, ok := keys[f]; !ok {
				return nil, apiErr(KindBadShape, 0, "helius api invalid response: record %d missing field %q", i, f)
			}
		}
		var tx EnhancedTransaction
		if err := json.Unmarshal(rec, &tx); err != nil {
			return nil, apiErr(KindBadShape, 0, "helius api invalid response: record %d: %v", i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
