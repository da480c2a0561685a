package helius

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const testWallet = "DstRVJCPsgZHLnW6mFcasHPdemYvFVbdm3LFZNv3Egrp"

func testClient(baseURL string) *Client {
	return &Client{
		apiKey:     "test-api-key",
		baseURL:    baseURL,
		limit:      50,
		client:     &http.Client{Timeout: 2 * time.Second},
		retryDelay: time.Millisecond, // keep backoff out of test runtime
	}
}

func txJSON(sig string, ts int64) string {
	return fmt.Sprintf(`{
		"signature": %q, "timestamp": %d, "type": "SWAP", "source": "RAYDIUM",
		"fee": 5000, "feePayer": %q, "description": "swapped tokens",
		"tokenTransfers": [], "events": {}
	}`, sig, ts, testWallet)
}

func errKind(t *testing.T, err error) ErrorKind {
	t.Helper()
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	return apiErr.Kind
}

func TestFetchSwapHistory_RequestShape(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).FetchSwapHistory(context.Background(), testWallet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPath := "/v0/addresses/" + testWallet + "/transactions"
	if gotPath != wantPath {
		t.Errorf("path = %q, want %q", gotPath, wantPath)
	}
	wantQuery := "api-key=test-api-key&type=SWAP&limit=50"
	if gotQuery != wantQuery {
		t.Errorf("query = %q, want %q", gotQuery, wantQuery)
	}
}

func TestFetchSwapHistory_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "[%s,%s]", txJSON("sig123", 1700000000), txJSON("sig456", 1700000100))
	}))
	defer srv.Close()

	txs, err := testClient(srv.URL).FetchSwapHistory(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 txs, got %d", len(txs))
	}
	if txs[0].Signature != "sig123" || txs[1].Signature != "sig456" {
		t.Errorf("unexpected signatures: %q, %q", txs[0].Signature, txs[1].Signature)
	}
	if txs[0].Timestamp != 1700000000 {
		t.Errorf("timestamp = %d", txs[0].Timestamp)
	}
}

func TestFetchSwapHistory_EmptyHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	txs, err := testClient(srv.URL).FetchSwapHistory(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("expected empty history, got %d txs", len(txs))
	}
}

func TestFetchSwapHistory_RetriesRateLimitThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprintf(w, "[%s]", txJSON("sig123", 1700000000))
	}))
	defer srv.Close()

	txs, err := testClient(srv.URL).FetchSwapHistory(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("expected 1 tx, got %d", len(txs))
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("expected exactly 3 upstream calls, got %d", n)
	}
}

func TestFetchSwapHistory_RateLimitExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchSwapHistory(context.Background(), testWallet)
	if kind := errKind(t, err); kind != KindRateLimited {
		t.Errorf("kind = %q, want rate_limited", kind)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("expected exactly 3 upstream calls (no 4th), got %d", n)
	}
}

func TestFetchSwapHistory_ClientErrorsNotRetried(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusBadRequest, KindBadRequest},
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindForbidden},
	}
	for _, c := range cases {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(c.status)
		}))

		_, err := testClient(srv.URL).FetchSwapHistory(context.Background(), testWallet)
		if kind := errKind(t, err); kind != c.kind {
			t.Errorf("status %d: kind = %q, want %q", c.status, kind, c.kind)
		}
		if n := calls.Load(); n != 1 {
			t.Errorf("status %d: expected 1 call (no retry), got %d", c.status, n)
		}
		srv.Close()
	}
}

func TestFetchSwapHistory_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchSwapHistory(context.Background(), testWallet)
	if kind := errKind(t, err); kind != KindUpstream {
		t.Errorf("kind = %q, want upstream", kind)
	}
	var apiErr *APIError
	errors.As(err, &apiErr)
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", apiErr.Status)
	}
}

func TestFetchSwapHistory_NonArrayPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"nope"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchSwapHistory(context.Background(), testWallet)
	if kind := errKind(t, err); kind != KindBadShape {
		t.Errorf("kind = %q, want bad_shape", kind)
	}
}

func TestFetchSwapHistory_RecordMissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// no signature field
		fmt.Fprint(w, `[{"timestamp": 1700000000, "type": "SWAP", "source": "RAYDIUM",
			"fee": 5000, "feePayer": "x", "description": "", "events": {}}]`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchSwapHistory(context.Background(), testWallet)
	if kind := errKind(t, err); kind != KindBadShape {
		t.Errorf("kind = %q, want bad_shape", kind)
	}
}

func TestFetchSwapHistory_UnknownFieldsTolerated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"signature": "sig123", "timestamp": 1700000000, "type": "SWAP",
			"source": "RAYDIUM", "fee": 5000, "feePayer": "x", "description": "",
			"events": {}, "someFutureField": {"nested": true}}]`)
	}))
	defer srv.Close()

	txs, err := testClient(srv.URL).FetchSwapHistory(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("unknown fields should not be rejected: %v", err)
	}
	if len(txs) != 1 || txs[0].Signature != "sig123" {
		t.Errorf("unexpected result: %+v", txs)
	}
}

func TestFetchSwapHistory_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := testClient(srv.URL).FetchSwapHistory(context.Background(), testWallet)
	if kind := errKind(t, err); kind != KindNetwork {
		t.Errorf("kind = %q, want network", kind)
	}
}

func TestFetchSwapHistory_Timeout(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.client.Timeout = 20 * time.Millisecond

	_, err := c.FetchSwapHistory(context.Background(), testWallet)
	if kind := errKind(t, err); kind != KindTimeout {
		t.Errorf("kind = %q, want timeout", kind)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("timed-out attempt must not be retried, got %d calls", n)
	}
}
