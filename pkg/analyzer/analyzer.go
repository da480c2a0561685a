package analyzer

import (
	"sort"

	"github.com/Radz112/jeet-timer-api/pkg/helius"
)

// Reference assets: the "price" side of a trade, never the traded token.
var stableMints = map[string]bool{
	"So11111111111111111111111111111111111111112": true, // wSOL
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": true, // USDC
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": true, // USDT
}

type eventSide int

const (
	sideBuy eventSide = iota
	sideSell
)

type mintEvent struct {
	mint      string
	side      eventSide
	timestamp int64
	signature string
}

// TradePair is a buy matched FIFO with a later-or-equal sell of the
// same mint.
type TradePair struct {
	Mint          string `json:"mint"`
	BuyTimestamp  int64  `json:"buyTimestamp"`
	SellTimestamp int64  `json:"sellTimestamp"`
	HoldSeconds   int64  `json:"holdSeconds"`
	BuySignature  string `json:"buySignature"`
	SellSignature string `json:"sellSignature"`
}

type Analysis struct {
	TradePairs          []TradePair `json:"trade_pairs"`
	AvgHoldSeconds      float64     `json:"avg_hold_seconds"`
	FastestJeet         int64       `json:"fastest_jeet"`
	TotalTradesAnalyzed int         `json:"total_trades_analyzed"`
	UnmatchedBuys       int         `json:"unmatched_buys"`
}

// AnalyzeHoldTimes pairs buy/sell swap events per token mint and computes
// hold-duration stats. The input slice is not mutated.
//
// Mints a wallet received are BUYs, mints it sent are SELLs; stable and
// native reference mints produce no events at all. Within each mint the
// buys and sells are scanned chronologically with a single sell cursor:
// sells older than the current buy can never match anything and are
// skipped for good, so matching is linear per mint.
func AnalyzeHoldTimes(txs []helius.EnhancedTransaction) Analysis {
	sorted := make([]helius.EnhancedTransaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	var events []mintEvent
	for _, tx := range sorted {
		swap := tx.Events.Swap
		if swap == nil {
			continue
		}
		// tokenOutputs = tokens the wallet RECEIVED → BUY signals
		for _, out := range swap.TokenOutputs {
			if !stableMints[out.Mint] {
				events = append(events, mintEvent{out.Mint, sideBuy, tx.Timestamp, tx.Signature})
			}
		}
		// tokenInputs = tokens the wallet SENT → SELL signals
		for _, in := range swap.TokenInputs {
			if !stableMints[in.Mint] {
				events = append(events, mintEvent{in.Mint, sideSell, tx.Timestamp, tx.Signature})
			}
		}
	}

	// Group by mint in first-seen order so pair order is deterministic.
	byMint := map[string][]mintEvent{}
	var mintOrder []string
	for _, evt := range events {
		if _, ok := byMint[evt.mint]; !ok {
			mintOrder = append(mintOrder, evt.mint)
		}
		byMint[evt.mint] = append(byMint[evt.mint], evt)
	}

	pairs := make([]TradePair, 0)
	unmatched := 0

	for _, mint := range mintOrder {
		var buys, sells []mintEvent
		for _, evt := range byMint[mint] {
			if evt.side == sideBuy {
				buys = append(buys, evt)
			} else {
				sells = append(sells, evt)
			}
		}

		sellIdx := 0
		for _, buy := range buys {
			for sellIdx < len(sells) && sells[sellIdx].timestamp < buy.timestamp {
				sellIdx++
			}
			if sellIdx < len(sells) {
				sell := sells[sellIdx]
				pairs = append(pairs, TradePair{
					Mint:          mint,
					BuyTimestamp:  buy.timestamp,
					SellTimestamp: sell.timestamp,
					HoldSeconds:   sell.timestamp - buy.timestamp,
					BuySignature:  buy.signature,
					SellSignature: sell.signature,
				})
				sellIdx++
			} else {
				unmatched++
			}
		}
	}

	if len(pairs) == 0 {
		return Analysis{TradePairs: pairs, UnmatchedBuys: unmatched}
	}

	var sum, fastest int64
	fastest = pairs[0].HoldSeconds
	for _, p := range pairs {
		sum += p.HoldSeconds
		if p.HoldSeconds < fastest {
			fastest = p.HoldSeconds
		}
	}

	return Analysis{
		TradePairs:          pairs,
		AvgHoldSeconds:      float64(sum) / float64(len(pairs)),
		FastestJeet:         fastest,
		TotalTradesAnalyzed: len(pairs),
		UnmatchedBuys:       unmatched,
	}
}
