package helius

import "encoding/json"

// Types for the Helius enhanced-transactions API
// (GET /v0/addresses/{address}/transactions).

type TokenTransfer struct {
	FromUserAccount  string  `json:"fromUserAccount"`
	ToUserAccount    string  `json:"toUserAccount"`
	FromTokenAccount string  `json:"fromTokenAccount"`
	ToTokenAccount   string  `json:"toTokenAccount"`
	TokenAmount      float64 `json:"tokenAmount"`
	Mint             string  `json:"mint"`
	TokenStandard    string  `json:"tokenStandard"`
}

type RawTokenAmount struct {
	TokenAmount string `json:"tokenAmount"`
	Decimals    int    `json:"decimals"`
}

// SwapTokenAmount is one leg of a swap: a mint the wallet sent (input)
// or received (output).
type SwapTokenAmount struct {
	UserAccount    string         `json:"userAccount"`
	TokenAccount   string         `json:"tokenAccount"`
	Mint           string         `json:"mint"`
	RawTokenAmount RawTokenAmount `json:"rawTokenAmount"`
}

type NativeBalanceChange struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

type InnerSwap struct {
	TokenInputs  []TokenTransfer `json:"tokenInputs"`
	TokenOutputs []TokenTransfer `json:"tokenOutputs"`
	ProgramInfo  struct {
		Source          string `json:"source"`
		Account         string `json:"account"`
		ProgramName     string `json:"programName"`
		InstructionName string `json:"instructionName"`
	} `json:"programInfo"`
}

type SwapEvent struct {
	NativeInput  *NativeBalanceChange `json:"nativeInput,omitempty"`
	NativeOutput *NativeBalanceChange `json:"nativeOutput,omitempty"`
	TokenInputs  []SwapTokenAmount    `json:"tokenInputs"`
	TokenOutputs []SwapTokenAmount    `json:"tokenOutputs"`
	TokenFees    []json.RawMessage    `json:"tokenFees"`
	NativeFees   []json.RawMessage    `json:"nativeFees"`
	InnerSwaps   []InnerSwap          `json:"innerSwaps"`
}

type TransactionEvents struct {
	Swap *SwapEvent `json:"swap,omitempty"`
}

// EnhancedTransaction is one parsed transaction record. Helius adds fields
// over time; unknown ones are ignored rather than rejected.
type EnhancedTransaction struct {
	Signature      string            `json:"signature"`
	Timestamp      int64             `json:"timestamp"`
	Type           string            `json:"type"`
	Source         string            `json:"source"`
	Fee            int64             `json:"fee"`
	FeePayer       string            `json:"feePayer"`
	Description    string            `json:"description"`
	TokenTransfers []TokenTransfer   `json:"tokenTransfers"`
	Events         TransactionEvents `json:"events"`
}
