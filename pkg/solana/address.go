package solana

import "regexp"

// Base58 alphabet (no 0, O, I, l), 32-44 chars — the shape of an ed25519
// pubkey rendered in base58.
var addressRe = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

func ValidAddress(s string) bool {
	return addressRe.MatchString(s)
}

// Abbrev shortens an address for display: first 4 + last 4 chars.
// Addresses of 8 chars or fewer (including empty) are returned as-is.
func Abbrev(addr string) string {
	if len(addr) > 8 {
		return addr[:4] + "..." + addr[len(addr)-4:]
	}
	return addr
}
