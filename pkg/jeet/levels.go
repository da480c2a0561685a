package jeet

import "fmt"

type Zone string

const (
	ZoneRed    Zone = "red"
	ZoneYellow Zone = "yellow"
	ZoneGreen  Zone = "green"
)

// Level is a named trading-behavior tier keyed by average hold time.
type Level struct {
	Name  string
	Emoji string
	Zone  Zone
}

type tier struct {
	maxSeconds float64
	level      Level
}

// Ordered by upper bound; the first strict upper bound wins. Negative
// averages (impossible from valid data) fall into the first tier by plain
// numeric comparison — intended, not a special case.
var tiers = []tier{
	{30, Level{"Atomic Jeet", "⚡", ZoneRed}},
	{60, Level{"Grandmaster Jeet", "🏎️", ZoneRed}},
	{300, Level{"Speed Demon", "💨", ZoneRed}},
	{900, Level{"Quick Flip", "🔄", ZoneYellow}},
	{3600, Level{"Swing Trader", "📊", ZoneYellow}},
	{86400, Level{"Patient Player", "⏳", ZoneGreen}},
}

var diamondHands = Level{"Diamond Hands", "💎", ZoneGreen}

// LevelFor classifies an average hold duration in seconds. Total over all
// real numbers; >= 86400 is Diamond Hands.
func LevelFor(avgSeconds float64) Level {
	for _, t := range tiers {
		if avgSeconds < t.maxSeconds {
			return t.level
		}
	}
	return diamondHands
}

// Label renders the tier for display: emoji + name.
func (l Level) Label() string {
	return l.Emoji + " " + l.Name
}

// FormatHoldTime renders a seconds count as a human string ("1h 1m",
// "30 seconds"). Negatives clamp to 0, fractions floor.
func FormatHoldTime(seconds float64) string {
	s := int64(seconds)
	if seconds < 0 {
		s = 0
	}

	if s < 60 {
		if s == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", s)
	}

	days := s / 86400
	hours := (s % 86400) / 3600
	minutes := (s % 3600) / 60
	secs := s % 60

	switch {
	case days > 0:
		if hours > 0 {
			return fmt.Sprintf("%dd %dh", days, hours)
		}
		return fmt.Sprintf("%dd", days)
	case hours > 0:
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	default:
		if secs > 0 {
			return fmt.Sprintf("%dm %ds", minutes, secs)
		}
		return fmt.Sprintf("%dm", minutes)
	}
}
