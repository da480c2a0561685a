package gauge

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/inconsolata"

	"github.com/Radz112/jeet-timer-api/pkg/analyzer"
	"github.com/Radz112/jeet-timer-api/pkg/jeet"
	"github.com/Radz112/jeet-timer-api/pkg/solana"
)

const (
	width  = 800
	height = 600

	centerX = width / 2
	centerY = 320
	radius  = 200

	bgColor = "#0f0f1a"
	maxHold = 86400.0 // 1 day — right end of the log scale
)

// Zone arcs over the half circle, by fraction of the 180° sweep.
// Left (fraction 0) is the fast/jeet end, right is diamond hands.
type zone struct {
	from, to float64
	color    string
	label    string
	labelDX  float64
}

var zones = []zone{
	{0, 72.0 / 180, "#ff3b3b", "JEET", -170},
	{72.0 / 180, 126.0 / 180, "#ffc107", "TRADER", 0},
	{126.0 / 180, 1, "#4caf50", "DIAMOND", 170},
}

// needleRatio maps an average hold time onto [0,1] through a log scale.
// Hold times span seconds to days; a linear gauge would pin every
// realistic wallet to the left edge.
func needleRatio(avgSeconds float64) float64 {
	clamped := math.Max(1, math.Min(avgSeconds, maxHold))
	return math.Log(clamped) / math.Log(maxHold)
}

// halfAngle converts a [0,1] sweep fraction to a drawing angle on the
// upper half circle (screen coordinates, y down).
func halfAngle(f float64) float64 {
	return math.Pi + f*math.Pi
}

// Render draws the jeet-o-meter for an analysis and returns it as a
// data-URI-prefixed base64 PNG.
func Render(a analyzer.Analysis, wallet string) (string, error) {
	dc := gg.NewContext(width, height)

	dc.SetHexColor(bgColor)
	dc.Clear()

	// Title
	dc.SetFontFace(inconsolata.Bold8x16)
	dc.SetHexColor("#ffffff")
	dc.DrawStringAnchored("JEET-O-METER", centerX, 50, 0.5, 0.5)

	// Zone arcs
	dc.SetLineWidth(30)
	for _, z := range zones {
		dc.SetHexColor(z.color)
		dc.DrawArc(centerX, centerY, radius, halfAngle(z.from), halfAngle(z.to))
		dc.Stroke()
	}

	// Zone labels above the arc
	for _, z := range zones {
		dc.SetHexColor(z.color)
		dc.DrawStringAnchored(z.label, centerX+z.labelDX, centerY-radius-20, 0.5, 0.5)
	}

	// Needle
	angle := halfAngle(needleRatio(a.AvgHoldSeconds))
	needleLen := float64(radius - 40)
	nx := centerX + needleLen*math.Cos(angle)
	ny := centerY + needleLen*math.Sin(angle)
	dc.SetHexColor("#ffffff")
	dc.SetLineWidth(4)
	dc.DrawLine(centerX, centerY, nx, ny)
	dc.Stroke()
	dc.DrawCircle(centerX, centerY, 10)
	dc.Fill()

	// Stats block
	level := jeet.LevelFor(a.AvgHoldSeconds)
	dc.SetHexColor("#ffffff")
	dc.DrawStringAnchored(level.Label(), centerX, centerY+60, 0.5, 0.5)

	dc.SetFontFace(inconsolata.Regular8x16)
	dc.SetHexColor("#cccccc")
	dc.DrawStringAnchored("Avg Hold: "+jeet.FormatHoldTime(a.AvgHoldSeconds), centerX, centerY+100, 0.5, 0.5)
	dc.DrawStringAnchored("Fastest Exit: "+jeet.FormatHoldTime(float64(a.FastestJeet)), centerX, centerY+130, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("Trades: %d", a.TotalTradesAnalyzed), centerX, centerY+160, 0.5, 0.5)

	// Certificate badge for sub-minute averages
	if a.AvgHoldSeconds > 0 && a.AvgHoldSeconds < 60 {
		dc.SetFontFace(inconsolata.Bold8x16)
		dc.SetHexColor("#ff3b3b")
		dc.DrawStringAnchored("OFFICIAL JEET CERTIFICATE", centerX, centerY+200, 0.5, 0.5)
	}

	// Truncated wallet at the bottom
	dc.SetFontFace(inconsolata.Regular8x16)
	dc.SetHexColor("#888888")
	dc.DrawStringAnchored(solana.Abbrev(wallet), centerX, height-20, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encode gauge png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
