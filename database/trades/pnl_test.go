package trades

import (
	"math"
	"testing"

	"raybot-trade-manager/database"
)

func TestPnL(t *testing.T) {
	tests := []struct {
		name        string
		direction   string
		entry       float64
		exit        float64
		expectedUSD float64
		expectedPct float64
	}{
		{
			name:        "Long winner",
			direction:   database.DirectionLong,
			entry:       50050,
			exit:        51050,
			expectedUSD: 1000,
			expectedPct: 1000.0 / 50050.0, // 0.01998... (20/1001)
		},
		{
			name:        "Long loser",
			direction:   database.DirectionLong,
			entry:       100,
			exit:        90,
			expectedUSD: -10,
			expectedPct: -0.10,
		},
		{
			name:        "Short winner",
			direction:   database.DirectionShort,
			entry:       100,
			exit:        90,
			expectedUSD: 10,
			expectedPct: 0.10,
		},
		{
			name:        "Short loser",
			direction:   database.DirectionShort,
			entry:       100,
			exit:        110,
			expectedUSD: -10,
			expectedPct: -0.10,
		},
		{
			name:        "Flat close",
			direction:   database.DirectionLong,
			entry:       250,
			exit:        250,
			expectedUSD: 0,
			expectedPct: 0,
		},
		{
			name:        "Unknown direction treated as long",
			direction:   "",
			entry:       100,
			exit:        105,
			expectedUSD: 5,
			expectedPct: 0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usd, pct := PnL(tt.direction, tt.entry, tt.exit)
			if math.Abs(usd-tt.expectedUSD) > 1e-9 {
				t.Errorf("pnl_usd: expected %v, got %v", tt.expectedUSD, usd)
			}
			if math.Abs(pct-tt.expectedPct) > 1e-12 {
				t.Errorf("pnl_pct: expected %v, got %v", tt.expectedPct, pct)
			}
		})
	}
}

// Sign of pnl_usd must be positive exactly when price moved in the
// trade's favor, for both directions.
func TestPnLSign(t *testing.T) {
	cases := []struct {
		direction string
		entry     float64
		exit      float64
		favorable bool
	}{
		{database.DirectionLong, 100, 120, true},
		{database.DirectionLong, 100, 80, false},
		{database.DirectionShort, 100, 80, true},
		{database.DirectionShort, 100, 120, false},
	}

	for _, c := range cases {
		usd, pct := PnL(c.direction, c.entry, c.exit)
		if c.favorable && (usd <= 0 || pct <= 0) {
			t.Errorf("%s %v->%v: expected positive pnl, got usd=%v pct=%v", c.direction, c.entry, c.exit, usd, pct)
		}
		if !c.favorable && (usd >= 0 || pct >= 0) {
			t.Errorf("%s %v->%v: expected negative pnl, got usd=%v pct=%v", c.direction, c.entry, c.exit, usd, pct)
		}
	}
}
