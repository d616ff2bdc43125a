package trades

import "raybot-trade-manager/database"

// PnL computes realized profit/loss for a closed position. The sign
// convention: pnl_usd is positive when price moved in the trade's favor,
// pnl_pct is the fractional return on entry (not percentage-scaled).
// Any direction other than SHORT is treated as LONG, which covers the
// fallback used when the originating signal's direction cannot be joined.
func PnL(direction string, entryPrice, exitPrice float64) (pnlUSD, pnlPct float64) {
	if direction == database.DirectionShort {
		pnlUSD = entryPrice - exitPrice
	} else {
		pnlUSD = exitPrice - entryPrice
	}
	pnlPct = pnlUSD / entryPrice
	return pnlUSD, pnlPct
}
