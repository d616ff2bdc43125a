package types

import (
	models "raybot-trade-manager/database/models_pkg"
)

// OpenTradeView is the read-time projection returned when listing open
// trades: the trade row augmented with symbol, direction and confidence
// from the originating signal. The projected fields are not persisted on
// the trade; when the join yields nothing they stay blank rather than
// failing the list.
type OpenTradeView struct {
	models.Trade
	Symbol     string  `json:"symbol"`
	Direction  string  `json:"direction"`
	Confidence float64 `json:"confidence"`
}

// DriftBaseline describes the statistical baseline a future drift/PSI
// analyzer would compare recent signals against. No table backs it today;
// the registry read path always reports it absent.
type DriftBaseline struct {
	Symbol       string             `json:"symbol"`
	CalculatedAt string             `json:"calculated_at"`
	Metrics      map[string]float64 `json:"metrics"`
}
