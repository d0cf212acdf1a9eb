package types

import (
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/whetstoneresearch/doppler-sub006/domain"
)

// PlaceBidResponse is the response of the POST /auction/bids endpoint.
type PlaceBidResponse struct {
	PositionID uint64 `json:"position_id"`
}

// PositionResponse is a position together with its current range status.
type PositionResponse struct {
	domain.Position
	InRange bool `json:"in_range"`
}

// OwnerPositionsResponse aggregates the positions ever opened by one owner.
type OwnerPositionsResponse struct {
	Owner          string            `json:"owner"`
	TotalLiquidity osmomath.Int      `json:"total_liquidity"`
	Positions      []domain.Position `json:"positions"`
}

// PositionIncentivesResponse is the incentive payout of a single position.
type PositionIncentivesResponse struct {
	PositionID uint64       `json:"position_id"`
	Amount     osmomath.Int `json:"amount"`
	Claimed    bool         `json:"claimed"`
}

// LevelLiquidity is the liquidity registered at one price level.
type LevelLiquidity struct {
	Level     int64        `json:"level"`
	Liquidity osmomath.Int `json:"liquidity"`
}

// LevelsResponse is the per-level view of the book.
type LevelsResponse struct {
	ActiveLevelCount int              `json:"active_level_count"`
	LowerBound       int64            `json:"lower_bound"`
	UpperBound       int64            `json:"upper_bound"`
	HasActive        bool             `json:"has_active"`
	Levels           []LevelLiquidity `json:"levels"`
}

// ClearingResponse reports the clearing estimate and, once settled, the final
// clearing level.
type ClearingResponse struct {
	EstimatedClearingLevel int64 `json:"estimated_clearing_level"`
	HasEstimate            bool  `json:"has_estimate"`
	ClearingLevel          int64 `json:"clearing_level"`
	Settled                bool  `json:"settled"`
}
