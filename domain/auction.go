package domain

import (
	"fmt"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// AuctionPhase is the lifecycle phase of an auction. Transitions are
// NotStarted -> Active -> Settled and never reverse.
type AuctionPhase int

const (
	AuctionPhaseNotStarted AuctionPhase = iota
	AuctionPhaseActive
	AuctionPhaseSettled
)

// String implements fmt.Stringer.
func (p AuctionPhase) String() string {
	switch p {
	case AuctionPhaseNotStarted:
		return "not_started"
	case AuctionPhaseActive:
		return "active"
	case AuctionPhaseSettled:
		return "settled"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// BasisPointsDenominator is the denominator for basis-point fractions.
const BasisPointsDenominator = 10000

// Position is one bid: liquidity registered by an owner over a single price
// interval [LowerLevel, UpperLevel). Positions are never deleted; a fully
// removed position keeps its identifier with size zeroed so that claim
// history stays queryable.
type Position struct {
	ID         uint64       `json:"id"`
	Owner      string       `json:"owner"`
	LowerLevel int64        `json:"lower_level"`
	UpperLevel int64        `json:"upper_level"`
	Size       osmomath.Int `json:"size"`

	// RangeSecondsSnapshot is the value of the level's per-unit seconds-in-range
	// accumulator at the time the position was opened.
	RangeSecondsSnapshot int64 `json:"range_seconds_snapshot"`

	// FrozenWeightedTime holds the position's earned weighted time once it is
	// frozen by removal or by a post-settlement size change. Valid only while
	// Frozen is true.
	FrozenWeightedTime osmomath.Int `json:"frozen_weighted_time"`
	Frozen             bool         `json:"frozen"`

	Removed             bool  `json:"removed"`
	HasClaimedIncentive bool  `json:"has_claimed_incentive"`
	CreatedAtUnix       int64 `json:"created_at_unix"`
}

// AuctionState is a snapshot of the auction's aggregate state. ClearingLevel
// and CachedTotalWeightedTime are write-once, set exactly at settlement.
type AuctionState struct {
	Phase AuctionPhase `json:"phase"`

	TotalLiquidity osmomath.Int `json:"total_liquidity"`

	// EstimatedClearingLevel is meaningful only while HasEstimate is true.
	// Before any liquidity exists the estimate sits at the unreachable top of
	// the axis and no level is in range.
	EstimatedClearingLevel int64 `json:"estimated_clearing_level"`
	HasEstimate            bool  `json:"has_estimate"`

	ClearingLevel           int64        `json:"clearing_level"`
	TotalSold               osmomath.Int `json:"total_sold"`
	TotalProceeds           osmomath.Int `json:"total_proceeds"`
	IncentivePoolTotal      osmomath.Int `json:"incentive_pool_total"`
	TotalIncentivesClaimed  osmomath.Int `json:"total_incentives_claimed"`
	CachedTotalWeightedTime osmomath.Int `json:"cached_total_weighted_time"`

	ClaimDeadlineUnix int64 `json:"claim_deadline_unix"`
	SettledAtUnix     int64 `json:"settled_at_unix"`

	IncentivesRecovered bool `json:"incentives_recovered"`
	UnclaimedSwept      bool `json:"unclaimed_swept"`
	Migrated            bool `json:"migrated"`
}

// MarketConfig is the immutable configuration of one auction, supplied at
// construction.
type MarketConfig struct {
	// Token is the denom being auctioned off.
	Token string `json:"token"`
	// NumeraireToken is the denom bids are priced in.
	NumeraireToken string `json:"numeraire_token"`

	LevelSpacing    int64 `json:"level_spacing"`
	PriceFloorLevel int64 `json:"price_floor_level"`

	AuctionStartUnix int64         `json:"auction_start_unix"`
	AuctionDuration  time.Duration `json:"auction_duration"`
	ClaimWindow      time.Duration `json:"claim_window"`

	// IncentiveShareBps is the fraction of the total supply reserved as the
	// incentive pool, in basis points.
	IncentiveShareBps int64 `json:"incentive_share_bps"`

	MinimumEligibleSize osmomath.Int `json:"minimum_eligible_size"`
	TotalAuctionSupply  osmomath.Int `json:"total_auction_supply"`

	// Admin may recover, sweep and migrate. Settlement needs no permission.
	Admin string `json:"admin"`
}

// Validate rejects configuration that would make the auction unconstructible.
func (c MarketConfig) Validate() error {
	if c.Token == "" {
		return MarketConfigError{Field: "token", Reason: "must not be empty"}
	}
	if c.NumeraireToken == "" {
		return MarketConfigError{Field: "numeraire_token", Reason: "must not be empty"}
	}
	if c.LevelSpacing <= 0 {
		return MarketConfigError{Field: "level_spacing", Reason: fmt.Sprintf("must be positive, got (%d)", c.LevelSpacing)}
	}
	if c.PriceFloorLevel%c.LevelSpacing != 0 {
		return MarketConfigError{Field: "price_floor_level", Reason: fmt.Sprintf("(%d) is not a multiple of level spacing (%d)", c.PriceFloorLevel, c.LevelSpacing)}
	}
	if c.AuctionStartUnix <= 0 {
		return MarketConfigError{Field: "auction_start_unix", Reason: "must be positive"}
	}
	if c.AuctionDuration <= 0 {
		return MarketConfigError{Field: "auction_duration", Reason: "must be positive"}
	}
	if c.ClaimWindow <= 0 {
		return MarketConfigError{Field: "claim_window", Reason: "must be positive"}
	}
	if c.IncentiveShareBps < 0 || c.IncentiveShareBps > BasisPointsDenominator {
		return MarketConfigError{Field: "incentive_share_bps", Reason: fmt.Sprintf("must be within [0, %d], got (%d)", BasisPointsDenominator, c.IncentiveShareBps)}
	}
	if c.MinimumEligibleSize.IsNil() || c.MinimumEligibleSize.IsNegative() {
		return MarketConfigError{Field: "minimum_eligible_size", Reason: "must be non-negative"}
	}
	if c.TotalAuctionSupply.IsNil() || !c.TotalAuctionSupply.IsPositive() {
		return MarketConfigError{Field: "total_auction_supply", Reason: "must be positive"}
	}
	if c.Admin == "" {
		return MarketConfigError{Field: "admin", Reason: "must not be empty"}
	}
	return nil
}

// IncentivePoolTotal returns the slice of the total supply reserved for
// incentives.
func (c MarketConfig) IncentivePoolTotal() osmomath.Int {
	return c.TotalAuctionSupply.Mul(osmomath.NewInt(c.IncentiveShareBps)).Quo(osmomath.NewInt(BasisPointsDenominator))
}

// SellableSupply returns the supply sold against the curve at settlement.
func (c MarketConfig) SellableSupply() osmomath.Int {
	return c.TotalAuctionSupply.Sub(c.IncentivePoolTotal())
}

// AuctionEndUnix returns the unix time at which the bidding window closes and
// accrual is capped.
func (c MarketConfig) AuctionEndUnix() int64 {
	return c.AuctionStartUnix + int64(c.AuctionDuration/time.Second)
}

// MarketConfigError is a configuration rejection. Configuration errors are
// fatal at construction.
type MarketConfigError struct {
	Field  string
	Reason string
}

func (e MarketConfigError) Error() string {
	return fmt.Sprintf("invalid market config field %s: %s", e.Field, e.Reason)
}
