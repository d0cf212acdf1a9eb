package mvc

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/whetstoneresearch/doppler-sub006/domain"
)

// AuctionUsecase drives one batch auction through its lifecycle and exposes
// its read views. Every mutating operation is atomic: it either applies in
// full or leaves no trace.
type AuctionUsecase interface {
	// PlaceBid registers liquidity for owner over the interval starting at
	// lowerLevel and returns the new position's identifier.
	PlaceBid(ctx context.Context, owner string, lowerLevel int64, size osmomath.Int) (uint64, error)

	// RemoveBid removes the position's entire remaining size. During the
	// Active phase removal is rejected while the position is in range.
	RemoveBid(ctx context.Context, owner string, positionID uint64) error

	// ReduceBid removes part of the position's size. Partial removal is only
	// allowed once the auction has settled.
	ReduceBid(ctx context.Context, owner string, positionID uint64, size osmomath.Int) error

	// SettleAuction performs the one real execution against the curve, fixes
	// the clearing level and total weighted time, and opens the claim window.
	// Callable by anyone once the auction window has closed.
	SettleAuction(ctx context.Context) error

	// ClaimIncentives pays out the position's incentive share to its owner.
	ClaimIncentives(ctx context.Context, caller string, positionID uint64) error

	// CalculateIncentives returns the position's incentive payout. Zero before
	// settlement and for unknown positions.
	CalculateIncentives(positionID uint64) osmomath.Int

	// CalculateAllIncentives returns the payout for every position ever
	// opened, keyed by position identifier.
	CalculateAllIncentives(ctx context.Context) (map[uint64]osmomath.Int, error)

	// RecoverIncentives returns the whole incentive pool to recipient. Only
	// permitted when no weighted time was ever recorded, and only once.
	RecoverIncentives(ctx context.Context, caller, recipient string) error

	// SweepUnclaimedIncentives transfers whatever incentives remain after the
	// claim deadline to recipient. Only once.
	SweepUnclaimedIncentives(ctx context.Context, caller, recipient string) error

	// Migrate transfers the sale proceeds and unsold supply to recipient.
	Migrate(ctx context.Context, caller, recipient string) error

	// GetAuctionState returns a snapshot of the aggregate auction state.
	GetAuctionState() domain.AuctionState

	// GetMarketConfig returns the immutable market configuration.
	GetMarketConfig() domain.MarketConfig

	// GetPosition returns the position with the given identifier.
	GetPosition(positionID uint64) (domain.Position, error)

	// GetPositionsByOwner returns all positions ever opened by owner.
	GetPositionsByOwner(owner string) []domain.Position

	// GetOwnerLiquidity returns the owner's aggregate registered liquidity.
	GetOwnerLiquidity(owner string) osmomath.Int

	// IsInRange reports whether the position's interval currently participates
	// in the clearing range. After settlement this means the settlement
	// execution touched the interval.
	IsInRange(positionID uint64) (bool, error)

	// EstimatedClearingLevel returns the current clearing estimate. The
	// boolean is false while no liquidity exists.
	EstimatedClearingLevel() (int64, bool)

	// ClearingLevel returns the final clearing level. The boolean is false
	// until settlement.
	ClearingLevel() (int64, bool)

	// ActiveLevelCount returns the number of active price levels.
	ActiveLevelCount() int

	// ActiveLevelBounds returns the lowest and highest active levels. The
	// boolean is false while no level is active.
	ActiveLevelBounds() (int64, int64, bool)

	// LiquidityAtLevel returns the liquidity registered at the level.
	LiquidityAtLevel(level int64) osmomath.Int
}
