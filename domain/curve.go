package domain

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// LiquidityView is a read-only window over the liquidity currently registered
// on the price axis. The engine hands its own state to the curve through this
// interface; the curve must not retain the view past the call.
type LiquidityView interface {
	// LiquidityAtLevel returns the liquidity registered at the level, zero for
	// inactive levels.
	LiquidityAtLevel(level int64) osmomath.Int

	// NextActiveLevel returns the nearest active level at or below fromLevel
	// when lte is true, or strictly above it otherwise, never crossing
	// boundLevel.
	NextActiveLevel(fromLevel int64, lte bool, boundLevel int64) (int64, bool)

	// MaxActiveLevel returns the best-priced active level.
	MaxActiveLevel() (int64, bool)

	// LevelSpacing returns the granularity of the price axis.
	LevelSpacing() int64
}

// ExecutionResult reports a completed sale against the curve.
type ExecutionResult struct {
	// FinalLevel is the level at which the sale stopped.
	FinalLevel int64

	// AmountSold is how much of the sell amount the registered liquidity
	// absorbed. Less than the sell amount when the book runs out above the
	// floor.
	AmountSold osmomath.Int

	// Proceeds is the numeraire value received for AmountSold.
	Proceeds osmomath.Int

	// TouchedLevels lists every level the sale consumed liquidity from, best
	// to worst. The final resting level is included iff it was consumed from.
	TouchedLevels []int64
}

// LiquidityCurve prices and executes the batch sale. Quote is a read-only
// simulation used for incremental clearing estimation; Execute is
// state-changing on the curve side and is invoked exactly once, at
// settlement.
type LiquidityCurve interface {
	// Quote returns the level at which a sale of sellAmount against the
	// current liquidity would stop, never below floorLevel.
	Quote(ctx context.Context, view LiquidityView, sellAmount osmomath.Int, floorLevel int64) (int64, error)

	// Execute performs the sale and reports the outcome.
	Execute(ctx context.Context, view LiquidityView, sellAmount osmomath.Int, floorLevel int64) (ExecutionResult, error)
}

// TransferExecutor moves value on behalf of the auction. The engine commits
// its own state before calling out and propagates any failure unmodified.
type TransferExecutor interface {
	Transfer(ctx context.Context, token, to string, amount osmomath.Int) error
}
