package curveusecase

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/whetstoneresearch/doppler-sub006/curve/types"
	"github.com/whetstoneresearch/doppler-sub006/domain"
)

// geometricLevelBase is the price ratio between two adjacent unit levels, so
// one unit of level is one basis point of price.
var geometricLevelBase = osmomath.MustNewDecFromStr("1.0001")

// LevelCurveImpl prices the discretized axis geometrically: level L prices
// the auctioned token at 1.0001^L in numeraire. A sale walks the book from
// the best active level downward, consuming registered liquidity level by
// level until the sell amount is exhausted or the book runs out above the
// price floor.
type LevelCurveImpl struct {
	executed bool
}

var _ domain.LiquidityCurve = &LevelCurveImpl{}

// New creates a new level curve.
func New() *LevelCurveImpl {
	return &LevelCurveImpl{}
}

// LevelPrice returns the numeraire price of the auctioned token at the level.
func LevelPrice(level int64) osmomath.Dec {
	if level >= 0 {
		return geometricLevelBase.Power(uint64(level))
	}
	return osmomath.OneDec().Quo(geometricLevelBase.Power(uint64(-level)))
}

// Quote implements domain.LiquidityCurve.
func (c *LevelCurveImpl) Quote(ctx context.Context, view domain.LiquidityView, sellAmount osmomath.Int, floorLevel int64) (int64, error) {
	result, err := walkBook(view, sellAmount, floorLevel)
	if err != nil {
		return 0, err
	}
	return result.FinalLevel, nil
}

// Execute implements domain.LiquidityCurve.
func (c *LevelCurveImpl) Execute(ctx context.Context, view domain.LiquidityView, sellAmount osmomath.Int, floorLevel int64) (domain.ExecutionResult, error) {
	if c.executed {
		return domain.ExecutionResult{}, types.AlreadyExecutedError{}
	}

	result, err := walkBook(view, sellAmount, floorLevel)
	if err != nil {
		return domain.ExecutionResult{}, err
	}

	c.executed = true
	return result, nil
}

// walkBook runs the sale against the book. The walk starts at the best
// active level and descends through active levels only, so the sparse book
// costs no more than its populated levels. When the book cannot absorb the
// whole amount above the floor, the sale falls through and stops at the
// floor with the remainder unsold.
func walkBook(view domain.LiquidityView, sellAmount osmomath.Int, floorLevel int64) (domain.ExecutionResult, error) {
	if sellAmount.IsNil() || sellAmount.IsNegative() {
		return domain.ExecutionResult{}, types.InvalidSellAmountError{Amount: sellAmount}
	}

	result := domain.ExecutionResult{
		FinalLevel: floorLevel,
		AmountSold: osmomath.ZeroInt(),
		Proceeds:   osmomath.ZeroInt(),
	}

	level, ok := view.MaxActiveLevel()
	if !ok || level < floorLevel {
		return result, nil
	}

	// A sale of zero stops at the best level without consuming anything.
	result.FinalLevel = level

	remaining := sellAmount
	proceeds := osmomath.ZeroDec()

	for remaining.IsPositive() {
		liquidity := view.LiquidityAtLevel(level)

		fill := liquidity
		if remaining.LT(fill) {
			fill = remaining
		}

		if fill.IsPositive() {
			proceeds = proceeds.Add(fill.ToLegacyDec().Mul(LevelPrice(level)))
			remaining = remaining.Sub(fill)
			result.AmountSold = result.AmountSold.Add(fill)
			result.TouchedLevels = append(result.TouchedLevels, level)
		}

		result.FinalLevel = level

		if remaining.IsZero() {
			break
		}

		nextLevel, found := view.NextActiveLevel(level-view.LevelSpacing(), true, floorLevel)
		if !found {
			result.FinalLevel = floorLevel
			break
		}
		level = nextLevel
	}

	result.Proceeds = proceeds.TruncateInt()
	return result, nil
}
