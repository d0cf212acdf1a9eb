package auctionusecase

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/whetstoneresearch/doppler-sub006/auction/telemetry"
	"github.com/whetstoneresearch/doppler-sub006/auction/types"
	"github.com/whetstoneresearch/doppler-sub006/domain"
	"github.com/whetstoneresearch/doppler-sub006/domain/levelbitmap"
)

// liquidityView adapts the auction book to the read-only window the liquidity
// curve consumes. Valid only while the auction lock is held.
type liquidityView struct {
	a *AuctionUseCaseImpl
}

var _ domain.LiquidityView = liquidityView{}

// LiquidityAtLevel implements domain.LiquidityView.
func (v liquidityView) LiquidityAtLevel(level int64) osmomath.Int {
	return v.a.liquidityAt(level)
}

// NextActiveLevel implements domain.LiquidityView.
func (v liquidityView) NextActiveLevel(fromLevel int64, lte bool, boundLevel int64) (int64, bool) {
	return v.a.bitmap.NextActive(fromLevel, lte, boundLevel)
}

// MaxActiveLevel implements domain.LiquidityView.
func (v liquidityView) MaxActiveLevel() (int64, bool) {
	return v.a.bitmap.MaxActive()
}

// LevelSpacing implements domain.LiquidityView.
func (v liquidityView) LevelSpacing() int64 {
	return v.a.config.LevelSpacing
}

// liquidityAt returns the liquidity registered at the level, zero when none.
func (a *AuctionUseCaseImpl) liquidityAt(level int64) osmomath.Int {
	if liquidity, ok := a.liquidityByLevel[level]; ok {
		return liquidity
	}
	return osmomath.ZeroInt()
}

// levelInEstimatedRange reports whether the level sits at or above the
// current clearing estimate.
func (a *AuctionUseCaseImpl) levelInEstimatedRange(level int64) bool {
	return a.hasEstimate && level >= a.estimatedClearingLevel
}

// floorToSpacing rounds a level down to the spacing grid.
func (a *AuctionUseCaseImpl) floorToSpacing(level int64) int64 {
	return levelbitmap.Decompress(levelbitmap.Compress(level, a.config.LevelSpacing), a.config.LevelSpacing)
}

// reestimate reprices the clearing estimate with a read-only quote of the
// sellable supply against the current book, floors the quoted level to the
// spacing grid, and reconciles the in-range band.
func (a *AuctionUseCaseImpl) reestimate(ctx context.Context, nowUnix int64) error {
	quotedLevel, err := a.curve.Quote(ctx, liquidityView{a}, a.sellableSupply, a.config.PriceFloorLevel)
	if err != nil {
		return types.CurveQuoteError{Err: err}
	}

	telemetry.ReestimateCounter.Inc()

	a.setEstimate(a.floorToSpacing(quotedLevel), true, nowUnix)
	return nil
}

// reestimateAfterInsert reprices when the inserted level could move where the
// hypothetical sale stops: at or above the current estimate, or whenever no
// estimate exists yet.
func (a *AuctionUseCaseImpl) reestimateAfterInsert(ctx context.Context, level int64, nowUnix int64) error {
	if !a.hasEstimate || level >= a.estimatedClearingLevel {
		return a.reestimate(ctx, nowUnix)
	}
	return nil
}

// reestimateAfterRemove reprices only when the removed level sat inside the
// estimated clearing range. A removal below the estimate cannot change where
// the sale stops, so the estimate stays valid without a recompute.
func (a *AuctionUseCaseImpl) reestimateAfterRemove(ctx context.Context, level int64, nowUnix int64) error {
	if a.levelInEstimatedRange(level) {
		return a.reestimate(ctx, nowUnix)
	}
	return nil
}
