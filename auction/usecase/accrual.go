package auctionusecase

import (
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/whetstoneresearch/doppler-sub006/domain"
)

// levelTimeState tracks time-in-range accrual for one price level.
//
// rangeSeconds is a per-unit-of-liquidity accumulator: it advances by the
// elapsed wall seconds whenever the level is in range, regardless of how much
// liquidity sits there. A position's earned weighted time is the accumulator
// growth since its opening snapshot multiplied by its size, so liquidity
// joining or leaving the level mid-flight never redistributes time that was
// already earned.
//
// weightedTime is the level-total counterpart, advancing by elapsed seconds
// times the liquidity present. Summed over all levels it yields the
// auction-wide total weighted time fixed at settlement.
type levelTimeState struct {
	lastUpdateUnix int64
	rangeSeconds   int64
	weightedTime   osmomath.Int
	inRange        bool
}

// capTime clamps a unix timestamp to the end of the auction window. Accrual
// never extends past the window even when updates arrive late.
func (a *AuctionUseCaseImpl) capTime(nowUnix int64) int64 {
	if nowUnix > a.auctionEndUnix {
		return a.auctionEndUnix
	}
	return nowUnix
}

// touchLevel returns the accrual state for the level, creating it at the
// current capped time if the level has never been seen.
func (a *AuctionUseCaseImpl) touchLevel(level int64, nowUnix int64) *levelTimeState {
	state, ok := a.levelTimeStates[level]
	if !ok {
		state = &levelTimeState{
			lastUpdateUnix: a.capTime(nowUnix),
			weightedTime:   osmomath.ZeroInt(),
		}
		a.levelTimeStates[level] = state
	}
	return state
}

// flushLevel brings the level's accumulators current. Elapsed time is credited
// under the in-range flag that held while it passed, so flushing must always
// precede a flag flip or a liquidity change at the level.
func (a *AuctionUseCaseImpl) flushLevel(level int64, nowUnix int64) {
	state, ok := a.levelTimeStates[level]
	if !ok {
		return
	}

	effectiveUnix := a.capTime(nowUnix)
	if effectiveUnix <= state.lastUpdateUnix {
		return
	}

	elapsed := effectiveUnix - state.lastUpdateUnix
	if state.inRange {
		state.rangeSeconds += elapsed

		liquidity := a.liquidityAt(level)
		if !liquidity.IsZero() {
			state.weightedTime = state.weightedTime.Add(liquidity.MulRaw(elapsed))
		}
	}
	state.lastUpdateUnix = effectiveUnix
}

// flushAllLevels brings every tracked level current. Called once at
// settlement so the total weighted time can be read off the level states.
func (a *AuctionUseCaseImpl) flushAllLevels(nowUnix int64) {
	for level := range a.levelTimeStates {
		a.flushLevel(level, nowUnix)
	}
}

// enterRange flips the level into range after flushing out-of-range time.
func (a *AuctionUseCaseImpl) enterRange(level int64, nowUnix int64) {
	state := a.touchLevel(level, nowUnix)
	if state.inRange {
		return
	}

	a.flushLevel(level, nowUnix)
	state.inRange = true
}

// exitRange flips the level out of range after flushing in-range time.
func (a *AuctionUseCaseImpl) exitRange(level int64, nowUnix int64) {
	state, ok := a.levelTimeStates[level]
	if !ok || !state.inRange {
		return
	}

	a.flushLevel(level, nowUnix)
	state.inRange = false
}

// setEstimate records a new clearing estimate and reconciles the in-range
// flag of every active level whose side of the estimate changed. Only the
// band between the old and new estimate needs visiting; levels outside it
// keep their flag.
func (a *AuctionUseCaseImpl) setEstimate(newLevel int64, newHasEstimate bool, nowUnix int64) {
	oldLevel := a.estimatedClearingLevel
	oldHasEstimate := a.hasEstimate

	a.estimatedClearingLevel = newLevel
	a.hasEstimate = newHasEstimate

	if !oldHasEstimate && !newHasEstimate {
		return
	}

	maxActive, hasActive := a.bitmap.MaxActive()
	if !hasActive {
		return
	}

	spacing := a.config.LevelSpacing

	switch {
	case !oldHasEstimate:
		a.forEachActiveLevelIn(newLevel, maxActive, func(level int64) {
			a.enterRange(level, nowUnix)
		})
	case !newHasEstimate:
		a.forEachActiveLevelIn(oldLevel, maxActive, func(level int64) {
			a.exitRange(level, nowUnix)
		})
	case newLevel < oldLevel:
		a.forEachActiveLevelIn(newLevel, oldLevel-spacing, func(level int64) {
			a.enterRange(level, nowUnix)
		})
	case newLevel > oldLevel:
		a.forEachActiveLevelIn(oldLevel, newLevel-spacing, func(level int64) {
			a.exitRange(level, nowUnix)
		})
	}
}

// syncLevelRange reconciles a single active level's in-range flag against the
// current estimate. Needed after an insert that leaves the estimate where it
// was, since setEstimate only walks the band between two estimates.
func (a *AuctionUseCaseImpl) syncLevelRange(level int64, nowUnix int64) {
	if !a.bitmap.IsActive(level) {
		return
	}

	if a.levelInEstimatedRange(level) {
		a.enterRange(level, nowUnix)
	} else {
		a.exitRange(level, nowUnix)
	}
}

// forEachActiveLevelIn visits every active level in [lowLevel, highLevel]
// from highest to lowest. Does nothing when the band is empty or inverted.
func (a *AuctionUseCaseImpl) forEachActiveLevelIn(lowLevel, highLevel int64, visit func(level int64)) {
	level, ok := a.bitmap.NextActive(highLevel, true, lowLevel)
	for ok {
		visit(level)

		if level == lowLevel {
			return
		}
		level, ok = a.bitmap.NextActive(level-a.config.LevelSpacing, true, lowLevel)
	}
}

// earnedWeightedTime returns the weighted time the position has accumulated.
// A frozen position reports the value fixed at its freeze point; a live one
// is measured against its level's current per-unit accumulator, so the level
// must be flushed first when an up-to-date reading matters.
func (a *AuctionUseCaseImpl) earnedWeightedTime(position domain.Position) osmomath.Int {
	if position.Frozen {
		return position.FrozenWeightedTime
	}

	state, ok := a.levelTimeStates[position.LowerLevel]
	if !ok {
		return osmomath.ZeroInt()
	}

	elapsed := state.rangeSeconds - position.RangeSecondsSnapshot
	if elapsed <= 0 {
		return osmomath.ZeroInt()
	}

	return position.Size.MulRaw(elapsed)
}
