package auctionusecase

import (
	"context"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/whetstoneresearch/doppler-sub006/domain"
	"github.com/whetstoneresearch/doppler-sub006/domain/slices"
	"github.com/whetstoneresearch/doppler-sub006/domain/workerpool"
)

const (
	// allIncentivesCacheKey keys the bulk payout view in the incentives cache.
	allIncentivesCacheKey = "auction/incentives/all"

	// incentiveComputeWorkers is the number of workers computing payout chunks.
	incentiveComputeWorkers = 8

	// incentiveComputeChunkSize is the number of positions per worker job.
	incentiveComputeChunkSize = 512
)

// calculateIncentivesLocked returns the position's incentive payout. The
// payout is the position's share of the incentive pool proportional to its
// earned weighted time, truncated; truncation dust stays in the pool. The
// caller must hold the lock.
func (a *AuctionUseCaseImpl) calculateIncentivesLocked(position domain.Position) osmomath.Int {
	if !a.settled {
		return osmomath.ZeroInt()
	}
	if a.cachedTotalWeightedTime.IsZero() {
		return osmomath.ZeroInt()
	}

	earned := a.earnedWeightedTime(position)
	if !earned.IsPositive() {
		return osmomath.ZeroInt()
	}

	return earned.Mul(a.incentivePoolTotal).Quo(a.cachedTotalWeightedTime)
}

// CalculateIncentives implements mvc.AuctionUsecase.
func (a *AuctionUseCaseImpl) CalculateIncentives(positionID uint64) osmomath.Int {
	a.lock.RLock()
	defer a.lock.RUnlock()

	position, ok := a.positionRepository.Get(positionID)
	if !ok {
		return osmomath.ZeroInt()
	}

	return a.calculateIncentivesLocked(position)
}

// CalculateAllIncentives implements mvc.AuctionUsecase.
//
// Post-settlement payouts are pure functions of state frozen at settlement,
// so the computed view is cached and chunks of positions are fanned out
// across a worker pool. Before settlement every payout is zero and nothing
// is cached. Every dispatched chunk is drained before returning; worker
// tasks read state guarded by the lock held here.
func (a *AuctionUseCaseImpl) CalculateAllIncentives(ctx context.Context) (map[uint64]osmomath.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestURLPath, err := domain.GetURLPathFromContext(ctx)
	if err != nil {
		return nil, err
	}

	a.lock.RLock()
	defer a.lock.RUnlock()

	positionCount := a.positionRepository.Count()
	payouts := make(map[uint64]osmomath.Int, positionCount)

	if !a.settled {
		for positionID := uint64(1); positionID <= uint64(positionCount); positionID++ {
			payouts[positionID] = osmomath.ZeroInt()
		}
		return payouts, nil
	}

	if cached, ok := a.incentivesCache.Get(allIncentivesCacheKey); ok {
		if cachedPayouts, ok := cached.(map[uint64]osmomath.Int); ok {
			domain.DopplerIncentivesCacheHitsCounter.WithLabelValues(requestURLPath).Inc()

			for positionID, payout := range cachedPayouts {
				payouts[positionID] = payout
			}
			return payouts, nil
		}
	}
	domain.DopplerIncentivesCacheMissesCounter.WithLabelValues(requestURLPath).Inc()

	if positionCount == 0 {
		return payouts, nil
	}

	startTime := time.Now()

	positionIDs := make([]uint64, 0, positionCount)
	for positionID := uint64(1); positionID <= uint64(positionCount); positionID++ {
		positionIDs = append(positionIDs, positionID)
	}
	chunks := slices.Split(positionIDs, incentiveComputeChunkSize)

	dispatcher := workerpool.NewDispatcher[map[uint64]osmomath.Int](incentiveComputeWorkers)
	go dispatcher.Run()
	defer dispatcher.Stop()

	go func() {
		for _, chunk := range chunks {
			chunk := chunk
			dispatcher.JobQueue <- workerpool.Job[map[uint64]osmomath.Int]{
				Task: func() (map[uint64]osmomath.Int, error) {
					return a.computePayoutChunk(chunk), nil
				},
			}
		}
	}()

	for range chunks {
		result := <-dispatcher.ResultQueue
		if result.Err != nil {
			domain.DopplerIncentiveWorkerComputeErrorCounter.Inc()
			a.logger.Error(domain.DopplerIncentiveWorkerComputeErrorMetricName, zap.Any("err", result.Err))
			continue
		}

		for positionID, payout := range result.Result {
			payouts[positionID] = payout
		}
	}

	domain.DopplerIncentiveWorkerComputeDurationGauge.Set(float64(time.Since(startTime).Milliseconds()))

	cachedPayouts := make(map[uint64]osmomath.Int, len(payouts))
	for positionID, payout := range payouts {
		cachedPayouts[positionID] = payout
	}
	a.incentivesCache.Set(allIncentivesCacheKey, cachedPayouts)

	return payouts, nil
}

// computePayoutChunk computes payouts for one chunk of position identifiers.
// Runs on worker goroutines while the caller holds the read lock, so the
// auction state it reads cannot change underneath it.
func (a *AuctionUseCaseImpl) computePayoutChunk(positionIDs []uint64) map[uint64]osmomath.Int {
	chunkPayouts := make(map[uint64]osmomath.Int, len(positionIDs))
	for _, positionID := range positionIDs {
		position, ok := a.positionRepository.Get(positionID)
		if !ok {
			continue
		}
		chunkPayouts[positionID] = a.calculateIncentivesLocked(position)
	}
	return chunkPayouts
}
