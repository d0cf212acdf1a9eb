package auctionusecase_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	auctionrepo "github.com/whetstoneresearch/doppler-sub006/auction/repository"
	"github.com/whetstoneresearch/doppler-sub006/auction/types"
	auctionusecase "github.com/whetstoneresearch/doppler-sub006/auction/usecase"
	curveusecase "github.com/whetstoneresearch/doppler-sub006/curve/usecase"
	"github.com/whetstoneresearch/doppler-sub006/domain"
	"github.com/whetstoneresearch/doppler-sub006/domain/cache"
	"github.com/whetstoneresearch/doppler-sub006/domain/mocks"
	"github.com/whetstoneresearch/doppler-sub006/log"
)

const (
	ownerAlice      = "alice"
	ownerBob        = "bob"
	ownerCarol      = "carol"
	adminAccount    = "admin"
	treasuryAccount = "treasury"

	auctionStartUnix = int64(1_700_000_000)
	auctionDuration  = 7 * 24 * time.Hour
	claimWindow      = 3 * 24 * time.Hour

	auctionEndUnix     = auctionStartUnix + int64(auctionDuration/time.Second)
	claimWindowSeconds = int64(claimWindow / time.Second)

	daySeconds = int64(86_400)

	totalSupplyUnits = int64(1_000_000)
	// With 1000 bps reserved, the pool is 100_000 and the sellable supply
	// 900_000.
	poolUnits     = int64(100_000)
	sellableUnits = int64(900_000)
)

// defaultConfig is the market every test runs against unless it builds its
// own: spacing 10, floor -100, a week-long window and a three-day claim
// window.
func defaultConfig() domain.MarketConfig {
	return domain.MarketConfig{
		Token:               "dpl",
		NumeraireToken:      "usdc",
		LevelSpacing:        10,
		PriceFloorLevel:     -100,
		AuctionStartUnix:    auctionStartUnix,
		AuctionDuration:     auctionDuration,
		ClaimWindow:         claimWindow,
		IncentiveShareBps:   1000,
		MinimumEligibleSize: osmomath.NewInt(100),
		TotalAuctionSupply:  osmomath.NewInt(totalSupplyUnits),
		Admin:               adminAccount,
	}
}

// transferCall records one call against the transfer executor.
type transferCall struct {
	token  string
	to     string
	amount osmomath.Int
}

type AuctionUseCaseTestSuite struct {
	suite.Suite

	// repository is the position store behind the auction built by the most
	// recent newAuction call.
	repository auctionrepo.PositionRepository
}

func TestAuctionUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(AuctionUseCaseTestSuite))
}

// newAuction builds an auction over the default config with the test clock
// positioned exactly at the auction start.
func (s *AuctionUseCaseTestSuite) newAuction(curve domain.LiquidityCurve, transfer domain.TransferExecutor) (*auctionusecase.AuctionUseCaseImpl, *clock.TestClock) {
	testClock := clock.NewTestClock(time.Unix(auctionStartUnix, 0))
	s.repository = auctionrepo.New()

	usecase, err := auctionusecase.New(
		defaultConfig(),
		curve,
		transfer,
		s.repository,
		cache.NewIncentivesCache(),
		testClock,
		&log.NoOpLogger{},
	)
	s.Require().NoError(err)

	return usecase, testClock
}

// recordingTransfer returns a transfer mock appending every call to calls.
func recordingTransfer(calls *[]transferCall) *mocks.TransferExecutorMock {
	return &mocks.TransferExecutorMock{
		TransferCb: func(ctx context.Context, token, to string, amount osmomath.Int) error {
			*calls = append(*calls, transferCall{token: token, to: to, amount: amount})
			return nil
		},
	}
}

// setOffset moves the test clock to the given offset from the auction start.
func setOffset(testClock *clock.TestClock, offsetSeconds int64) {
	testClock.SetTime(time.Unix(auctionStartUnix+offsetSeconds, 0))
}

// requireIntEqual asserts numeric equality so that differently constructed
// big integers with the same value always compare equal.
func (s *AuctionUseCaseTestSuite) requireIntEqual(expected int64, actual osmomath.Int) {
	s.Require().True(actual.Equal(osmomath.NewInt(expected)), "expected %d, got %s", expected, actual)
}

func (s *AuctionUseCaseTestSuite) TestNew_RejectsInvalidConfig() {
	tests := []struct {
		name          string
		mutate        func(config *domain.MarketConfig)
		expectedField string
	}{
		{
			name:          "empty token",
			mutate:        func(config *domain.MarketConfig) { config.Token = "" },
			expectedField: "token",
		},
		{
			name:          "zero spacing",
			mutate:        func(config *domain.MarketConfig) { config.LevelSpacing = 0 },
			expectedField: "level_spacing",
		},
		{
			name:          "floor off the grid",
			mutate:        func(config *domain.MarketConfig) { config.PriceFloorLevel = -105 },
			expectedField: "price_floor_level",
		},
		{
			name:          "nil supply",
			mutate:        func(config *domain.MarketConfig) { config.TotalAuctionSupply = osmomath.Int{} },
			expectedField: "total_auction_supply",
		},
		{
			name:          "share above denominator",
			mutate:        func(config *domain.MarketConfig) { config.IncentiveShareBps = 10_001 },
			expectedField: "incentive_share_bps",
		},
		{
			name:          "no admin",
			mutate:        func(config *domain.MarketConfig) { config.Admin = "" },
			expectedField: "admin",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			config := defaultConfig()
			tc.mutate(&config)

			_, err := auctionusecase.New(
				config,
				&mocks.LiquidityCurveMock{},
				&mocks.TransferExecutorMock{},
				auctionrepo.New(),
				cache.NewIncentivesCache(),
				clock.NewTestClock(time.Unix(auctionStartUnix, 0)),
				&log.NoOpLogger{},
			)

			var configErr domain.MarketConfigError
			s.Require().ErrorAs(err, &configErr)
			s.Require().Equal(tc.expectedField, configErr.Field)
		})
	}
}

func (s *AuctionUseCaseTestSuite) TestPlaceBid_Validation() {
	ctx := context.Background()

	s.Run("empty owner", func() {
		usecase, _ := s.newAuction(&mocks.LiquidityCurveMock{}, &mocks.TransferExecutorMock{})

		_, err := usecase.PlaceBid(ctx, "", 0, osmomath.NewInt(1000))
		s.Require().ErrorIs(err, domain.ErrBadParamInput)
	})

	s.Run("nil size", func() {
		usecase, _ := s.newAuction(&mocks.LiquidityCurveMock{}, &mocks.TransferExecutorMock{})

		_, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.Int{})

		var sizeErr types.InvalidSizeError
		s.Require().ErrorAs(err, &sizeErr)
	})

	s.Run("non-positive size", func() {
		usecase, _ := s.newAuction(&mocks.LiquidityCurveMock{}, &mocks.TransferExecutorMock{})

		var sizeErr types.InvalidSizeError

		_, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.ZeroInt())
		s.Require().ErrorAs(err, &sizeErr)

		_, err = usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(-5))
		s.Require().ErrorAs(err, &sizeErr)
	})

	s.Run("below minimum eligible size", func() {
		usecase, _ := s.newAuction(&mocks.LiquidityCurveMock{}, &mocks.TransferExecutorMock{})

		_, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(50))

		var tooSmallErr types.BidTooSmallError
		s.Require().ErrorAs(err, &tooSmallErr)
		s.Require().True(tooSmallErr.MinimumSize.Equal(osmomath.NewInt(100)))
	})

	s.Run("level off the grid", func() {
		usecase, _ := s.newAuction(&mocks.LiquidityCurveMock{}, &mocks.TransferExecutorMock{})

		_, err := usecase.PlaceBid(ctx, ownerAlice, 15, osmomath.NewInt(1000))

		var levelErr types.InvalidLevelError
		s.Require().ErrorAs(err, &levelErr)
		s.Require().Equal(int64(15), levelErr.Level)
	})

	s.Run("level below the floor", func() {
		usecase, _ := s.newAuction(&mocks.LiquidityCurveMock{}, &mocks.TransferExecutorMock{})

		_, err := usecase.PlaceBid(ctx, ownerAlice, -110, osmomath.NewInt(1000))

		var levelErr types.InvalidLevelError
		s.Require().ErrorAs(err, &levelErr)
	})
}

func (s *AuctionUseCaseTestSuite) TestPlaceBid_PhaseGates() {
	ctx := context.Background()

	s.Run("before the window opens", func() {
		usecase, testClock := s.newAuction(&mocks.LiquidityCurveMock{}, &mocks.TransferExecutorMock{})
		setOffset(testClock, -10)

		_, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(1000))

		var notStartedErr types.AuctionNotStartedError
		s.Require().ErrorAs(err, &notStartedErr)
		s.Require().Equal(auctionStartUnix, notStartedErr.StartUnix)
	})

	s.Run("after the window closes", func() {
		usecase, testClock := s.newAuction(&mocks.LiquidityCurveMock{}, &mocks.TransferExecutorMock{})
		setOffset(testClock, auctionEndUnix-auctionStartUnix)

		_, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(1000))

		var endedErr types.AuctionEndedError
		s.Require().ErrorAs(err, &endedErr)
		s.Require().Equal(auctionEndUnix, endedErr.EndUnix)
	})

	s.Run("after settlement", func() {
		usecase, testClock := s.newAuction(&mocks.LiquidityCurveMock{}, &mocks.TransferExecutorMock{})
		setOffset(testClock, auctionEndUnix-auctionStartUnix)
		s.Require().NoError(usecase.SettleAuction(ctx))

		_, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(1000))
		s.Require().ErrorIs(err, types.AuctionAlreadySettledError{})
	})
}

func (s *AuctionUseCaseTestSuite) TestPlaceBid_RegistersLiquidity() {
	ctx := context.Background()

	curveMock := &mocks.LiquidityCurveMock{}
	curveMock.WithQuoteCb(7, nil)

	usecase, _ := s.newAuction(curveMock, &mocks.TransferExecutorMock{})

	positionID, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(500))
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), positionID)

	positionID, err = usecase.PlaceBid(ctx, ownerBob, 0, osmomath.NewInt(300))
	s.Require().NoError(err)
	s.Require().Equal(uint64(2), positionID)

	positionID, err = usecase.PlaceBid(ctx, ownerAlice, 20, osmomath.NewInt(200))
	s.Require().NoError(err)
	s.Require().Equal(uint64(3), positionID)

	s.requireIntEqual(800, usecase.LiquidityAtLevel(0))
	s.requireIntEqual(200, usecase.LiquidityAtLevel(20))
	s.requireIntEqual(0, usecase.LiquidityAtLevel(10))

	s.Require().Equal(2, usecase.ActiveLevelCount())

	minLevel, maxLevel, hasLevels := usecase.ActiveLevelBounds()
	s.Require().True(hasLevels)
	s.Require().Equal(int64(0), minLevel)
	s.Require().Equal(int64(20), maxLevel)

	s.requireIntEqual(1000, usecase.GetAuctionState().TotalLiquidity)
	s.requireIntEqual(700, usecase.GetOwnerLiquidity(ownerAlice))

	alicePositions := usecase.GetPositionsByOwner(ownerAlice)
	s.Require().Len(alicePositions, 2)
	s.Require().Equal(uint64(1), alicePositions[0].ID)
	s.Require().Equal(uint64(3), alicePositions[1].ID)

	bobPosition, err := usecase.GetPosition(2)
	s.Require().NoError(err)
	s.Require().Equal(ownerBob, bobPosition.Owner)
	s.Require().Equal(int64(0), bobPosition.LowerLevel)
	s.Require().Equal(int64(10), bobPosition.UpperLevel)

	// The scripted quote of 7 is floored onto the spacing grid.
	estimatedLevel, hasEstimate := usecase.EstimatedClearingLevel()
	s.Require().True(hasEstimate)
	s.Require().Equal(int64(0), estimatedLevel)
}

func (s *AuctionUseCaseTestSuite) TestPlaceBid_QuoteFailureRollsBack() {
	ctx := context.Background()

	curveMock := &mocks.LiquidityCurveMock{}
	curveMock.WithQuoteCb(0, mocks.MockError{Err: "quote down"})

	usecase, _ := s.newAuction(curveMock, &mocks.TransferExecutorMock{})

	_, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(1000))

	var quoteErr types.CurveQuoteError
	s.Require().ErrorAs(err, &quoteErr)
	s.Require().ErrorIs(err, mocks.MockError{Err: "quote down"})

	s.Require().Equal(0, usecase.ActiveLevelCount())
	s.requireIntEqual(0, usecase.LiquidityAtLevel(0))
	s.requireIntEqual(0, usecase.GetAuctionState().TotalLiquidity)

	_, hasEstimate := usecase.EstimatedClearingLevel()
	s.Require().False(hasEstimate)

	var notFoundErr types.PositionNotFoundError
	_, err = usecase.GetPosition(1)
	s.Require().ErrorAs(err, &notFoundErr)

	// A healthy quote right after leaves no residue of the failed bid.
	curveMock.WithQuoteCb(0, nil)

	positionID, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(500))
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), positionID)
	s.requireIntEqual(500, usecase.LiquidityAtLevel(0))

	// A failure on a level that already holds liquidity restores the prior
	// amount instead of clearing the level.
	curveMock.WithQuoteCb(0, mocks.MockError{Err: "quote down"})

	_, err = usecase.PlaceBid(ctx, ownerBob, 0, osmomath.NewInt(300))
	s.Require().ErrorAs(err, &quoteErr)

	s.Require().Equal(1, usecase.ActiveLevelCount())
	s.requireIntEqual(500, usecase.LiquidityAtLevel(0))
	s.requireIntEqual(500, usecase.GetAuctionState().TotalLiquidity)
}

func (s *AuctionUseCaseTestSuite) TestEstimate_TracksBook() {
	ctx := context.Background()

	usecase, _ := s.newAuction(curveusecase.New(), &mocks.TransferExecutorMock{})

	_, hasEstimate := usecase.EstimatedClearingLevel()
	s.Require().False(hasEstimate)

	// An underfilled book quotes down to the price floor.
	alicePosition, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(300_000))
	s.Require().NoError(err)

	estimatedLevel, hasEstimate := usecase.EstimatedClearingLevel()
	s.Require().True(hasEstimate)
	s.Require().Equal(int64(-100), estimatedLevel)

	inRange, err := usecase.IsInRange(alicePosition)
	s.Require().NoError(err)
	s.Require().True(inRange)

	// Enough liquidity above moves the estimate to where the sale stops.
	bobPosition, err := usecase.PlaceBid(ctx, ownerBob, 20, osmomath.NewInt(700_000))
	s.Require().NoError(err)

	estimatedLevel, _ = usecase.EstimatedClearingLevel()
	s.Require().Equal(int64(0), estimatedLevel)

	// An insert strictly below the estimate cannot move it and skips the
	// quote entirely.
	carolPosition, err := usecase.PlaceBid(ctx, ownerCarol, -50, osmomath.NewInt(100_000))
	s.Require().NoError(err)

	estimatedLevel, _ = usecase.EstimatedClearingLevel()
	s.Require().Equal(int64(0), estimatedLevel)

	inRange, err = usecase.IsInRange(carolPosition)
	s.Require().NoError(err)
	s.Require().False(inRange)

	// More depth at a better level pushes the estimate up and alice out of
	// range.
	_, err = usecase.PlaceBid(ctx, ownerAlice, 10, osmomath.NewInt(600_000))
	s.Require().NoError(err)

	estimatedLevel, _ = usecase.EstimatedClearingLevel()
	s.Require().Equal(int64(10), estimatedLevel)

	inRange, err = usecase.IsInRange(alicePosition)
	s.Require().NoError(err)
	s.Require().False(inRange)

	inRange, err = usecase.IsInRange(bobPosition)
	s.Require().NoError(err)
	s.Require().True(inRange)

	// Removing below the estimate is allowed and leaves it untouched.
	s.Require().NoError(usecase.RemoveBid(ctx, ownerAlice, alicePosition))

	estimatedLevel, _ = usecase.EstimatedClearingLevel()
	s.Require().Equal(int64(10), estimatedLevel)
	s.requireIntEqual(0, usecase.LiquidityAtLevel(0))

	// Removing in range is locked.
	err = usecase.RemoveBid(ctx, ownerBob, bobPosition)

	var inRangeErr types.PositionInRangeError
	s.Require().ErrorAs(err, &inRangeErr)
	s.Require().Equal(int64(20), inRangeErr.Level)
}

// shadowView is a reference view over a plain level map, scanned linearly.
type shadowView struct {
	levels map[int64]int64
}

func (v shadowView) LiquidityAtLevel(level int64) osmomath.Int {
	return osmomath.NewInt(v.levels[level])
}

func (v shadowView) NextActiveLevel(fromLevel int64, lte bool, boundLevel int64) (int64, bool) {
	var (
		best  int64
		found bool
	)
	for level := range v.levels {
		if lte {
			if level > fromLevel || level < boundLevel {
				continue
			}
			if !found || level > best {
				best, found = level, true
			}
		} else {
			if level <= fromLevel || level > boundLevel {
				continue
			}
			if !found || level < best {
				best, found = level, true
			}
		}
	}
	return best, found
}

func (v shadowView) MaxActiveLevel() (int64, bool) {
	var (
		best  int64
		found bool
	)
	for level := range v.levels {
		if !found || level > best {
			best, found = level, true
		}
	}
	return best, found
}

func (v shadowView) LevelSpacing() int64 {
	return 10
}

// TestEstimate_IncrementalMatchesFreshQuote drives a random insert and remove
// sequence and checks after every step that the incrementally maintained
// estimate equals a from-scratch quote of the same book. Removals below the
// estimate skip the quote, so any divergence they introduced would show up
// here.
func (s *AuctionUseCaseTestSuite) TestEstimate_IncrementalMatchesFreshQuote() {
	ctx := context.Background()

	usecase, _ := s.newAuction(curveusecase.New(), &mocks.TransferExecutorMock{})

	type openPosition struct {
		id    uint64
		level int64
		size  int64
	}

	rng := rand.New(rand.NewSource(42))
	shadow := map[int64]int64{}
	var open []openPosition
	previousEstimate := int64(-100)

	freshQuote := func() int64 {
		quoted, err := curveusecase.New().Quote(ctx, shadowView{levels: shadow}, osmomath.NewInt(sellableUnits), -100)
		s.Require().NoError(err)
		return quoted
	}

	for step := 0; step < 200; step++ {
		if len(open) == 0 || rng.Float64() < 0.65 {
			level := int64(-100 + 10*rng.Intn(31))
			size := int64(5000 + rng.Intn(45_001))

			positionID, err := usecase.PlaceBid(ctx, ownerAlice, level, osmomath.NewInt(size))
			s.Require().NoError(err)

			shadow[level] += size
			open = append(open, openPosition{id: positionID, level: level, size: size})
		} else {
			pick := rng.Intn(len(open))
			candidate := open[pick]

			estimatedLevel, hasEstimate := usecase.EstimatedClearingLevel()
			err := usecase.RemoveBid(ctx, ownerAlice, candidate.id)

			if hasEstimate && candidate.level >= estimatedLevel {
				var inRangeErr types.PositionInRangeError
				s.Require().ErrorAs(err, &inRangeErr)
			} else {
				s.Require().NoError(err)

				shadow[candidate.level] -= candidate.size
				if shadow[candidate.level] == 0 {
					delete(shadow, candidate.level)
				}
				open[pick] = open[len(open)-1]
				open = open[:len(open)-1]
			}
		}

		estimatedLevel, hasEstimate := usecase.EstimatedClearingLevel()
		s.Require().True(hasEstimate)
		s.Require().Equal(freshQuote(), estimatedLevel, "step %d", step)

		// The estimate never slides back while bids only improve or leave
		// from below.
		s.Require().GreaterOrEqual(estimatedLevel, previousEstimate, "step %d", step)
		previousEstimate = estimatedLevel

		if step%25 == 24 {
			s.Require().Equal(len(shadow), usecase.ActiveLevelCount())
			for level, size := range shadow {
				s.requireIntEqual(size, usecase.LiquidityAtLevel(level))
			}
		}
	}
}

func (s *AuctionUseCaseTestSuite) TestSettle_Gates() {
	ctx := context.Background()

	curveMock := &mocks.LiquidityCurveMock{}
	usecase, testClock := s.newAuction(curveMock, &mocks.TransferExecutorMock{})

	// Too early.
	err := usecase.SettleAuction(ctx)

	var notEndedErr types.AuctionNotEndedError
	s.Require().ErrorAs(err, &notEndedErr)
	s.Require().Equal(auctionEndUnix, notEndedErr.EndUnix)

	setOffset(testClock, auctionEndUnix-auctionStartUnix)

	// A failed execution leaves the auction unsettled and retryable.
	curveMock.WithExecuteCb(domain.ExecutionResult{}, mocks.MockError{Err: "curve down"})

	err = usecase.SettleAuction(ctx)

	var executeErr types.CurveExecuteError
	s.Require().ErrorAs(err, &executeErr)
	s.Require().ErrorIs(err, mocks.MockError{Err: "curve down"})

	_, settled := usecase.ClearingLevel()
	s.Require().False(settled)
	s.Require().Equal(domain.AuctionPhaseActive, usecase.GetAuctionState().Phase)

	curveMock.WithExecuteCb(domain.ExecutionResult{
		FinalLevel: -100,
		AmountSold: osmomath.ZeroInt(),
		Proceeds:   osmomath.ZeroInt(),
	}, nil)

	s.Require().NoError(usecase.SettleAuction(ctx))
	s.Require().Equal(domain.AuctionPhaseSettled, usecase.GetAuctionState().Phase)

	s.Require().ErrorIs(usecase.SettleAuction(ctx), types.AuctionAlreadySettledError{})
}

func (s *AuctionUseCaseTestSuite) TestSettle_EmptyAuction() {
	ctx := context.Background()

	var calls []transferCall
	usecase, testClock := s.newAuction(curveusecase.New(), recordingTransfer(&calls))

	// Recovery is a settled-only operation.
	err := usecase.RecoverIncentives(ctx, adminAccount, treasuryAccount)

	var notSettledErr types.AuctionNotSettledError
	s.Require().ErrorAs(err, &notSettledErr)
	s.Require().Equal(domain.AuctionPhaseActive, notSettledErr.Phase)

	setOffset(testClock, auctionEndUnix-auctionStartUnix)
	s.Require().NoError(usecase.SettleAuction(ctx))

	clearingLevel, settled := usecase.ClearingLevel()
	s.Require().True(settled)
	s.Require().Equal(int64(-100), clearingLevel)

	state := usecase.GetAuctionState()
	s.Require().True(state.TotalSold.IsZero())
	s.Require().True(state.TotalProceeds.IsZero())
	s.Require().True(state.CachedTotalWeightedTime.IsZero())
	s.Require().Equal(auctionEndUnix, state.SettledAtUnix)
	s.Require().Equal(auctionEndUnix+claimWindowSeconds, state.ClaimDeadlineUnix)

	// Nobody accrued weighted time, so the whole pool is recoverable, but
	// only by the admin and only once.
	err = usecase.RecoverIncentives(ctx, "mallory", treasuryAccount)

	var notAdminErr types.NotAdminError
	s.Require().ErrorAs(err, &notAdminErr)

	s.Require().ErrorIs(usecase.RecoverIncentives(ctx, adminAccount, ""), domain.ErrBadParamInput)

	s.Require().NoError(usecase.RecoverIncentives(ctx, adminAccount, treasuryAccount))
	s.Require().Len(calls, 1)
	s.Require().Equal("dpl", calls[0].token)
	s.Require().Equal(treasuryAccount, calls[0].to)
	s.requireIntEqual(poolUnits, calls[0].amount)

	s.Require().ErrorIs(usecase.RecoverIncentives(ctx, adminAccount, treasuryAccount), types.AlreadyRecoveredError{})

	// Recovered incentives are gone, not sweepable a second time.
	setOffset(testClock, auctionEndUnix-auctionStartUnix+claimWindowSeconds+1)
	s.Require().ErrorIs(usecase.SweepUnclaimedIncentives(ctx, adminAccount, treasuryAccount), types.NothingToSweepError{})
}

func (s *AuctionUseCaseTestSuite) TestSettle_SoleBidderAbsorbsSupply() {
	ctx := context.Background()

	var calls []transferCall
	usecase, testClock := s.newAuction(curveusecase.New(), recordingTransfer(&calls))

	alicePosition, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(1_000_000))
	s.Require().NoError(err)

	// Deep enough to absorb the whole sellable supply, so in range from the
	// moment it lands.
	estimatedLevel, hasEstimate := usecase.EstimatedClearingLevel()
	s.Require().True(hasEstimate)
	s.Require().Equal(int64(0), estimatedLevel)

	inRange, err := usecase.IsInRange(alicePosition)
	s.Require().NoError(err)
	s.Require().True(inRange)

	setOffset(testClock, auctionEndUnix-auctionStartUnix)
	s.Require().NoError(usecase.SettleAuction(ctx))

	clearingLevel, settled := usecase.ClearingLevel()
	s.Require().True(settled)
	s.Require().Equal(int64(0), clearingLevel)

	state := usecase.GetAuctionState()
	s.requireIntEqual(sellableUnits, state.TotalSold)
	s.requireIntEqual(sellableUnits, state.TotalProceeds)
	s.Require().True(state.CachedTotalWeightedTime.Equal(osmomath.NewInt(1_000_000).MulRaw(auctionEndUnix - auctionStartUnix)))

	inRange, err = usecase.IsInRange(alicePosition)
	s.Require().NoError(err)
	s.Require().True(inRange)

	// The only accruer takes the entire pool with no division dust.
	s.requireIntEqual(poolUnits, usecase.CalculateIncentives(alicePosition))

	s.Require().NoError(usecase.ClaimIncentives(ctx, ownerAlice, alicePosition))
	s.Require().Len(calls, 1)
	s.Require().Equal("dpl", calls[0].token)
	s.Require().Equal(ownerAlice, calls[0].to)
	s.requireIntEqual(poolUnits, calls[0].amount)
	s.requireIntEqual(poolUnits, usecase.GetAuctionState().TotalIncentivesClaimed)

	s.Require().ErrorIs(usecase.ClaimIncentives(ctx, ownerAlice, alicePosition), types.AlreadyClaimedError{PositionID: alicePosition})

	// Weighted time was earned, so the recovery path is closed forever.
	err = usecase.RecoverIncentives(ctx, adminAccount, treasuryAccount)

	var blockedErr types.RecoveryBlockedError
	s.Require().ErrorAs(err, &blockedErr)

	// Everything was claimed; nothing remains for the sweep.
	setOffset(testClock, auctionEndUnix-auctionStartUnix+claimWindowSeconds+1)
	s.Require().ErrorIs(usecase.SweepUnclaimedIncentives(ctx, adminAccount, treasuryAccount), types.NothingToSweepError{})
}

func (s *AuctionUseCaseTestSuite) TestAccrual_OutbidStopsAccrual() {
	ctx := context.Background()

	var calls []transferCall
	usecase, testClock := s.newAuction(curveusecase.New(), recordingTransfer(&calls))

	alicePosition, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(900_000))
	s.Require().NoError(err)

	estimatedLevel, _ := usecase.EstimatedClearingLevel()
	s.Require().Equal(int64(0), estimatedLevel)

	// Two days later bob outbids the whole book one level up, pushing alice
	// out of range for good.
	setOffset(testClock, 2*daySeconds)

	bobPosition, err := usecase.PlaceBid(ctx, ownerBob, 10, osmomath.NewInt(900_000))
	s.Require().NoError(err)

	estimatedLevel, _ = usecase.EstimatedClearingLevel()
	s.Require().Equal(int64(10), estimatedLevel)

	inRange, err := usecase.IsInRange(alicePosition)
	s.Require().NoError(err)
	s.Require().False(inRange)

	inRange, err = usecase.IsInRange(bobPosition)
	s.Require().NoError(err)
	s.Require().True(inRange)

	setOffset(testClock, auctionEndUnix-auctionStartUnix)
	s.Require().NoError(usecase.SettleAuction(ctx))

	clearingLevel, _ := usecase.ClearingLevel()
	s.Require().Equal(int64(10), clearingLevel)

	state := usecase.GetAuctionState()
	s.requireIntEqual(sellableUnits, state.TotalSold)

	expectedProceeds := osmomath.NewInt(sellableUnits).ToLegacyDec().Mul(curveusecase.LevelPrice(10)).TruncateInt()
	s.Require().True(state.TotalProceeds.Equal(expectedProceeds))

	// Alice accrued for two days, bob for the remaining five.
	s.Require().True(state.CachedTotalWeightedTime.Equal(osmomath.NewInt(900_000).MulRaw(7 * daySeconds)))

	// 100_000 * 2/7 and 100_000 * 5/7, truncated.
	s.requireIntEqual(28_571, usecase.CalculateIncentives(alicePosition))
	s.requireIntEqual(71_428, usecase.CalculateIncentives(bobPosition))

	// The execution only consumed bob's level.
	inRange, err = usecase.IsInRange(alicePosition)
	s.Require().NoError(err)
	s.Require().False(inRange)

	inRange, err = usecase.IsInRange(bobPosition)
	s.Require().NoError(err)
	s.Require().True(inRange)

	s.Require().NoError(usecase.ClaimIncentives(ctx, ownerAlice, alicePosition))
	s.Require().NoError(usecase.ClaimIncentives(ctx, ownerBob, bobPosition))
	s.requireIntEqual(99_999, usecase.GetAuctionState().TotalIncentivesClaimed)

	// One truncated unit of dust is all the sweep finds.
	setOffset(testClock, auctionEndUnix-auctionStartUnix+claimWindowSeconds+1)
	s.Require().NoError(usecase.SweepUnclaimedIncentives(ctx, adminAccount, treasuryAccount))

	lastCall := calls[len(calls)-1]
	s.Require().Equal(treasuryAccount, lastCall.to)
	s.requireIntEqual(1, lastCall.amount)
}

func (s *AuctionUseCaseTestSuite) TestRemoveBid_InRangeLockAndFreeze() {
	ctx := context.Background()

	usecase, testClock := s.newAuction(curveusecase.New(), &mocks.TransferExecutorMock{})

	alicePosition, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(900_000))
	s.Require().NoError(err)

	setOffset(testClock, daySeconds)

	// In range: locked against both partial and full removal.
	err = usecase.ReduceBid(ctx, ownerAlice, alicePosition, osmomath.NewInt(100))

	var partialErr types.PartialRemovalError
	s.Require().ErrorAs(err, &partialErr)

	err = usecase.RemoveBid(ctx, ownerAlice, alicePosition)

	var inRangeErr types.PositionInRangeError
	s.Require().ErrorAs(err, &inRangeErr)

	// Ownership is checked before anything else.
	err = usecase.RemoveBid(ctx, ownerBob, alicePosition)

	var notOwnerErr types.NotPositionOwnerError
	s.Require().ErrorAs(err, &notOwnerErr)

	err = usecase.RemoveBid(ctx, ownerAlice, 99)

	var notFoundErr types.PositionNotFoundError
	s.Require().ErrorAs(err, &notFoundErr)

	// Bob outbids at day two; alice is removable the moment she leaves
	// range.
	setOffset(testClock, 2*daySeconds)
	_, err = usecase.PlaceBid(ctx, ownerBob, 10, osmomath.NewInt(900_000))
	s.Require().NoError(err)

	setOffset(testClock, 3*daySeconds)
	s.Require().NoError(usecase.RemoveBid(ctx, ownerAlice, alicePosition))

	position, err := usecase.GetPosition(alicePosition)
	s.Require().NoError(err)
	s.Require().True(position.Removed)
	s.Require().True(position.Size.IsZero())
	s.Require().True(position.Frozen)

	// The freeze preserves exactly the two in-range days, not the third
	// out-of-range one.
	s.Require().True(position.FrozenWeightedTime.Equal(osmomath.NewInt(900_000).MulRaw(2 * daySeconds)))

	inRange, err := usecase.IsInRange(alicePosition)
	s.Require().NoError(err)
	s.Require().False(inRange)

	s.Require().Equal(1, usecase.ActiveLevelCount())
	s.requireIntEqual(900_000, usecase.GetAuctionState().TotalLiquidity)

	s.Require().ErrorIs(usecase.RemoveBid(ctx, ownerAlice, alicePosition), types.PositionRemovedError{PositionID: alicePosition})

	// The frozen accrual survives settlement and still pays out.
	setOffset(testClock, auctionEndUnix-auctionStartUnix)
	s.Require().NoError(usecase.SettleAuction(ctx))

	s.Require().True(usecase.GetAuctionState().CachedTotalWeightedTime.Equal(osmomath.NewInt(900_000).MulRaw(7 * daySeconds)))
	s.requireIntEqual(28_571, usecase.CalculateIncentives(alicePosition))

	s.Require().NoError(usecase.ClaimIncentives(ctx, ownerAlice, alicePosition))
}

func (s *AuctionUseCaseTestSuite) TestReduceBid_PostSettlement() {
	ctx := context.Background()

	usecase, testClock := s.newAuction(curveusecase.New(), &mocks.TransferExecutorMock{})

	alicePosition, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(900_000))
	s.Require().NoError(err)

	setOffset(testClock, auctionEndUnix-auctionStartUnix)
	s.Require().NoError(usecase.SettleAuction(ctx))

	s.requireIntEqual(poolUnits, usecase.CalculateIncentives(alicePosition))

	var invalidSizeErr types.InvalidRemovalSizeError

	err = usecase.ReduceBid(ctx, ownerAlice, alicePosition, osmomath.ZeroInt())
	s.Require().ErrorAs(err, &invalidSizeErr)

	err = usecase.ReduceBid(ctx, ownerAlice, alicePosition, osmomath.NewInt(1_000_000))
	s.Require().ErrorAs(err, &invalidSizeErr)

	// Partial withdrawal is allowed once settled and freezes the payout at
	// the pre-withdrawal size.
	s.Require().NoError(usecase.ReduceBid(ctx, ownerAlice, alicePosition, osmomath.NewInt(300_000)))

	position, err := usecase.GetPosition(alicePosition)
	s.Require().NoError(err)
	s.requireIntEqual(600_000, position.Size)
	s.Require().True(position.Frozen)
	s.Require().False(position.Removed)

	s.requireIntEqual(600_000, usecase.LiquidityAtLevel(0))
	s.requireIntEqual(poolUnits, usecase.CalculateIncentives(alicePosition))

	// Withdrawing the rest fully removes the position without touching the
	// frozen payout.
	s.Require().NoError(usecase.RemoveBid(ctx, ownerAlice, alicePosition))

	position, err = usecase.GetPosition(alicePosition)
	s.Require().NoError(err)
	s.Require().True(position.Removed)

	s.requireIntEqual(0, usecase.LiquidityAtLevel(0))
	s.requireIntEqual(poolUnits, usecase.CalculateIncentives(alicePosition))

	s.Require().NoError(usecase.ClaimIncentives(ctx, ownerAlice, alicePosition))
}

func (s *AuctionUseCaseTestSuite) TestClaimIncentives_GatesAndRollback() {
	ctx := context.Background()

	var calls []transferCall
	transferMock := recordingTransfer(&calls)
	usecase, testClock := s.newAuction(curveusecase.New(), transferMock)

	alicePosition, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(900_000))
	s.Require().NoError(err)

	carolPosition, err := usecase.PlaceBid(ctx, ownerCarol, -50, osmomath.NewInt(1000))
	s.Require().NoError(err)

	// Not settled yet.
	err = usecase.ClaimIncentives(ctx, ownerAlice, alicePosition)

	var notSettledErr types.AuctionNotSettledError
	s.Require().ErrorAs(err, &notSettledErr)

	setOffset(testClock, auctionEndUnix-auctionStartUnix)
	s.Require().NoError(usecase.SettleAuction(ctx))

	var notFoundErr types.PositionNotFoundError
	s.Require().ErrorAs(usecase.ClaimIncentives(ctx, ownerAlice, 99), &notFoundErr)

	var notOwnerErr types.NotPositionOwnerError
	s.Require().ErrorAs(usecase.ClaimIncentives(ctx, ownerBob, alicePosition), &notOwnerErr)

	// Carol never entered range and has nothing to claim.
	s.Require().ErrorIs(usecase.ClaimIncentives(ctx, ownerCarol, carolPosition), types.NothingToClaimError{PositionID: carolPosition})

	// A failed transfer rolls the claim back completely. The claim flag is
	// already committed when the executor runs, so a reentrant observer sees
	// the position as claimed for the duration of the transfer.
	transferMock.TransferCb = func(ctx context.Context, token, to string, amount osmomath.Int) error {
		position, ok := s.repository.Get(alicePosition)
		s.Require().True(ok)
		s.Require().True(position.HasClaimedIncentive)
		return mocks.MockError{Err: "transfer down"}
	}

	err = usecase.ClaimIncentives(ctx, ownerAlice, alicePosition)

	var transferErr types.TransferFailedError
	s.Require().ErrorAs(err, &transferErr)
	s.Require().ErrorIs(err, mocks.MockError{Err: "transfer down"})

	position, err := usecase.GetPosition(alicePosition)
	s.Require().NoError(err)
	s.Require().False(position.HasClaimedIncentive)
	s.Require().True(usecase.GetAuctionState().TotalIncentivesClaimed.IsZero())

	// The claim goes through once the executor recovers.
	transferMock.TransferCb = func(ctx context.Context, token, to string, amount osmomath.Int) error {
		calls = append(calls, transferCall{token: token, to: to, amount: amount})
		return nil
	}

	s.Require().NoError(usecase.ClaimIncentives(ctx, ownerAlice, alicePosition))
	s.Require().Len(calls, 1)
	s.Require().Equal(ownerAlice, calls[0].to)
	s.requireIntEqual(poolUnits, calls[0].amount)

	position, err = usecase.GetPosition(alicePosition)
	s.Require().NoError(err)
	s.Require().True(position.HasClaimedIncentive)

	s.Require().ErrorIs(usecase.ClaimIncentives(ctx, ownerAlice, alicePosition), types.AlreadyClaimedError{PositionID: alicePosition})

	// Past the deadline nothing is claimable, not even a zero payout.
	setOffset(testClock, auctionEndUnix-auctionStartUnix+claimWindowSeconds+1)

	var windowClosedErr types.ClaimWindowClosedError
	s.Require().ErrorAs(usecase.ClaimIncentives(ctx, ownerCarol, carolPosition), &windowClosedErr)
}

func (s *AuctionUseCaseTestSuite) TestSweepUnclaimedIncentives() {
	ctx := context.Background()

	var calls []transferCall
	usecase, testClock := s.newAuction(curveusecase.New(), recordingTransfer(&calls))

	_, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(900_000))
	s.Require().NoError(err)

	var notSettledErr types.AuctionNotSettledError
	s.Require().ErrorAs(usecase.SweepUnclaimedIncentives(ctx, adminAccount, treasuryAccount), &notSettledErr)

	setOffset(testClock, auctionEndUnix-auctionStartUnix)
	s.Require().NoError(usecase.SettleAuction(ctx))

	// The claim window must run out first.
	err = usecase.SweepUnclaimedIncentives(ctx, adminAccount, treasuryAccount)

	var windowOpenErr types.ClaimWindowOpenError
	s.Require().ErrorAs(err, &windowOpenErr)
	s.Require().Equal(auctionEndUnix+claimWindowSeconds, windowOpenErr.DeadlineUnix)

	setOffset(testClock, auctionEndUnix-auctionStartUnix+claimWindowSeconds+1)

	var notAdminErr types.NotAdminError
	s.Require().ErrorAs(usecase.SweepUnclaimedIncentives(ctx, "mallory", treasuryAccount), &notAdminErr)
	s.Require().ErrorIs(usecase.SweepUnclaimedIncentives(ctx, adminAccount, ""), domain.ErrBadParamInput)

	// Nothing was claimed, so the whole pool moves to the treasury.
	s.Require().NoError(usecase.SweepUnclaimedIncentives(ctx, adminAccount, treasuryAccount))
	s.Require().Len(calls, 1)
	s.Require().Equal("dpl", calls[0].token)
	s.Require().Equal(treasuryAccount, calls[0].to)
	s.requireIntEqual(poolUnits, calls[0].amount)
	s.Require().True(usecase.GetAuctionState().UnclaimedSwept)

	s.Require().ErrorIs(usecase.SweepUnclaimedIncentives(ctx, adminAccount, treasuryAccount), types.AlreadySweptError{})
}

func (s *AuctionUseCaseTestSuite) TestMigrate() {
	ctx := context.Background()

	var (
		calls   []transferCall
		failDpl bool
	)
	transferMock := &mocks.TransferExecutorMock{
		TransferCb: func(ctx context.Context, token, to string, amount osmomath.Int) error {
			if failDpl && token == "dpl" {
				return mocks.MockError{Err: "transfer down"}
			}
			calls = append(calls, transferCall{token: token, to: to, amount: amount})
			return nil
		},
	}

	usecase, testClock := s.newAuction(curveusecase.New(), transferMock)

	// An underfilled book: 400_000 of the 900_000 sellable sell at level 0,
	// the rest stays unsold.
	_, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(400_000))
	s.Require().NoError(err)

	var notSettledErr types.AuctionNotSettledError
	s.Require().ErrorAs(usecase.Migrate(ctx, adminAccount, treasuryAccount), &notSettledErr)

	setOffset(testClock, auctionEndUnix-auctionStartUnix)
	s.Require().NoError(usecase.SettleAuction(ctx))

	clearingLevel, _ := usecase.ClearingLevel()
	s.Require().Equal(int64(-100), clearingLevel)

	state := usecase.GetAuctionState()
	s.requireIntEqual(400_000, state.TotalSold)
	s.requireIntEqual(400_000, state.TotalProceeds)

	var notAdminErr types.NotAdminError
	s.Require().ErrorAs(usecase.Migrate(ctx, "mallory", treasuryAccount), &notAdminErr)
	s.Require().ErrorIs(usecase.Migrate(ctx, adminAccount, ""), domain.ErrBadParamInput)

	// First attempt: the proceeds leg lands, the supply leg fails, and only
	// the failed leg stays pending.
	failDpl = true

	err = usecase.Migrate(ctx, adminAccount, treasuryAccount)

	var transferErr types.TransferFailedError
	s.Require().ErrorAs(err, &transferErr)
	s.Require().Equal("dpl", transferErr.Token)
	s.Require().False(usecase.GetAuctionState().Migrated)

	s.Require().Len(calls, 1)
	s.Require().Equal("usdc", calls[0].token)
	s.requireIntEqual(400_000, calls[0].amount)

	// The retry completes the pending leg without re-sending the proceeds.
	failDpl = false

	s.Require().NoError(usecase.Migrate(ctx, adminAccount, treasuryAccount))
	s.Require().True(usecase.GetAuctionState().Migrated)

	s.Require().Len(calls, 2)
	s.Require().Equal("dpl", calls[1].token)
	s.Require().Equal(treasuryAccount, calls[1].to)
	s.requireIntEqual(500_000, calls[1].amount)

	s.Require().ErrorIs(usecase.Migrate(ctx, adminAccount, treasuryAccount), types.AlreadyMigratedError{})
}

// TestCalculateIncentives_SplitInvariance settles the same book as one
// position and as several and checks the aggregate payout differs only by
// truncation dust, at most one unit per extra position.
func (s *AuctionUseCaseTestSuite) TestCalculateIncentives_SplitInvariance() {
	ctx := context.Background()

	settleWithSizes := func(sizes []int64) []osmomath.Int {
		usecase, testClock := s.newAuction(curveusecase.New(), &mocks.TransferExecutorMock{})

		for i, size := range sizes {
			_, err := usecase.PlaceBid(ctx, fmt.Sprintf("bidder%d", i), 0, osmomath.NewInt(size))
			s.Require().NoError(err)
		}

		setOffset(testClock, auctionEndUnix-auctionStartUnix)
		s.Require().NoError(usecase.SettleAuction(ctx))

		payouts := make([]osmomath.Int, 0, len(sizes))
		for positionID := uint64(1); positionID <= uint64(len(sizes)); positionID++ {
			payouts = append(payouts, usecase.CalculateIncentives(positionID))
		}
		return payouts
	}

	sum := func(payouts []osmomath.Int) osmomath.Int {
		total := osmomath.ZeroInt()
		for _, payout := range payouts {
			total = total.Add(payout)
		}
		return total
	}

	single := settleWithSizes([]int64{900_000})
	s.requireIntEqual(poolUnits, single[0])

	halves := settleWithSizes([]int64{450_000, 450_000})
	s.Require().True(halves[0].Equal(halves[1]))
	s.requireIntEqual(poolUnits, sum(halves))

	thirds := settleWithSizes([]int64{300_000, 300_000, 300_000})
	s.Require().True(thirds[0].Equal(thirds[1]))
	s.Require().True(thirds[1].Equal(thirds[2]))

	dust := sum(single).Sub(sum(thirds))
	s.Require().False(dust.IsNegative())
	s.Require().True(dust.LTE(osmomath.NewInt(2)))
}

func (s *AuctionUseCaseTestSuite) TestCalculateAllIncentives() {
	ctx := context.Background()

	usecase, testClock := s.newAuction(curveusecase.New(), &mocks.TransferExecutorMock{})

	_, err := usecase.PlaceBid(ctx, ownerAlice, 0, osmomath.NewInt(600_000))
	s.Require().NoError(err)
	_, err = usecase.PlaceBid(ctx, ownerBob, 10, osmomath.NewInt(300_000))
	s.Require().NoError(err)

	// Before settlement everything is zero and nothing is cached.
	payouts, err := usecase.CalculateAllIncentives(ctx)
	s.Require().NoError(err)
	s.Require().Len(payouts, 2)
	s.Require().True(payouts[1].IsZero())
	s.Require().True(payouts[2].IsZero())

	canceledCtx, cancel := context.WithCancel(ctx)
	cancel()

	_, err = usecase.CalculateAllIncentives(canceledCtx)
	s.Require().ErrorIs(err, context.Canceled)

	setOffset(testClock, auctionEndUnix-auctionStartUnix)
	s.Require().NoError(usecase.SettleAuction(ctx))

	payouts, err = usecase.CalculateAllIncentives(ctx)
	s.Require().NoError(err)
	s.Require().Len(payouts, 2)
	s.Require().True(payouts[1].Equal(usecase.CalculateIncentives(1)))
	s.Require().True(payouts[2].Equal(usecase.CalculateIncentives(2)))

	// The second call is served from the cache and must agree.
	cachedPayouts, err := usecase.CalculateAllIncentives(ctx)
	s.Require().NoError(err)
	s.Require().Len(cachedPayouts, 2)
	s.Require().True(cachedPayouts[1].Equal(payouts[1]))
	s.Require().True(cachedPayouts[2].Equal(payouts[2]))

	// A post-settlement withdrawal invalidates the cache but cannot change
	// payouts frozen at their pre-withdrawal size.
	s.Require().NoError(usecase.ReduceBid(ctx, ownerBob, 2, osmomath.NewInt(100_000)))

	recomputedPayouts, err := usecase.CalculateAllIncentives(ctx)
	s.Require().NoError(err)
	s.Require().True(recomputedPayouts[1].Equal(payouts[1]))
	s.Require().True(recomputedPayouts[2].Equal(payouts[2]))
}

// TestCalculateAllIncentives_FansOutAcrossChunks runs the bulk payout path
// with more positions than one worker chunk holds.
func (s *AuctionUseCaseTestSuite) TestCalculateAllIncentives_FansOutAcrossChunks() {
	ctx := context.Background()

	usecase, testClock := s.newAuction(curveusecase.New(), &mocks.TransferExecutorMock{})

	const bidderCount = 600

	for i := 0; i < bidderCount; i++ {
		_, err := usecase.PlaceBid(ctx, fmt.Sprintf("bidder%d", i), 0, osmomath.NewInt(1500))
		s.Require().NoError(err)
	}

	setOffset(testClock, auctionEndUnix-auctionStartUnix)
	s.Require().NoError(usecase.SettleAuction(ctx))

	payouts, err := usecase.CalculateAllIncentives(ctx)
	s.Require().NoError(err)
	s.Require().Len(payouts, bidderCount)

	// Equal sizes over the same span earn equal shares: 100_000 * 1500 /
	// 900_000, truncated.
	total := osmomath.ZeroInt()
	for positionID := uint64(1); positionID <= bidderCount; positionID++ {
		s.requireIntEqual(166, payouts[positionID])
		total = total.Add(payouts[positionID])
	}
	s.Require().True(total.LTE(osmomath.NewInt(poolUnits)))
}

func (s *AuctionUseCaseTestSuite) TestGetAuctionState_Phases() {
	ctx := context.Background()

	usecase, testClock := s.newAuction(&mocks.LiquidityCurveMock{}, &mocks.TransferExecutorMock{})

	setOffset(testClock, -100)
	state := usecase.GetAuctionState()
	s.Require().Equal(domain.AuctionPhaseNotStarted, state.Phase)
	s.Require().False(state.HasEstimate)
	s.Require().True(state.TotalLiquidity.IsZero())
	s.requireIntEqual(poolUnits, state.IncentivePoolTotal)

	setOffset(testClock, 10)
	s.Require().Equal(domain.AuctionPhaseActive, usecase.GetAuctionState().Phase)

	setOffset(testClock, auctionEndUnix-auctionStartUnix)
	s.Require().NoError(usecase.SettleAuction(ctx))
	s.Require().Equal(domain.AuctionPhaseSettled, usecase.GetAuctionState().Phase)

	config := usecase.GetMarketConfig()
	s.Require().Equal("dpl", config.Token)
	s.Require().Equal(int64(10), config.LevelSpacing)
}
