package curveusecase_test

import (
	"context"
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/whetstoneresearch/doppler-sub006/curve/types"
	curveusecase "github.com/whetstoneresearch/doppler-sub006/curve/usecase"
	"github.com/whetstoneresearch/doppler-sub006/domain"
)

const testSpacing int64 = 10

type LevelCurveTestSuite struct {
	suite.Suite
}

func TestLevelCurveTestSuite(t *testing.T) {
	suite.Run(t, new(LevelCurveTestSuite))
}

// bookView is a deterministic liquidity view over a plain map, scanned
// linearly so the curve walk is tested against an implementation with no
// shared code.
type bookView struct {
	spacing int64
	levels  map[int64]osmomath.Int
}

var _ domain.LiquidityView = bookView{}

func (v bookView) LiquidityAtLevel(level int64) osmomath.Int {
	if liquidity, ok := v.levels[level]; ok {
		return liquidity
	}
	return osmomath.ZeroInt()
}

func (v bookView) NextActiveLevel(fromLevel int64, lte bool, boundLevel int64) (int64, bool) {
	var best int64
	found := false
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

func (v bookView) MaxActiveLevel() (int64, bool) {
	return v.NextActiveLevel(int64(1)<<62, true, int64(-1)<<62)
}

func (v bookView) LevelSpacing() int64 {
	return v.spacing
}

func newBookView(levels map[int64]int64) bookView {
	view := bookView{spacing: testSpacing, levels: map[int64]osmomath.Int{}}
	for level, liquidity := range levels {
		view.levels[level] = osmomath.NewInt(liquidity)
	}
	return view
}

func (s *LevelCurveTestSuite) TestLevelPrice() {
	s.Require().Equal(osmomath.OneDec(), curveusecase.LevelPrice(0))
	s.Require().Equal(osmomath.MustNewDecFromStr("1.0001"), curveusecase.LevelPrice(1))

	// Prices grow strictly with the level and negative levels price below one.
	s.Require().True(curveusecase.LevelPrice(100).GT(curveusecase.LevelPrice(50)))
	s.Require().True(curveusecase.LevelPrice(-50).LT(osmomath.OneDec()))
	s.Require().True(curveusecase.LevelPrice(-50).GT(osmomath.ZeroDec()))

	// A negative level prices at the reciprocal of its positive mirror.
	product := curveusecase.LevelPrice(30).Mul(curveusecase.LevelPrice(-30))
	tolerance := osmomath.MustNewDecFromStr("0.000000000000000100")
	s.Require().True(product.Sub(osmomath.OneDec()).Abs().LT(tolerance))
}

func (s *LevelCurveTestSuite) TestQuote_EmptyBook() {
	curve := curveusecase.New()

	finalLevel, err := curve.Quote(context.Background(), newBookView(nil), osmomath.NewInt(1000), -500)
	s.Require().NoError(err)
	s.Require().Equal(int64(-500), finalLevel)
}

func (s *LevelCurveTestSuite) TestQuote_ZeroSellStopsAtBestLevel() {
	curve := curveusecase.New()
	view := newBookView(map[int64]int64{0: 100, 50: 100})

	finalLevel, err := curve.Quote(context.Background(), view, osmomath.ZeroInt(), -500)
	s.Require().NoError(err)
	s.Require().Equal(int64(50), finalLevel)
}

func (s *LevelCurveTestSuite) TestQuote_InvalidSellAmount() {
	curve := curveusecase.New()

	_, err := curve.Quote(context.Background(), newBookView(nil), osmomath.NewInt(-1), 0)

	var invalidErr types.InvalidSellAmountError
	s.Require().ErrorAs(err, &invalidErr)
	s.Require().Equal(osmomath.NewInt(-1), invalidErr.Amount)
}

func (s *LevelCurveTestSuite) TestExecute_SingleLevelAbsorbsSale() {
	curve := curveusecase.New()
	view := newBookView(map[int64]int64{0: 1000})

	result, err := curve.Execute(context.Background(), view, osmomath.NewInt(600), -500)
	s.Require().NoError(err)

	s.Require().Equal(int64(0), result.FinalLevel)
	s.Require().Equal(osmomath.NewInt(600), result.AmountSold)
	// At level zero the price is exactly one, so proceeds equal the fill.
	s.Require().Equal(osmomath.NewInt(600), result.Proceeds)
	s.Require().Equal([]int64{0}, result.TouchedLevels)
}

func (s *LevelCurveTestSuite) TestExecute_WalksLevelsBestToWorst() {
	curve := curveusecase.New()
	view := newBookView(map[int64]int64{100: 300, 50: 200, 0: 1000})

	result, err := curve.Execute(context.Background(), view, osmomath.NewInt(600), -500)
	s.Require().NoError(err)

	s.Require().Equal(int64(0), result.FinalLevel)
	s.Require().Equal(osmomath.NewInt(600), result.AmountSold)
	s.Require().Equal([]int64{100, 50, 0}, result.TouchedLevels)

	expectedProceeds := osmomath.NewInt(300).ToLegacyDec().Mul(curveusecase.LevelPrice(100)).
		Add(osmomath.NewInt(200).ToLegacyDec().Mul(curveusecase.LevelPrice(50))).
		Add(osmomath.NewInt(100).ToLegacyDec().Mul(curveusecase.LevelPrice(0))).
		TruncateInt()
	s.Require().Equal(expectedProceeds, result.Proceeds)
}

func (s *LevelCurveTestSuite) TestExecute_BookExhaustedFallsToFloor() {
	curve := curveusecase.New()
	view := newBookView(map[int64]int64{20: 300, -10: 200})

	result, err := curve.Execute(context.Background(), view, osmomath.NewInt(10_000), -500)
	s.Require().NoError(err)

	s.Require().Equal(int64(-500), result.FinalLevel)
	s.Require().Equal(osmomath.NewInt(500), result.AmountSold)
	s.Require().Equal([]int64{20, -10}, result.TouchedLevels)
}

func (s *LevelCurveTestSuite) TestExecute_BookEntirelyBelowFloor() {
	curve := curveusecase.New()
	view := newBookView(map[int64]int64{-300: 500})

	result, err := curve.Execute(context.Background(), view, osmomath.NewInt(100), -100)
	s.Require().NoError(err)

	s.Require().Equal(int64(-100), result.FinalLevel)
	s.Require().True(result.AmountSold.IsZero())
	s.Require().True(result.Proceeds.IsZero())
	s.Require().Empty(result.TouchedLevels)
}

func (s *LevelCurveTestSuite) TestExecute_OnlyOnce() {
	curve := curveusecase.New()
	view := newBookView(map[int64]int64{0: 1000})

	_, err := curve.Execute(context.Background(), view, osmomath.NewInt(100), -500)
	s.Require().NoError(err)

	_, err = curve.Execute(context.Background(), view, osmomath.NewInt(100), -500)
	s.Require().ErrorIs(err, types.AlreadyExecutedError{})

	// Quoting remains available after the one real execution.
	finalLevel, err := curve.Quote(context.Background(), view, osmomath.NewInt(100), -500)
	s.Require().NoError(err)
	s.Require().Equal(int64(0), finalLevel)
}
