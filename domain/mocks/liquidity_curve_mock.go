package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/whetstoneresearch/doppler-sub006/domain"
)

var _ domain.LiquidityCurve = (*LiquidityCurveMock)(nil)

// LiquidityCurveMock is a mock struct that implements domain.LiquidityCurve.
type LiquidityCurveMock struct {
	QuoteCb   func(ctx context.Context, view domain.LiquidityView, sellAmount osmomath.Int, floorLevel int64) (int64, error)
	ExecuteCb func(ctx context.Context, view domain.LiquidityView, sellAmount osmomath.Int, floorLevel int64) (domain.ExecutionResult, error)
}

func (m *LiquidityCurveMock) WithQuoteCb(level int64, err error) {
	m.QuoteCb = func(ctx context.Context, view domain.LiquidityView, sellAmount osmomath.Int, floorLevel int64) (int64, error) {
		return level, err
	}
}

func (m *LiquidityCurveMock) WithExecuteCb(result domain.ExecutionResult, err error) {
	m.ExecuteCb = func(ctx context.Context, view domain.LiquidityView, sellAmount osmomath.Int, floorLevel int64) (domain.ExecutionResult, error) {
		return result, err
	}
}

func (m *LiquidityCurveMock) Quote(ctx context.Context, view domain.LiquidityView, sellAmount osmomath.Int, floorLevel int64) (int64, error) {
	if m.QuoteCb != nil {
		return m.QuoteCb(ctx, view, sellAmount, floorLevel)
	}

	return floorLevel, nil
}

func (m *LiquidityCurveMock) Execute(ctx context.Context, view domain.LiquidityView, sellAmount osmomath.Int, floorLevel int64) (domain.ExecutionResult, error) {
	if m.ExecuteCb != nil {
		return m.ExecuteCb(ctx, view, sellAmount, floorLevel)
	}

	return domain.ExecutionResult{
		FinalLevel: floorLevel,
		AmountSold: osmomath.ZeroInt(),
		Proceeds:   osmomath.ZeroInt(),
	}, nil
}
