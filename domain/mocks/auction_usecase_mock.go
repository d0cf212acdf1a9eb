package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/whetstoneresearch/doppler-sub006/domain"
	"github.com/whetstoneresearch/doppler-sub006/domain/mvc"
)

var _ mvc.AuctionUsecase = &AuctionUsecaseMock{}

// AuctionUsecaseMock is a mock implementation of the AuctionUsecase interface
type AuctionUsecaseMock struct {
	PlaceBidFunc                 func(ctx context.Context, owner string, lowerLevel int64, size osmomath.Int) (uint64, error)
	RemoveBidFunc                func(ctx context.Context, owner string, positionID uint64) error
	ReduceBidFunc                func(ctx context.Context, owner string, positionID uint64, size osmomath.Int) error
	SettleAuctionFunc            func(ctx context.Context) error
	ClaimIncentivesFunc          func(ctx context.Context, caller string, positionID uint64) error
	CalculateIncentivesFunc      func(positionID uint64) osmomath.Int
	CalculateAllIncentivesFunc   func(ctx context.Context) (map[uint64]osmomath.Int, error)
	RecoverIncentivesFunc        func(ctx context.Context, caller, recipient string) error
	SweepUnclaimedIncentivesFunc func(ctx context.Context, caller, recipient string) error
	MigrateFunc                  func(ctx context.Context, caller, recipient string) error
	GetAuctionStateFunc          func() domain.AuctionState
	GetMarketConfigFunc          func() domain.MarketConfig
	GetPositionFunc              func(positionID uint64) (domain.Position, error)
	GetPositionsByOwnerFunc      func(owner string) []domain.Position
	GetOwnerLiquidityFunc        func(owner string) osmomath.Int
	IsInRangeFunc                func(positionID uint64) (bool, error)
	EstimatedClearingLevelFunc   func() (int64, bool)
	ClearingLevelFunc            func() (int64, bool)
	ActiveLevelCountFunc         func() int
	ActiveLevelBoundsFunc        func() (int64, int64, bool)
	LiquidityAtLevelFunc         func(level int64) osmomath.Int
}

func (m *AuctionUsecaseMock) PlaceBid(ctx context.Context, owner string, lowerLevel int64, size osmomath.Int) (uint64, error) {
	if m.PlaceBidFunc != nil {
		return m.PlaceBidFunc(ctx, owner, lowerLevel, size)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) RemoveBid(ctx context.Context, owner string, positionID uint64) error {
	if m.RemoveBidFunc != nil {
		return m.RemoveBidFunc(ctx, owner, positionID)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) ReduceBid(ctx context.Context, owner string, positionID uint64, size osmomath.Int) error {
	if m.ReduceBidFunc != nil {
		return m.ReduceBidFunc(ctx, owner, positionID, size)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) SettleAuction(ctx context.Context) error {
	if m.SettleAuctionFunc != nil {
		return m.SettleAuctionFunc(ctx)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) ClaimIncentives(ctx context.Context, caller string, positionID uint64) error {
	if m.ClaimIncentivesFunc != nil {
		return m.ClaimIncentivesFunc(ctx, caller, positionID)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) CalculateIncentives(positionID uint64) osmomath.Int {
	if m.CalculateIncentivesFunc != nil {
		return m.CalculateIncentivesFunc(positionID)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) CalculateAllIncentives(ctx context.Context) (map[uint64]osmomath.Int, error) {
	if m.CalculateAllIncentivesFunc != nil {
		return m.CalculateAllIncentivesFunc(ctx)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) RecoverIncentives(ctx context.Context, caller, recipient string) error {
	if m.RecoverIncentivesFunc != nil {
		return m.RecoverIncentivesFunc(ctx, caller, recipient)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) SweepUnclaimedIncentives(ctx context.Context, caller, recipient string) error {
	if m.SweepUnclaimedIncentivesFunc != nil {
		return m.SweepUnclaimedIncentivesFunc(ctx, caller, recipient)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) Migrate(ctx context.Context, caller, recipient string) error {
	if m.MigrateFunc != nil {
		return m.MigrateFunc(ctx, caller, recipient)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) GetAuctionState() domain.AuctionState {
	if m.GetAuctionStateFunc != nil {
		return m.GetAuctionStateFunc()
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) GetMarketConfig() domain.MarketConfig {
	if m.GetMarketConfigFunc != nil {
		return m.GetMarketConfigFunc()
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) GetPosition(positionID uint64) (domain.Position, error) {
	if m.GetPositionFunc != nil {
		return m.GetPositionFunc(positionID)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) GetPositionsByOwner(owner string) []domain.Position {
	if m.GetPositionsByOwnerFunc != nil {
		return m.GetPositionsByOwnerFunc(owner)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) GetOwnerLiquidity(owner string) osmomath.Int {
	if m.GetOwnerLiquidityFunc != nil {
		return m.GetOwnerLiquidityFunc(owner)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) IsInRange(positionID uint64) (bool, error) {
	if m.IsInRangeFunc != nil {
		return m.IsInRangeFunc(positionID)
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) EstimatedClearingLevel() (int64, bool) {
	if m.EstimatedClearingLevelFunc != nil {
		return m.EstimatedClearingLevelFunc()
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) ClearingLevel() (int64, bool) {
	if m.ClearingLevelFunc != nil {
		return m.ClearingLevelFunc()
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) ActiveLevelCount() int {
	if m.ActiveLevelCountFunc != nil {
		return m.ActiveLevelCountFunc()
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) ActiveLevelBounds() (int64, int64, bool) {
	if m.ActiveLevelBoundsFunc != nil {
		return m.ActiveLevelBoundsFunc()
	}
	panic("unimplemented")
}

func (m *AuctionUsecaseMock) LiquidityAtLevel(level int64) osmomath.Int {
	if m.LiquidityAtLevelFunc != nil {
		return m.LiquidityAtLevelFunc(level)
	}
	panic("unimplemented")
}
