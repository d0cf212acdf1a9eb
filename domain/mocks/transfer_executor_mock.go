package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/whetstoneresearch/doppler-sub006/domain"
)

var _ domain.TransferExecutor = (*TransferExecutorMock)(nil)

// TransferExecutorMock is a mock struct that implements domain.TransferExecutor.
type TransferExecutorMock struct {
	TransferCb func(ctx context.Context, token, to string, amount osmomath.Int) error
}

func (m *TransferExecutorMock) WithTransferCb(err error) {
	m.TransferCb = func(ctx context.Context, token, to string, amount osmomath.Int) error {
		return err
	}
}

func (m *TransferExecutorMock) Transfer(ctx context.Context, token, to string, amount osmomath.Int) error {
	if m.TransferCb != nil {
		return m.TransferCb(ctx, token, to, amount)
	}

	return nil
}
