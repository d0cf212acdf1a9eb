package http

import (
	"github.com/lightningnetwork/lnd/clock"

	"github.com/whetstoneresearch/doppler-sub006/domain"
	"github.com/whetstoneresearch/doppler-sub006/domain/mvc"
)

func ExtractVersion(ldFlagsValue string) (string, error) {
	return extractVersion(ldFlagsValue)
}

func NewTestSystemHandler(us mvc.AuctionUsecase, config domain.Config, clk clock.Clock) *SystemHandler {
	return &SystemHandler{
		clock:    clk,
		AUsecase: us,
		config:   config,
	}
}
