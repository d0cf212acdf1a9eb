package domain_test

import (
	"testing"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/require"

	"github.com/whetstoneresearch/doppler-sub006/domain"
)

func TestAuctionConfigMarketConfig(t *testing.T) {
	validConfig := domain.AuctionConfig{
		Token:               "dpl",
		NumeraireToken:      "usdc",
		LevelSpacing:        10,
		PriceFloorLevel:     -100,
		StartTimeUnix:       1_700_000_000,
		DurationSeconds:     604_800,
		ClaimWindowSeconds:  259_200,
		IncentiveShareBps:   1000,
		MinimumEligibleSize: "100",
		TotalAuctionSupply:  "1000000",
		Admin:               "admin",
	}

	tests := []struct {
		name          string
		mutate        func(config *domain.AuctionConfig)
		expectedField string
	}{
		{
			name:   "valid config",
			mutate: func(config *domain.AuctionConfig) {},
		},
		{
			name: "minimum size is not an integer",
			mutate: func(config *domain.AuctionConfig) {
				config.MinimumEligibleSize = "one hundred"
			},
			expectedField: "minimum_eligible_size",
		},
		{
			name: "total supply is not an integer",
			mutate: func(config *domain.AuctionConfig) {
				config.TotalAuctionSupply = ""
			},
			expectedField: "total_auction_supply",
		},
		{
			name: "price floor off the grid",
			mutate: func(config *domain.AuctionConfig) {
				config.PriceFloorLevel = -105
			},
			expectedField: "price_floor_level",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := validConfig
			tc.mutate(&config)

			marketConfig, err := config.MarketConfig()
			if tc.expectedField != "" {
				var configErr domain.MarketConfigError
				require.ErrorAs(t, err, &configErr)
				require.Equal(t, tc.expectedField, configErr.Field)
				return
			}

			require.NoError(t, err)
			require.Equal(t, "dpl", marketConfig.Token)
			require.Equal(t, 7*24*time.Hour, marketConfig.AuctionDuration)
			require.Equal(t, 3*24*time.Hour, marketConfig.ClaimWindow)
			require.True(t, marketConfig.TotalAuctionSupply.Equal(osmomath.NewInt(1_000_000)))
			require.True(t, marketConfig.MinimumEligibleSize.Equal(osmomath.NewInt(100)))
		})
	}
}
