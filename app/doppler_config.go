package main

import (
	"github.com/whetstoneresearch/doppler-sub006/domain"
)

// DefaultConfig defines the default config for the batch auction server.
var DefaultConfig = domain.Config{
	ServerAddress: ":9092",

	LoggerFilename:     "doppler.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	CORS: &domain.CORSConfig{
		AllowedOrigin:  "*",
		AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With",
		AllowedMethods: "HEAD, GET, POST, OPTIONS",
	},

	Auction: &domain.AuctionConfig{
		Token:          "dpl",
		NumeraireToken: "usdc",

		LevelSpacing:    10,
		PriceFloorLevel: -1000,

		// Sale window of the initial dpl offering.
		StartTimeUnix:      1735689600, // 2025-01-01T00:00:00Z
		DurationSeconds:    604800,     // 7 days
		ClaimWindowSeconds: 259200,     // 3 days

		IncentiveShareBps: 1000, // 10%

		MinimumEligibleSize: "1000000",
		TotalAuctionSupply:  "1000000000000",

		Admin: "doppler-governance",

		EnableIncentivesCache: true,
	},
}
