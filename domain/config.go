package domain

import (
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// Config defines the config for the auction engine server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// Defines the OTEL configuration.
	OTEL OTELConfig `mapstructure:"otel"`

	// Defines the CORS headers applied to every response.
	CORS *CORSConfig `mapstructure:"cors"`

	// Auction encapsulates the market configuration.
	Auction *AuctionConfig `mapstructure:"auction"`
}

// OTELConfig represents the OpenTelemetry configuration.
type OTELConfig struct {
	// The DSN of the observability backend. Tracing is disabled when empty.
	DSN string `mapstructure:"dsn"`

	// The sample rate for error events, in the range [0.0, 1.0].
	SampleRate float64 `mapstructure:"sample-rate"`

	// Whether performance tracing is enabled.
	EnableTracing bool `mapstructure:"enable-tracing"`

	// The sample rate for profiling, relative to the tracing sample rate.
	ProfilesSampleRate float64 `mapstructure:"profiles-sample-rate"`

	// The deployment environment attached to every event.
	Environment string `mapstructure:"environment"`

	// Per-endpoint trace sampling rates.
	CustomSampleRate OTELCustomSampleRate `mapstructure:"custom-sample-rate"`
}

// OTELCustomSampleRate defines trace sampling rates per endpoint group.
type OTELCustomSampleRate struct {
	// Sampling rate for the bulk incentives endpoint.
	Incentives float64 `mapstructure:"incentives"`

	// Sampling rate for the remaining sampled endpoints.
	Other float64 `mapstructure:"other"`
}

// CORSConfig defines the CORS configuration.
type CORSConfig struct {
	// Specifies the allowed origin.
	AllowedOrigin string `mapstructure:"allowed-origin"`

	// Specifies the allowed headers.
	AllowedHeaders string `mapstructure:"allowed-headers"`

	// Specifies the allowed methods.
	AllowedMethods string `mapstructure:"allowed-methods"`
}

// AuctionConfig is the on-disk form of the market configuration. Supply
// amounts are decimal strings so they survive viper's number handling.
type AuctionConfig struct {
	Token          string `mapstructure:"token"`
	NumeraireToken string `mapstructure:"numeraire-token"`

	LevelSpacing    int64 `mapstructure:"level-spacing"`
	PriceFloorLevel int64 `mapstructure:"price-floor-level"`

	StartTimeUnix      int64 `mapstructure:"start-time-unix"`
	DurationSeconds    int64 `mapstructure:"duration-seconds"`
	ClaimWindowSeconds int64 `mapstructure:"claim-window-seconds"`

	IncentiveShareBps int64 `mapstructure:"incentive-share-bps"`

	MinimumEligibleSize string `mapstructure:"minimum-eligible-size"`
	TotalAuctionSupply  string `mapstructure:"total-auction-supply"`

	Admin string `mapstructure:"admin"`

	// EnableIncentivesCache caches the bulk payout view after settlement.
	EnableIncentivesCache bool `mapstructure:"enable-incentives-cache"`
}

// MarketConfig converts the on-disk form into the validated immutable market
// configuration.
func (c AuctionConfig) MarketConfig() (MarketConfig, error) {
	minimumSize, ok := osmomath.NewIntFromString(c.MinimumEligibleSize)
	if !ok {
		return MarketConfig{}, MarketConfigError{Field: "minimum_eligible_size", Reason: "not a valid integer: " + c.MinimumEligibleSize}
	}

	totalSupply, ok := osmomath.NewIntFromString(c.TotalAuctionSupply)
	if !ok {
		return MarketConfig{}, MarketConfigError{Field: "total_auction_supply", Reason: "not a valid integer: " + c.TotalAuctionSupply}
	}

	marketConfig := MarketConfig{
		Token:               c.Token,
		NumeraireToken:      c.NumeraireToken,
		LevelSpacing:        c.LevelSpacing,
		PriceFloorLevel:     c.PriceFloorLevel,
		AuctionStartUnix:    c.StartTimeUnix,
		AuctionDuration:     time.Duration(c.DurationSeconds) * time.Second,
		ClaimWindow:         time.Duration(c.ClaimWindowSeconds) * time.Second,
		IncentiveShareBps:   c.IncentiveShareBps,
		MinimumEligibleSize: minimumSize,
		TotalAuctionSupply:  totalSupply,
		Admin:               c.Admin,
	}

	if err := marketConfig.Validate(); err != nil {
		return MarketConfig{}, err
	}

	return marketConfig, nil
}
