package http

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/whetstoneresearch/doppler-sub006/domain"
	"github.com/whetstoneresearch/doppler-sub006/domain/mvc"
	"github.com/whetstoneresearch/doppler-sub006/log"

	"github.com/labstack/echo/v4"
)

type SystemHandler struct {
	logger   log.Logger
	clock    clock.Clock
	AUsecase mvc.AuctionUsecase
	config   domain.Config
}

const (
	// settleGraceSeconds is how long after the auction end the healthcheck
	// tolerates an unsettled auction before reporting unhealthy.
	settleGraceSeconds = 600

	versionPlaceholder    = "version="
	whiteSpacePlaceholder = " "
)

// NewSystemHandler will initialize the /debug/ppof resources endpoint
func NewSystemHandler(e *echo.Echo, config domain.Config, logger log.Logger, us mvc.AuctionUsecase, clk clock.Clock) {
	handler := &SystemHandler{
		logger:   logger,
		clock:    clk,
		AUsecase: us,
		config:   config,
	}

	// if debug mod, enable additional profiles that are too intensive
	// for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	e.GET("/debug/pprof/*", echo.WrapHandler(http.DefaultServeMux))
	e.GET("/debug/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	e.GET("/debug/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	e.GET("/debug/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	e.GET("/debug/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/healthcheck", handler.GetHealthStatus)
	e.GET("/config", handler.GetConfig)
	e.GET("/version", handler.GetVersion)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("docs/swagger.json"), echoSwagger.URL("swagger.yaml")))
}

// GetConfig returns the config for the auction engine service
func (h *SystemHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.config)
}

func (h *SystemHandler) GetVersion(c echo.Context) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read build info")
	}

	for _, setting := range buildInfo.Settings {
		if setting.Key == "-ldflags" {
			version, err := extractVersion(setting.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to extract version information: %v", err))
			}

			return c.JSON(http.StatusOK, version)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "failed to find version information")
}

// extractVersion extracts the version string from the ldflags
func extractVersion(ldFlagsValueStr string) (string, error) {
	index := strings.Index(ldFlagsValueStr, versionPlaceholder)
	if index == -1 {
		return "", fmt.Errorf("no version string found")
	}

	// Extract the substring after version=
	substring := ldFlagsValueStr[index+len(versionPlaceholder):]

	// The version runs until the next whitespace or the end of the flags.
	if index = strings.Index(substring, whiteSpacePlaceholder); index != -1 {
		substring = substring[:index]
	}

	return substring, nil
}

// GetHealthStatus handles health check requests, reporting the auction phase
// against the wall clock.
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	marketConfig := h.AUsecase.GetMarketConfig()
	state := h.AUsecase.GetAuctionState()

	nowUnix := h.clock.Now().Unix()
	endUnix := marketConfig.AuctionEndUnix()

	// allow a grace period after the window closes before claiming the
	// auction is stuck unsettled
	if state.Phase != domain.AuctionPhaseSettled && nowUnix > endUnix+settleGraceSeconds {
		return echo.NewHTTPError(http.StatusServiceUnavailable, fmt.Sprintf("auction ended at %d but is not settled, now (%d), grace (%ds)", endUnix, nowUnix, settleGraceSeconds))
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":              "running",
		"phase":               state.Phase.String(),
		"now_unix":            fmt.Sprint(nowUnix),
		"auction_start_unix":  fmt.Sprint(marketConfig.AuctionStartUnix),
		"auction_end_unix":    fmt.Sprint(endUnix),
		"claim_deadline_unix": fmt.Sprint(state.ClaimDeadlineUnix),
	})
}
