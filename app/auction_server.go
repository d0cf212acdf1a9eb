package main

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lightningnetwork/lnd/clock"
	"go.uber.org/zap"

	auctionhttpdelivery "github.com/whetstoneresearch/doppler-sub006/auction/delivery/http"
	auctionrepo "github.com/whetstoneresearch/doppler-sub006/auction/repository"
	auctionusecase "github.com/whetstoneresearch/doppler-sub006/auction/usecase"
	curveusecase "github.com/whetstoneresearch/doppler-sub006/curve/usecase"
	custodyusecase "github.com/whetstoneresearch/doppler-sub006/custody/usecase"

	"github.com/whetstoneresearch/doppler-sub006/domain"
	"github.com/whetstoneresearch/doppler-sub006/domain/cache"
	"github.com/whetstoneresearch/doppler-sub006/domain/mvc"
	"github.com/whetstoneresearch/doppler-sub006/log"
	"github.com/whetstoneresearch/doppler-sub006/middleware"

	systemhttpdelivery "github.com/whetstoneresearch/doppler-sub006/system/delivery/http"
)

// AuctionServer defines an interface for the batch auction server.
// It encapsulates the auction engine together with its custody ledger
// and exposes endpoints for bidding, settlement and incentive claims.
type AuctionServer interface {
	GetAuctionUsecase() mvc.AuctionUsecase
	GetPositionRepository() auctionrepo.PositionRepository
	GetTransferExecutor() domain.TransferExecutor
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type auctionServer struct {
	auctionUsecase     mvc.AuctionUsecase
	positionRepository auctionrepo.PositionRepository
	transferExecutor   domain.TransferExecutor
	e                  *echo.Echo
	address            string
	logger             log.Logger
}

const (
	// This is the custody account that every outgoing transfer of the engine
	// debits. It is funded with the full auction supply at startup.
	escrowAccount = "auction-escrow"

	// Name under which request trace spans are emitted.
	tracerName = "doppler"
)

// GetAuctionUsecase implements AuctionServer.
func (a *auctionServer) GetAuctionUsecase() mvc.AuctionUsecase {
	return a.auctionUsecase
}

// GetPositionRepository implements AuctionServer.
func (a *auctionServer) GetPositionRepository() auctionrepo.PositionRepository {
	return a.positionRepository
}

// GetTransferExecutor implements AuctionServer.
func (a *auctionServer) GetTransferExecutor() domain.TransferExecutor {
	return a.transferExecutor
}

// GetLogger implements AuctionServer.
func (a *auctionServer) GetLogger() log.Logger {
	return a.logger
}

// Shutdown implements AuctionServer.
func (a *auctionServer) Shutdown(ctx context.Context) error {
	return a.e.Shutdown(ctx)
}

// Start implements AuctionServer.
func (a *auctionServer) Start(context.Context) error {
	a.logger.Info("Starting batch auction server", zap.String("address", a.address))
	err := a.e.Start(a.address)
	if err != nil {
		return err
	}

	return nil
}

// NewAuctionServer creates a new batch auction server.
func NewAuctionServer(config domain.Config, logger log.Logger) (AuctionServer, error) {
	// Setup echo server
	e := echo.New()
	corsConfig := config.CORS
	if corsConfig == nil {
		corsConfig = DefaultConfig.CORS
	}
	middleware := middleware.InitMiddleware(corsConfig)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	e.Use(middleware.TraceWithParamsMiddleware(tracerName))

	auctionConfig := config.Auction
	if auctionConfig == nil {
		auctionConfig = DefaultConfig.Auction
	}

	marketConfig, err := auctionConfig.MarketConfig()
	if err != nil {
		return nil, err
	}

	// Create the custody ledger and place the auction supply in escrow.
	ledger := custodyusecase.New(escrowAccount)
	if err := ledger.Fund(marketConfig.Token, escrowAccount, marketConfig.TotalAuctionSupply); err != nil {
		return nil, err
	}
	logger.Info("Escrowed auction supply",
		zap.String("token", marketConfig.Token),
		zap.String("amount", marketConfig.TotalAuctionSupply.String()))

	// Create an incentives cache if enabled.
	// The bulk payout view is recomputed on every request otherwise.
	incentivesCache := cache.CreateIncentivesCache(auctionConfig.EnableIncentivesCache)

	// Initialize position repository and the auction engine on a wall clock.
	positionRepository := auctionrepo.New()
	wallClock := clock.NewDefaultClock()

	auctionUsecase, err := auctionusecase.New(
		marketConfig,
		curveusecase.New(),
		ledger,
		positionRepository,
		incentivesCache,
		wallClock,
		logger,
	)
	if err != nil {
		return nil, err
	}

	// HTTP handlers
	auctionhttpdelivery.NewAuctionHandler(e, auctionUsecase, logger)
	systemhttpdelivery.NewSystemHandler(e, config, logger, auctionUsecase, wallClock)

	go func() {
		logger.Info("Starting profiling server")
		err = http.ListenAndServe("localhost:6062", nil)
		if err != nil {
			panic(err)
		}
	}()

	return &auctionServer{
		auctionUsecase:     auctionUsecase,
		positionRepository: positionRepository,
		transferExecutor:   ledger,
		logger:             logger,
		e:                  e,
		address:            config.ServerAddress,
	}, nil
}
