package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/whetstoneresearch/doppler-sub006/auction/types"
	deliveryhttp "github.com/whetstoneresearch/doppler-sub006/delivery/http"
	"github.com/whetstoneresearch/doppler-sub006/domain"
	"github.com/whetstoneresearch/doppler-sub006/domain/mvc"
	"github.com/whetstoneresearch/doppler-sub006/log"
)

// AuctionHandler represent the httphandler for the auction
type AuctionHandler struct {
	AUsecase mvc.AuctionUsecase
	logger   log.Logger
}

const auctionResource = "/auction"

func formatAuctionResource(resource string) string {
	return auctionResource + resource
}

// NewAuctionHandler will initialize the auction/ resources endpoint
func NewAuctionHandler(e *echo.Echo, us mvc.AuctionUsecase, logger log.Logger) {
	handler := &AuctionHandler{
		AUsecase: us,
		logger:   logger,
	}
	e.POST(formatAuctionResource("/bids"), handler.PlaceBid)
	e.POST(formatAuctionResource("/bids/:id/remove"), handler.RemoveBid)
	e.POST(formatAuctionResource("/bids/:id/reduce"), handler.ReduceBid)
	e.POST(formatAuctionResource("/settle"), handler.SettleAuction)
	e.POST(formatAuctionResource("/positions/:id/claim"), handler.ClaimIncentives)
	e.POST(formatAuctionResource("/incentives/recover"), handler.RecoverIncentives)
	e.POST(formatAuctionResource("/incentives/sweep"), handler.SweepUnclaimedIncentives)
	e.POST(formatAuctionResource("/migrate"), handler.Migrate)
	e.GET(formatAuctionResource("/state"), handler.GetAuctionState)
	e.GET(formatAuctionResource("/config"), handler.GetMarketConfig)
	e.GET(formatAuctionResource("/positions"), handler.GetPositionsByOwner)
	e.GET(formatAuctionResource("/positions/:id"), handler.GetPosition)
	e.GET(formatAuctionResource("/positions/:id/incentives"), handler.GetPositionIncentives)
	e.GET(formatAuctionResource("/incentives"), handler.GetAllIncentives)
	e.GET(formatAuctionResource("/levels"), handler.GetLevels)
	e.GET(formatAuctionResource("/clearing"), handler.GetClearing)
}

// @Summary Place a bid
// @Description Registers liquidity for the given owner over the price interval starting at lower_level.
// @Description The level must sit on the grid at or above the price floor and the size must meet the minimum eligible size.
// @ID place-bid
// @Produce  json
// @Param  request  body  types.PlaceBidRequest  true  "The bid to place. Size is an integer string."
// @Success 200  {object}  types.PlaceBidResponse  "The identifier of the new position"
// @Router /auction/bids [post]
func (a *AuctionHandler) PlaceBid(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.PlaceBidRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	positionID, err := a.AUsecase.PlaceBid(ctx, req.Owner, *req.LowerLevel, req.Size)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, types.PlaceBidResponse{PositionID: positionID})
}

// @Summary Remove a bid
// @Description Removes the position's entire remaining size. While the auction is active a position
// @Description whose interval participates in the clearing range cannot be removed.
// @ID remove-bid
// @Produce  json
// @Param  id  path  int  true  "The position identifier"
// @Param  request  body  types.RemoveBidRequest  true  "The owner of the position"
// @Success 200  {object}  types.PositionResponse  "The removed position"
// @Router /auction/bids/{id}/remove [post]
func (a *AuctionHandler) RemoveBid(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.RemoveBidRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.AUsecase.RemoveBid(ctx, req.Owner, req.PositionID); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return a.replyPosition(c, req.PositionID)
}

// @Summary Reduce a bid
// @Description Removes part of the position's size. Partial removal is only allowed once the auction
// @Description has settled.
// @ID reduce-bid
// @Produce  json
// @Param  id  path  int  true  "The position identifier"
// @Param  request  body  types.ReduceBidRequest  true  "The owner and the size to remove. Size is an integer string."
// @Success 200  {object}  types.PositionResponse  "The reduced position"
// @Router /auction/bids/{id}/reduce [post]
func (a *AuctionHandler) ReduceBid(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.ReduceBidRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.AUsecase.ReduceBid(ctx, req.Owner, req.PositionID, req.Size); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return a.replyPosition(c, req.PositionID)
}

// @Summary Settle the auction
// @Description Performs the one real execution against the curve, fixes the clearing level and opens
// @Description the claim window. Callable by anyone once the auction window has closed.
// @ID settle-auction
// @Produce  json
// @Success 200  {object}  domain.AuctionState  "The settled auction state"
// @Router /auction/settle [post]
func (a *AuctionHandler) SettleAuction(c echo.Context) error {
	ctx := c.Request().Context()

	if err := a.AUsecase.SettleAuction(ctx); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, a.AUsecase.GetAuctionState())
}

// @Summary Claim incentives
// @Description Pays out the position's incentive share to its owner. Claims are only accepted between
// @Description settlement and the claim deadline.
// @ID claim-incentives
// @Produce  json
// @Param  id  path  int  true  "The position identifier"
// @Param  request  body  types.ClaimIncentivesRequest  true  "The caller, who must own the position"
// @Success 200  {object}  types.PositionIncentivesResponse  "The paid out amount"
// @Router /auction/positions/{id}/claim [post]
func (a *AuctionHandler) ClaimIncentives(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.ClaimIncentivesRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.AUsecase.ClaimIncentives(ctx, req.Caller, req.PositionID); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, types.PositionIncentivesResponse{
		PositionID: req.PositionID,
		Amount:     a.AUsecase.CalculateIncentives(req.PositionID),
		Claimed:    true,
	})
}

// @Summary Recover the incentive pool
// @Description Returns the whole incentive pool to the recipient. Admin only, permitted once, and only
// @Description when no weighted time was ever recorded.
// @ID recover-incentives
// @Produce  json
// @Param  request  body  types.AdminTransferRequest  true  "The caller and the recipient of the pool"
// @Success 200  {object}  domain.AuctionState  "The auction state after recovery"
// @Router /auction/incentives/recover [post]
func (a *AuctionHandler) RecoverIncentives(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.AdminTransferRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.AUsecase.RecoverIncentives(ctx, req.Caller, req.Recipient); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, a.AUsecase.GetAuctionState())
}

// @Summary Sweep unclaimed incentives
// @Description Transfers whatever incentives remain after the claim deadline to the recipient. Admin
// @Description only, permitted once.
// @ID sweep-unclaimed-incentives
// @Produce  json
// @Param  request  body  types.AdminTransferRequest  true  "The caller and the recipient of the remainder"
// @Success 200  {object}  domain.AuctionState  "The auction state after the sweep"
// @Router /auction/incentives/sweep [post]
func (a *AuctionHandler) SweepUnclaimedIncentives(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.AdminTransferRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.AUsecase.SweepUnclaimedIncentives(ctx, req.Caller, req.Recipient); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, a.AUsecase.GetAuctionState())
}

// @Summary Migrate the proceeds
// @Description Transfers the sale proceeds and the unsold supply to the recipient. Admin only,
// @Description permitted once, after settlement.
// @ID migrate
// @Produce  json
// @Param  request  body  types.AdminTransferRequest  true  "The caller and the recipient of the proceeds"
// @Success 200  {object}  domain.AuctionState  "The auction state after migration"
// @Router /auction/migrate [post]
func (a *AuctionHandler) Migrate(c echo.Context) error {
	ctx := c.Request().Context()

	var req types.AdminTransferRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	if err := a.AUsecase.Migrate(ctx, req.Caller, req.Recipient); err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, a.AUsecase.GetAuctionState())
}

// @Summary Auction state
// @Description Returns a snapshot of the aggregate auction state.
// @ID get-auction-state
// @Produce  json
// @Success 200  {object}  domain.AuctionState  "The auction state"
// @Router /auction/state [get]
func (a *AuctionHandler) GetAuctionState(c echo.Context) error {
	return c.JSON(http.StatusOK, a.AUsecase.GetAuctionState())
}

// @Summary Market configuration
// @Description Returns the immutable market configuration.
// @ID get-market-config
// @Produce  json
// @Success 200  {object}  domain.MarketConfig  "The market configuration"
// @Router /auction/config [get]
func (a *AuctionHandler) GetMarketConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, a.AUsecase.GetMarketConfig())
}

// @Summary Positions by owner
// @Description Returns all positions ever opened by the owner together with the owner's aggregate
// @Description registered liquidity.
// @ID get-positions-by-owner
// @Produce  json
// @Param  owner  query  string  true  "The owner of the positions"
// @Success 200  {object}  types.OwnerPositionsResponse  "The owner's positions"
// @Router /auction/positions [get]
func (a *AuctionHandler) GetPositionsByOwner(c echo.Context) error {
	owner := c.QueryParam("owner")
	if owner == "" {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: types.ErrOwnerNotSpecified.Error()})
	}

	return c.JSON(http.StatusOK, types.OwnerPositionsResponse{
		Owner:          owner,
		TotalLiquidity: a.AUsecase.GetOwnerLiquidity(owner),
		Positions:      a.AUsecase.GetPositionsByOwner(owner),
	})
}

// @Summary Position by id
// @Description Returns the position together with its current range status.
// @ID get-position
// @Produce  json
// @Param  id  path  int  true  "The position identifier"
// @Success 200  {object}  types.PositionResponse  "The position"
// @Router /auction/positions/{id} [get]
func (a *AuctionHandler) GetPosition(c echo.Context) error {
	positionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: types.ErrPositionIDNotValid.Error()})
	}

	return a.replyPosition(c, positionID)
}

// @Summary Position incentives
// @Description Returns the position's incentive payout. The amount is zero before settlement.
// @ID get-position-incentives
// @Produce  json
// @Param  id  path  int  true  "The position identifier"
// @Success 200  {object}  types.PositionIncentivesResponse  "The position's incentive payout"
// @Router /auction/positions/{id}/incentives [get]
func (a *AuctionHandler) GetPositionIncentives(c echo.Context) error {
	positionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: types.ErrPositionIDNotValid.Error()})
	}

	position, err := a.AUsecase.GetPosition(positionID)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, types.PositionIncentivesResponse{
		PositionID: positionID,
		Amount:     a.AUsecase.CalculateIncentives(positionID),
		Claimed:    position.HasClaimedIncentive,
	})
}

// @Summary All incentives
// @Description Returns the incentive payout for every position ever opened, keyed by position
// @Description identifier.
// @ID get-all-incentives
// @Produce  json
// @Success 200  {object}  map[uint64]string  "Payouts keyed by position identifier"
// @Router /auction/incentives [get]
func (a *AuctionHandler) GetAllIncentives(c echo.Context) error {
	ctx := c.Request().Context()

	incentives, err := a.AUsecase.CalculateAllIncentives(ctx)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, incentives)
}

// @Summary Level liquidity
// @Description Returns the per-level liquidity view of the book. With the level query parameter set,
// @Description returns that single level instead.
// @ID get-levels
// @Produce  json
// @Param  level  query  int  false  "A single level to query"
// @Success 200  {object}  types.LevelsResponse  "The per-level liquidity view"
// @Router /auction/levels [get]
func (a *AuctionHandler) GetLevels(c echo.Context) error {
	if levelStr := c.QueryParam("level"); levelStr != "" {
		level, err := strconv.ParseInt(levelStr, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: types.ErrLevelNotValid.Error()})
		}

		return c.JSON(http.StatusOK, types.LevelLiquidity{Level: level, Liquidity: a.AUsecase.LiquidityAtLevel(level)})
	}

	lowerBound, upperBound, hasActive := a.AUsecase.ActiveLevelBounds()
	response := types.LevelsResponse{
		ActiveLevelCount: a.AUsecase.ActiveLevelCount(),
		LowerBound:       lowerBound,
		UpperBound:       upperBound,
		HasActive:        hasActive,
	}
	if hasActive {
		spacing := a.AUsecase.GetMarketConfig().LevelSpacing
		for level := lowerBound; level <= upperBound; level += spacing {
			liquidity := a.AUsecase.LiquidityAtLevel(level)
			if liquidity.IsZero() {
				continue
			}
			response.Levels = append(response.Levels, types.LevelLiquidity{Level: level, Liquidity: liquidity})
		}
	}

	return c.JSON(http.StatusOK, response)
}

// @Summary Clearing levels
// @Description Returns the current clearing estimate and, once settled, the final clearing level.
// @ID get-clearing
// @Produce  json
// @Success 200  {object}  types.ClearingResponse  "The clearing estimate and final level"
// @Router /auction/clearing [get]
func (a *AuctionHandler) GetClearing(c echo.Context) error {
	estimatedLevel, hasEstimate := a.AUsecase.EstimatedClearingLevel()
	clearingLevel, settled := a.AUsecase.ClearingLevel()

	return c.JSON(http.StatusOK, types.ClearingResponse{
		EstimatedClearingLevel: estimatedLevel,
		HasEstimate:            hasEstimate,
		ClearingLevel:          clearingLevel,
		Settled:                settled,
	})
}

// replyPosition writes the position with the given id as a PositionResponse.
func (a *AuctionHandler) replyPosition(c echo.Context, positionID uint64) error {
	position, err := a.AUsecase.GetPosition(positionID)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	inRange, err := a.AUsecase.IsInRange(positionID)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, types.PositionResponse{Position: position, InRange: inRange})
}
