package types

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// Handler Errors
var (
	ErrOwnerNotSpecified      = errors.New("owner is required")
	ErrCallerNotSpecified     = errors.New("caller is required")
	ErrRecipientNotSpecified  = errors.New("recipient is required")
	ErrLowerLevelNotSpecified = errors.New("lower_level is required")
	ErrSizeNotSpecified       = errors.New("size is required")
	ErrPositionIDNotValid     = errors.New("position ID must be integer")
	ErrLevelNotValid          = errors.New("level must be integer")
	ErrRequestBodyNotValid    = errors.New("request body is invalid")
)

// unmarshalBody reads the request body and unmarshals it into v.
func unmarshalBody(c echo.Context, v interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return ErrRequestBodyNotValid
	}
	if err := json.Unmarshal(body, v); err != nil {
		return ErrRequestBodyNotValid
	}
	return nil
}

// positionIDFromPath parses the :id path parameter.
func positionIDFromPath(c echo.Context) (uint64, error) {
	positionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, ErrPositionIDNotValid
	}
	return positionID, nil
}

// PlaceBidRequest represents the bid placement request for the
// POST /auction/bids endpoint.
type PlaceBidRequest struct {
	Owner string `json:"owner"`
	// LowerLevel is a pointer so that an absent field is distinguishable from
	// a bid at level zero.
	LowerLevel *int64       `json:"lower_level"`
	Size       osmomath.Int `json:"size"`
}

func (r *PlaceBidRequest) UnmarshalHTTPRequest(c echo.Context) error {
	return unmarshalBody(c, r)
}

// Validate validates the PlaceBidRequest.
func (r *PlaceBidRequest) Validate() error {
	if r.Owner == "" {
		return ErrOwnerNotSpecified
	}
	if r.LowerLevel == nil {
		return ErrLowerLevelNotSpecified
	}
	if r.Size.IsNil() {
		return ErrSizeNotSpecified
	}
	return nil
}

// RemoveBidRequest represents the full removal request for the
// POST /auction/bids/:id/remove endpoint.
type RemoveBidRequest struct {
	Owner      string `json:"owner"`
	PositionID uint64 `json:"-"`
}

func (r *RemoveBidRequest) UnmarshalHTTPRequest(c echo.Context) error {
	positionID, err := positionIDFromPath(c)
	if err != nil {
		return err
	}
	r.PositionID = positionID

	return unmarshalBody(c, r)
}

// Validate validates the RemoveBidRequest.
func (r *RemoveBidRequest) Validate() error {
	if r.Owner == "" {
		return ErrOwnerNotSpecified
	}
	return nil
}

// ReduceBidRequest represents the partial removal request for the
// POST /auction/bids/:id/reduce endpoint.
type ReduceBidRequest struct {
	Owner      string       `json:"owner"`
	Size       osmomath.Int `json:"size"`
	PositionID uint64       `json:"-"`
}

func (r *ReduceBidRequest) UnmarshalHTTPRequest(c echo.Context) error {
	positionID, err := positionIDFromPath(c)
	if err != nil {
		return err
	}
	r.PositionID = positionID

	return unmarshalBody(c, r)
}

// Validate validates the ReduceBidRequest.
func (r *ReduceBidRequest) Validate() error {
	if r.Owner == "" {
		return ErrOwnerNotSpecified
	}
	if r.Size.IsNil() {
		return ErrSizeNotSpecified
	}
	return nil
}

// ClaimIncentivesRequest represents the claim request for the
// POST /auction/positions/:id/claim endpoint.
type ClaimIncentivesRequest struct {
	Caller     string `json:"caller"`
	PositionID uint64 `json:"-"`
}

func (r *ClaimIncentivesRequest) UnmarshalHTTPRequest(c echo.Context) error {
	positionID, err := positionIDFromPath(c)
	if err != nil {
		return err
	}
	r.PositionID = positionID

	return unmarshalBody(c, r)
}

// Validate validates the ClaimIncentivesRequest.
func (r *ClaimIncentivesRequest) Validate() error {
	if r.Caller == "" {
		return ErrCallerNotSpecified
	}
	return nil
}

// AdminTransferRequest represents the request body shared by the
// POST /auction/incentives/recover, POST /auction/incentives/sweep and
// POST /auction/migrate endpoints.
type AdminTransferRequest struct {
	Caller    string `json:"caller"`
	Recipient string `json:"recipient"`
}

func (r *AdminTransferRequest) UnmarshalHTTPRequest(c echo.Context) error {
	return unmarshalBody(c, r)
}

// Validate validates the AdminTransferRequest.
func (r *AdminTransferRequest) Validate() error {
	if r.Caller == "" {
		return ErrCallerNotSpecified
	}
	if r.Recipient == "" {
		return ErrRecipientNotSpecified
	}
	return nil
}
