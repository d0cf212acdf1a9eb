package types

import (
	"fmt"
	"net/http"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/whetstoneresearch/doppler-sub006/domain"
)

// InvalidLevelError represents an error when a bid level is off the price axis.
type InvalidLevelError struct {
	Level      int64
	Spacing    int64
	FloorLevel int64
}

// Error implements the error interface.
func (e InvalidLevelError) Error() string {
	return fmt.Sprintf("level %d is invalid: must be a multiple of %d and at or above the floor %d", e.Level, e.Spacing, e.FloorLevel)
}

// StatusCode implements domain.StatusCoder.
func (e InvalidLevelError) StatusCode() int {
	return http.StatusBadRequest
}

// InvalidSizeError represents an error when a bid size is zero or negative.
type InvalidSizeError struct {
	Size osmomath.Int
}

// Error implements the error interface.
func (e InvalidSizeError) Error() string {
	return fmt.Sprintf("bid size must be positive, got %s", e.Size)
}

// StatusCode implements domain.StatusCoder.
func (e InvalidSizeError) StatusCode() int {
	return http.StatusBadRequest
}

// BidTooSmallError represents an error when a bid is below the minimum
// eligible size.
type BidTooSmallError struct {
	Size        osmomath.Int
	MinimumSize osmomath.Int
}

// Error implements the error interface.
func (e BidTooSmallError) Error() string {
	return fmt.Sprintf("bid size %s is below the minimum eligible size %s", e.Size, e.MinimumSize)
}

// StatusCode implements domain.StatusCoder.
func (e BidTooSmallError) StatusCode() int {
	return http.StatusBadRequest
}

// AuctionNotStartedError represents an error when an operation arrives before
// the auction window opens.
type AuctionNotStartedError struct {
	NowUnix   int64
	StartUnix int64
}

// Error implements the error interface.
func (e AuctionNotStartedError) Error() string {
	return fmt.Sprintf("auction has not started: now %d, starts at %d", e.NowUnix, e.StartUnix)
}

// StatusCode implements domain.StatusCoder.
func (e AuctionNotStartedError) StatusCode() int {
	return http.StatusConflict
}

// AuctionEndedError represents an error when a bid arrives after the auction
// window has closed.
type AuctionEndedError struct {
	NowUnix int64
	EndUnix int64
}

// Error implements the error interface.
func (e AuctionEndedError) Error() string {
	return fmt.Sprintf("auction has ended: now %d, ended at %d", e.NowUnix, e.EndUnix)
}

// StatusCode implements domain.StatusCoder.
func (e AuctionEndedError) StatusCode() int {
	return http.StatusConflict
}

// AuctionNotEndedError represents an error when settlement is attempted
// before the auction window has closed.
type AuctionNotEndedError struct {
	NowUnix int64
	EndUnix int64
}

// Error implements the error interface.
func (e AuctionNotEndedError) Error() string {
	return fmt.Sprintf("auction has not ended: now %d, ends at %d", e.NowUnix, e.EndUnix)
}

// StatusCode implements domain.StatusCoder.
func (e AuctionNotEndedError) StatusCode() int {
	return http.StatusConflict
}

// AuctionNotSettledError represents an error when a post-settlement operation
// arrives while the auction is still in an earlier phase.
type AuctionNotSettledError struct {
	Phase domain.AuctionPhase
}

// Error implements the error interface.
func (e AuctionNotSettledError) Error() string {
	return fmt.Sprintf("auction is not settled, current phase %s", e.Phase)
}

// StatusCode implements domain.StatusCoder.
func (e AuctionNotSettledError) StatusCode() int {
	return http.StatusConflict
}

// AuctionAlreadySettledError represents an error when an Active-phase
// operation arrives after settlement.
type AuctionAlreadySettledError struct{}

// Error implements the error interface.
func (e AuctionAlreadySettledError) Error() string {
	return "auction is already settled"
}

// StatusCode implements domain.StatusCoder.
func (e AuctionAlreadySettledError) StatusCode() int {
	return http.StatusConflict
}

// PositionNotFoundError represents an error when a position identifier is
// unknown.
type PositionNotFoundError struct {
	PositionID uint64
}

// Error implements the error interface.
func (e PositionNotFoundError) Error() string {
	return fmt.Sprintf("position %d not found", e.PositionID)
}

// StatusCode implements domain.StatusCoder.
func (e PositionNotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// NotPositionOwnerError represents an error when the caller does not own the
// position it is acting on.
type NotPositionOwnerError struct {
	PositionID uint64
	Caller     string
}

// Error implements the error interface.
func (e NotPositionOwnerError) Error() string {
	return fmt.Sprintf("caller %s does not own position %d", e.Caller, e.PositionID)
}

// StatusCode implements domain.StatusCoder.
func (e NotPositionOwnerError) StatusCode() int {
	return http.StatusForbidden
}

// PositionInRangeError represents an error when removal is attempted on a
// position whose interval is inside the clearing range.
type PositionInRangeError struct {
	PositionID uint64
	Level      int64
}

// Error implements the error interface.
func (e PositionInRangeError) Error() string {
	return fmt.Sprintf("position %d at level %d is in range and locked until it exits range or the auction settles", e.PositionID, e.Level)
}

// StatusCode implements domain.StatusCoder.
func (e PositionInRangeError) StatusCode() int {
	return http.StatusConflict
}

// PartialRemovalError represents an error when less than the full remaining
// size is removed while the auction is Active.
type PartialRemovalError struct {
	PositionID uint64
	Requested  osmomath.Int
	Remaining  osmomath.Int
}

// Error implements the error interface.
func (e PartialRemovalError) Error() string {
	return fmt.Sprintf("position %d holds %s; only full-size removal is allowed while the auction is active, requested %s", e.PositionID, e.Remaining, e.Requested)
}

// StatusCode implements domain.StatusCoder.
func (e PartialRemovalError) StatusCode() int {
	return http.StatusConflict
}

// InvalidRemovalSizeError represents an error when the removal size is zero,
// negative, or exceeds the position's remaining size.
type InvalidRemovalSizeError struct {
	PositionID uint64
	Requested  osmomath.Int
	Remaining  osmomath.Int
}

// Error implements the error interface.
func (e InvalidRemovalSizeError) Error() string {
	return fmt.Sprintf("removal size %s is invalid for position %d with remaining size %s", e.Requested, e.PositionID, e.Remaining)
}

// StatusCode implements domain.StatusCoder.
func (e InvalidRemovalSizeError) StatusCode() int {
	return http.StatusBadRequest
}

// PositionRemovedError represents an error when acting on a fully removed
// position.
type PositionRemovedError struct {
	PositionID uint64
}

// Error implements the error interface.
func (e PositionRemovedError) Error() string {
	return fmt.Sprintf("position %d is fully removed", e.PositionID)
}

// StatusCode implements domain.StatusCoder.
func (e PositionRemovedError) StatusCode() int {
	return http.StatusConflict
}

// AlreadyClaimedError represents an error on a second claim for the same
// position.
type AlreadyClaimedError struct {
	PositionID uint64
}

// Error implements the error interface.
func (e AlreadyClaimedError) Error() string {
	return fmt.Sprintf("incentives for position %d have already been claimed", e.PositionID)
}

// StatusCode implements domain.StatusCoder.
func (e AlreadyClaimedError) StatusCode() int {
	return http.StatusConflict
}

// ClaimWindowClosedError represents an error when a claim arrives past the
// claim deadline.
type ClaimWindowClosedError struct {
	NowUnix      int64
	DeadlineUnix int64
}

// Error implements the error interface.
func (e ClaimWindowClosedError) Error() string {
	return fmt.Sprintf("claim window closed at %d, now %d", e.DeadlineUnix, e.NowUnix)
}

// StatusCode implements domain.StatusCoder.
func (e ClaimWindowClosedError) StatusCode() int {
	return http.StatusConflict
}

// ClaimWindowOpenError represents an error when a sweep arrives before the
// claim deadline has passed.
type ClaimWindowOpenError struct {
	NowUnix      int64
	DeadlineUnix int64
}

// Error implements the error interface.
func (e ClaimWindowOpenError) Error() string {
	return fmt.Sprintf("claim window is open until %d, now %d", e.DeadlineUnix, e.NowUnix)
}

// StatusCode implements domain.StatusCoder.
func (e ClaimWindowOpenError) StatusCode() int {
	return http.StatusConflict
}

// NothingToClaimError represents an error when a position has no incentive
// share to claim.
type NothingToClaimError struct {
	PositionID uint64
}

// Error implements the error interface.
func (e NothingToClaimError) Error() string {
	return fmt.Sprintf("position %d has no incentives to claim", e.PositionID)
}

// StatusCode implements domain.StatusCoder.
func (e NothingToClaimError) StatusCode() int {
	return http.StatusConflict
}

// RecoveryBlockedError represents an error when recovery is attempted after
// someone earned weighted time.
type RecoveryBlockedError struct {
	CachedTotalWeightedTime osmomath.Int
}

// Error implements the error interface.
func (e RecoveryBlockedError) Error() string {
	return fmt.Sprintf("incentive recovery is permanently blocked: total weighted time %s is nonzero", e.CachedTotalWeightedTime)
}

// StatusCode implements domain.StatusCoder.
func (e RecoveryBlockedError) StatusCode() int {
	return http.StatusConflict
}

// AlreadyRecoveredError represents an error on a second incentive recovery.
type AlreadyRecoveredError struct{}

// Error implements the error interface.
func (e AlreadyRecoveredError) Error() string {
	return "incentives have already been recovered"
}

// StatusCode implements domain.StatusCoder.
func (e AlreadyRecoveredError) StatusCode() int {
	return http.StatusConflict
}

// NothingToSweepError represents an error when no unclaimed incentives
// remain to sweep.
type NothingToSweepError struct{}

// Error implements the error interface.
func (e NothingToSweepError) Error() string {
	return "no unclaimed incentives remain"
}

// StatusCode implements domain.StatusCoder.
func (e NothingToSweepError) StatusCode() int {
	return http.StatusConflict
}

// AlreadySweptError represents an error on a second sweep.
type AlreadySweptError struct{}

// Error implements the error interface.
func (e AlreadySweptError) Error() string {
	return "unclaimed incentives have already been swept"
}

// StatusCode implements domain.StatusCoder.
func (e AlreadySweptError) StatusCode() int {
	return http.StatusConflict
}

// AlreadyMigratedError represents an error on a second migration.
type AlreadyMigratedError struct{}

// Error implements the error interface.
func (e AlreadyMigratedError) Error() string {
	return "auction proceeds have already been migrated"
}

// StatusCode implements domain.StatusCoder.
func (e AlreadyMigratedError) StatusCode() int {
	return http.StatusConflict
}

// NotAdminError represents an error when an admin-gated operation is called
// by someone else.
type NotAdminError struct {
	Caller string
}

// Error implements the error interface.
func (e NotAdminError) Error() string {
	return fmt.Sprintf("caller %s is not the auction admin", e.Caller)
}

// StatusCode implements domain.StatusCoder.
func (e NotAdminError) StatusCode() int {
	return http.StatusForbidden
}

// CurveQuoteError represents an error bubbled up from the curve while
// quoting.
type CurveQuoteError struct {
	Err error
}

// Error implements the error interface.
func (e CurveQuoteError) Error() string {
	return fmt.Sprintf("curve quote failed: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e CurveQuoteError) Unwrap() error {
	return e.Err
}

// StatusCode implements domain.StatusCoder.
func (e CurveQuoteError) StatusCode() int {
	return http.StatusInternalServerError
}

// CurveExecuteError represents an error bubbled up from the curve during the
// settlement execution.
type CurveExecuteError struct {
	Err error
}

// Error implements the error interface.
func (e CurveExecuteError) Error() string {
	return fmt.Sprintf("curve execution failed: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e CurveExecuteError) Unwrap() error {
	return e.Err
}

// StatusCode implements domain.StatusCoder.
func (e CurveExecuteError) StatusCode() int {
	return http.StatusInternalServerError
}

// TransferFailedError represents an error bubbled up from the transfer
// executor.
type TransferFailedError struct {
	Token string
	To    string
	Err   error
}

// Error implements the error interface.
func (e TransferFailedError) Error() string {
	return fmt.Sprintf("transfer of %s to %s failed: %v", e.Token, e.To, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e TransferFailedError) Unwrap() error {
	return e.Err
}

// StatusCode implements domain.StatusCoder.
func (e TransferFailedError) StatusCode() int {
	return http.StatusInternalServerError
}
