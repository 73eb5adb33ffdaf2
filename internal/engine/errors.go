package engine

import (
	"errors"
	"fmt"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

// CommandError is a typed, recoverable command failure. Failures never abort
// the simulation: they are returned to the command issuer and appended to
// the activity log for player visibility.
type CommandError struct {
	// Code identifies the failure category.
	Code FailureCode

	// Message is a human-readable description, also used in the activity log.
	Message string

	// OrderID identifies the affected order, when the command names one.
	OrderID int64
}

// FailureCode categorizes command failures.
type FailureCode string

const (
	// ErrCodeInsufficientFunds indicates a purchase would drive cash below zero.
	ErrCodeInsufficientFunds FailureCode = "INSUFFICIENT_FUNDS"

	// ErrCodeInsufficientStock indicates the market has no stock for the
	// requested retailer/denomination, or the inventory cannot satisfy a
	// consume request.
	ErrCodeInsufficientStock FailureCode = "INSUFFICIENT_STOCK"

	// ErrCodeUnfulfillableOrder indicates accept-order could not satisfy
	// every requested item; inventory is left unmodified.
	ErrCodeUnfulfillableOrder FailureCode = "UNFULFILLABLE_ORDER"

	// ErrCodeUnknownOrder indicates the order id is not in the active set
	// (already terminal, or never existed).
	ErrCodeUnknownOrder FailureCode = "UNKNOWN_ORDER"

	// ErrCodeInvalidCommand indicates a malformed command (unknown retailer,
	// non-positive quantity). These are caller defects, still recovered.
	ErrCodeInvalidCommand FailureCode = "INVALID_COMMAND"
)

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.OrderID != 0 {
		return fmt.Sprintf("%s: %s (order=%d)", e.Code, e.Message, e.OrderID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCode reports whether err is a CommandError with the given code.
// Uses errors.As to handle wrapped errors.
func IsCode(err error, code FailureCode) bool {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// NewInsufficientFundsError creates the failure for a purchase the player
// cannot afford.
func NewInsufficientFundsError(need, have game.Cents) *CommandError {
	return &CommandError{
		Code:    ErrCodeInsufficientFunds,
		Message: fmt.Sprintf("purchase needs %s but only %s available", need, have),
	}
}

// NewInsufficientStockError creates the failure for an unavailable or
// under-stocked retailer/denomination.
func NewInsufficientStockError(retailerID string, denomination int) *CommandError {
	return &CommandError{
		Code:    ErrCodeInsufficientStock,
		Message: fmt.Sprintf("no stock for %s $%d", retailerID, denomination),
	}
}

// NewUnfulfillableOrderError creates the failure for an accept-order whose
// requested items cannot all be satisfied from inventory.
func NewUnfulfillableOrderError(orderID int64) *CommandError {
	return &CommandError{
		Code:    ErrCodeUnfulfillableOrder,
		Message: "inventory cannot satisfy every requested item",
		OrderID: orderID,
	}
}

// NewUnknownOrderError creates the failure for an order id outside the
// active set.
func NewUnknownOrderError(orderID int64) *CommandError {
	return &CommandError{
		Code:    ErrCodeUnknownOrder,
		Message: "order is not active",
		OrderID: orderID,
	}
}

// NewInvalidCommandError creates the failure for a malformed command.
func NewInvalidCommandError(msg string) *CommandError {
	return &CommandError{Code: ErrCodeInvalidCommand, Message: msg}
}
