package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Action errors
	ErrMsgInvalidAction = "invalid action"
	ErrMsgNothingToSell = "you don't have any fruits to sell"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgAlreadyOwned      = "already owned"

	// Redeem errors
	ErrMsgAlreadyRedeemed = "code already used"
	ErrMsgInvalidCode     = "invalid code"

	// Profile errors
	ErrMsgProfileRequired = "profile setup required"
	ErrMsgProfileExists   = "profile already completed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Detail messages attached to ErrInvalidAction
const (
	ErrMsgPlotOccupied       = "plot is already planted"
	ErrMsgPlotEmpty          = "nothing planted here"
	ErrMsgPlotOutOfRange     = "plot does not exist"
	ErrMsgNotReady           = "wait for growth"
	ErrMsgNoWateringNeeded   = "plant does not need watering"
	ErrMsgNoSeedsLeft        = "no seeds left"
	ErrMsgUnknownSeed        = "unknown seed"
	ErrMsgUnknownGear        = "unknown gear"
	ErrMsgUnknownFruit       = "unknown fruit"
	ErrMsgGearNotOwned       = "you do not own"
	ErrMsgGearNotApplicable  = "cannot be applied to a plot"
	ErrMsgNoFruitInInventory = "no fruit in inventory"
	ErrMsgEmptyCode          = "please enter a code"
)

// Common domain errors
// Every game operation fails with one of these, wrapped with
// fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidAction = errors.New(ErrMsgInvalidAction)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrAlreadyOwned      = errors.New(ErrMsgAlreadyOwned)

	ErrAlreadyRedeemed = errors.New(ErrMsgAlreadyRedeemed)
	ErrInvalidCode     = errors.New(ErrMsgInvalidCode)

	ErrProfileRequired = errors.New(ErrMsgProfileRequired)
	ErrProfileExists   = errors.New(ErrMsgProfileExists)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// ErrNothingToSell is the reported no-op of selling with an empty fruit basket.
	ErrNothingToSell = fmt.Errorf("%w: %s", ErrInvalidAction, ErrMsgNothingToSell)
)
