package domain

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a ledger rejection
type ErrorCode string

const (
	CodeWrongOwner          ErrorCode = "WrongOwner"
	CodeTokenIsBurned       ErrorCode = "TokenIsBurned"
	CodeTokenIsMoved        ErrorCode = "TokenIsMoved"
	CodeAlreadyStaked       ErrorCode = "AlreadyStaked"
	CodeNotEnoughFunds      ErrorCode = "NotEnoughFundsInTheContract"
	CodeInvalidQueryRange   ErrorCode = "InvalidQueryRange"
	CodeContractsNotAllowed ErrorCode = "ContractsNotAllowed"
)

// LedgerError is a rejection of a ledger call. ItemID names the first offending item, when there is one.
type LedgerError struct {
	Code   ErrorCode
	ItemID ItemID
}

func (e *LedgerError) Error() string {
	if e.ItemID == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s(%s)", e.Code, e.ItemID)
}

// Is matches any LedgerError with the same code, so errors.Is(err, ErrWrongOwner) ignores the item id
func (e *LedgerError) Is(target error) bool {
	var t *LedgerError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrWrongOwner          = &LedgerError{Code: CodeWrongOwner}
	ErrTokenIsBurned       = &LedgerError{Code: CodeTokenIsBurned}
	ErrTokenIsMoved        = &LedgerError{Code: CodeTokenIsMoved}
	ErrAlreadyStaked       = &LedgerError{Code: CodeAlreadyStaked}
	ErrNotEnoughFunds      = &LedgerError{Code: CodeNotEnoughFunds}
	ErrInvalidQueryRange   = &LedgerError{Code: CodeInvalidQueryRange}
	ErrContractsNotAllowed = &LedgerError{Code: CodeContractsNotAllowed}
)

// WrongOwner reports that the caller is not, or never was, the owner of id
func WrongOwner(id ItemID) error { return &LedgerError{Code: CodeWrongOwner, ItemID: id} }

// TokenIsBurned reports that id no longer exists in the registry
func TokenIsBurned(id ItemID) error { return &LedgerError{Code: CodeTokenIsBurned, ItemID: id} }

// TokenIsMoved reports that a previously live stake of id is no longer live
func TokenIsMoved(id ItemID) error { return &LedgerError{Code: CodeTokenIsMoved, ItemID: id} }

// AlreadyStaked reports that id already has a live stake
func AlreadyStaked(id ItemID) error { return &LedgerError{Code: CodeAlreadyStaked, ItemID: id} }

// AsLedgerError extracts the LedgerError from err, if any
func AsLedgerError(err error) (*LedgerError, bool) {
	var le *LedgerError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

var (
	// ErrInsufficientBalance is returned by balance transfers that would overdraw the sender
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when an amount is negative or missing
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrStakeRecordNotFound is returned when an item was never staked
	ErrStakeRecordNotFound = errors.New("stake record not found")

	// ErrDepositNotSupported is returned when the reward pool cannot be credited by the ledger
	ErrDepositNotSupported = errors.New("deposits are not supported by this reward pool")

	// ErrPayoutReverted is returned when an on-chain payout was mined and reverted
	ErrPayoutReverted = errors.New("payout reverted")
)
