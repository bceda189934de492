package treasury

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-staker/internal/store"
)

// Mode selects the reward pool implementation
type Mode string

const (
	// ModeLedger keeps reward balances in the ledger database
	ModeLedger Mode = "ledger"
	// ModeERC20 pays rewards in an ERC20 token held by the pool signer
	ModeERC20 Mode = "erc20"
)

// IsValidMode checks if a pool mode is known
func IsValidMode(mode Mode) bool {
	return mode == ModeLedger || mode == ModeERC20
}

// Payout describes a completed transfer out of the pool
type Payout struct {
	To     common.Address
	Amount *big.Int
	// TxHash is set when the payout was sent on chain
	TxHash string
	// Pending is set when the transfer was sent but its receipt could not be confirmed.
	// The payout still counts as made.
	Pending bool
}

// Pool is the reward pool the ledger pays harvests and withdrawals from.
// Every method takes the store of the ledger transaction it runs in.
//
//go:generate mockgen -source=treasury.go -destination=../mocks/treasury.go -package=mocks -mock_names=Pool=MockPool
type Pool interface {
	// Address returns the account holding the pool
	Address() common.Address
	// Balance returns the amount available for payouts
	Balance(ctx context.Context, tx store.Store) (*big.Int, error)
	// BalanceOf returns the reward balance of any holder
	BalanceOf(ctx context.Context, tx store.Store, holder common.Address) (*big.Int, error)
	// Payout moves amount out of the pool, failing with domain.ErrNotEnoughFunds when the pool is short
	Payout(ctx context.Context, tx store.Store, to common.Address, amount *big.Int) (*Payout, error)
	// Deposit credits the pool, failing with domain.ErrDepositNotSupported for on-chain pools
	Deposit(ctx context.Context, tx store.Store, from common.Address, amount *big.Int) error
}

func validateAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("invalid amount: %v", amount)
	}
	return nil
}
