package treasury

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/store"
)

type ledgerPool struct {
	address common.Address
}

// NewLedgerPool creates a pool whose balances live in the ledger's reward_balances table,
// so payouts commit or roll back together with the stake records
func NewLedgerPool(address common.Address) Pool {
	return &ledgerPool{address: address}
}

func (p *ledgerPool) Address() common.Address {
	return p.address
}

func (p *ledgerPool) Balance(ctx context.Context, tx store.Store) (*big.Int, error) {
	return p.BalanceOf(ctx, tx, p.address)
}

func (p *ledgerPool) BalanceOf(ctx context.Context, tx store.Store, holder common.Address) (*big.Int, error) {
	balance, err := tx.GetRewardBalance(ctx, holder.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to get reward balance: %w", err)
	}
	return balance, nil
}

func (p *ledgerPool) Payout(ctx context.Context, tx store.Store, to common.Address, amount *big.Int) (*Payout, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	if err := tx.TransferRewardBalance(ctx, p.address.Hex(), to.Hex(), amount); err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return nil, domain.ErrNotEnoughFunds
		}
		return nil, fmt.Errorf("failed to transfer reward balance: %w", err)
	}

	return &Payout{To: to, Amount: new(big.Int).Set(amount)}, nil
}

func (p *ledgerPool) Deposit(ctx context.Context, tx store.Store, from common.Address, amount *big.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	if err := tx.CreditRewardBalance(ctx, p.address.Hex(), amount); err != nil {
		return fmt.Errorf("failed to credit pool: %w", err)
	}
	return nil
}
