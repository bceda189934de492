package staker

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/logger"
	"github.com/feral-file/ff-staker/internal/store"
	"github.com/feral-file/ff-staker/internal/treasury"
)

// Withdraw is administrative. It is capped by the pool balance only, so it may leave
// accrued rewards uncovered.
func (s *staker) Withdraw(ctx context.Context, amount *big.Int) (*WithdrawResult, error) {
	ctx = logger.WithFields(ctx,
		zap.String("operation", string(domain.LedgerEventWithdraw)),
		zap.String("to", s.config.OwnerAddress.Hex()))
	start := s.clock.Now()

	result, event, err := s.withdraw(ctx, amount)
	s.observe(ctx, string(domain.LedgerEventWithdraw), start, 0, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event)
	return result, nil
}

func (s *staker) withdraw(ctx context.Context, amount *big.Int) (*WithdrawResult, *domain.LedgerEvent, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}

	to := s.config.OwnerAddress
	var (
		paid  *treasury.Payout
		event *domain.LedgerEvent
	)
	ctx = context.WithoutCancel(ctx)
	err := s.store.RunInTx(ctx, func(tx store.Store) error {
		balance, err := s.pool.Balance(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to get pool balance: %w", err)
		}
		if balance.Cmp(amount) < 0 {
			return domain.ErrNotEnoughFunds
		}

		paid, err = s.pool.Payout(ctx, tx, to, amount)
		if err != nil {
			return err
		}

		event = newEvent(domain.LedgerEventWithdraw, to.Hex(), nil, amount, s.clock.Now())
		event.TxHash = paid.TxHash
		event.PayoutPending = paid.Pending
		return s.appendJournal(ctx, tx, event)
	})
	if err != nil {
		if paid != nil && paid.TxHash != "" {
			logger.ErrorCtx(ctx, fmt.Errorf("withdrawal rolled back after payout: %w", err),
				zap.String("txHash", paid.TxHash),
				zap.String("amount", amount.String()))
		}
		return nil, nil, err
	}

	return &WithdrawResult{
		EventID: event.EventID,
		To:      to,
		Amount:  new(big.Int).Set(amount),
		TxHash:  paid.TxHash,
		Pending: paid.Pending,
	}, event, nil
}

func (s *staker) Deposit(ctx context.Context, from common.Address, amount *big.Int) (*DepositResult, error) {
	ctx = logger.WithFields(ctx,
		zap.String("operation", string(domain.LedgerEventDeposit)),
		zap.String("from", from.Hex()))
	start := s.clock.Now()

	result, event, err := s.deposit(ctx, from, amount)
	s.observe(ctx, string(domain.LedgerEventDeposit), start, 0, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event)
	return result, nil
}

func (s *staker) deposit(ctx context.Context, from common.Address, amount *big.Int) (*DepositResult, *domain.LedgerEvent, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}

	var (
		balance *big.Int
		event   *domain.LedgerEvent
	)
	err := s.store.RunInTx(ctx, func(tx store.Store) error {
		if err := s.pool.Deposit(ctx, tx, from, amount); err != nil {
			return err
		}

		var err error
		balance, err = s.pool.Balance(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to get pool balance: %w", err)
		}

		event = newEvent(domain.LedgerEventDeposit, from.Hex(), nil, amount, s.clock.Now())
		return s.appendJournal(ctx, tx, event)
	})
	if err != nil {
		return nil, nil, err
	}

	return &DepositResult{
		EventID:     event.EventID,
		From:        from,
		Amount:      new(big.Int).Set(amount),
		PoolBalance: balance,
	}, event, nil
}

func (s *staker) PoolBalance(ctx context.Context) (*big.Int, error) {
	balance, err := s.pool.Balance(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool balance: %w", err)
	}
	return balance, nil
}

func (s *staker) RewardBalance(ctx context.Context, holder common.Address) (*big.Int, error) {
	balance, err := s.pool.BalanceOf(ctx, s.store, holder)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward balance: %w", err)
	}
	return balance, nil
}
