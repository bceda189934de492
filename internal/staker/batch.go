package staker

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/logger"
	"github.com/feral-file/ff-staker/internal/store"
	"github.com/feral-file/ff-staker/internal/treasury"
)

func (s *staker) Stake(ctx context.Context, caller common.Address, itemIDs []domain.ItemID) (*StakeResult, error) {
	ctx = logger.WithFields(ctx,
		zap.String("operation", string(domain.LedgerEventStake)),
		zap.String("caller", caller.Hex()),
		zap.Int("batchSize", len(itemIDs)))
	start := s.clock.Now()

	result, event, err := s.stake(ctx, caller, itemIDs)
	s.observe(ctx, string(domain.LedgerEventStake), start, len(itemIDs), err)
	if err != nil {
		return nil, err
	}

	if event != nil {
		s.publish(ctx, event)
	}
	return result, nil
}

func (s *staker) stake(ctx context.Context, caller common.Address, itemIDs []domain.ItemID) (*StakeResult, *domain.LedgerEvent, error) {
	if err := s.guard(ctx, caller); err != nil {
		return nil, nil, err
	}

	if len(itemIDs) == 0 {
		return &StakeResult{Owner: caller, ItemIDs: []domain.ItemID{}, StakedAt: s.clock.Now().UTC()}, nil, nil
	}

	var (
		now   time.Time
		event *domain.LedgerEvent
	)
	err := s.store.RunInTx(ctx, func(tx store.Store) error {
		now = s.clock.Now().UTC()

		for _, id := range itemIDs {
			ownership, err := s.oracle.OwnershipOf(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get ownership of %s: %w", id, err)
			}

			if domain.IsZeroAddress(ownership.Owner) || ownership.Owner != caller {
				return domain.WrongOwner(id)
			}
			if ownership.Burned {
				return domain.TokenIsBurned(id)
			}

			// a repeated id in the batch sees the record written by its first occurrence
			existing, err := tx.GetStakeRecord(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get stake record %s: %w", id, err)
			}
			if IsLive(toDomainRecord(existing), ownership) {
				return domain.AlreadyStaked(id)
			}

			err = tx.SaveStakeRecord(ctx, store.SaveStakeRecordInput{
				ItemID:               id,
				OwnerAddress:         caller.Hex(),
				OriginTimestamp:      ownership.OriginTimestamp,
				LastHarvestTimestamp: now.Unix(),
				StakedAt:             now,
			})
			if err != nil {
				return fmt.Errorf("failed to save stake record %s: %w", id, err)
			}
		}

		event = newEvent(domain.LedgerEventStake, caller.Hex(), itemIDs, nil, now)
		return s.appendJournal(ctx, tx, event)
	})
	if err != nil {
		return nil, nil, err
	}

	return &StakeResult{
		EventID:  event.EventID,
		Owner:    caller,
		ItemIDs:  itemIDs,
		StakedAt: now,
	}, event, nil
}

func (s *staker) Harvest(ctx context.Context, caller common.Address, itemIDs []domain.ItemID) (*HarvestResult, error) {
	ctx = logger.WithFields(ctx,
		zap.String("operation", string(domain.LedgerEventHarvest)),
		zap.String("caller", caller.Hex()),
		zap.Int("batchSize", len(itemIDs)))
	start := s.clock.Now()

	result, event, err := s.harvest(ctx, caller, itemIDs)
	s.observe(ctx, string(domain.LedgerEventHarvest), start, len(itemIDs), err)
	if err != nil {
		return nil, err
	}

	if event != nil {
		s.publish(ctx, event)
	}
	return result, nil
}

func (s *staker) harvest(ctx context.Context, caller common.Address, itemIDs []domain.ItemID) (*HarvestResult, *domain.LedgerEvent, error) {
	if err := s.guard(ctx, caller); err != nil {
		return nil, nil, err
	}

	if len(itemIDs) == 0 {
		return &HarvestResult{Owner: caller, ItemIDs: []domain.ItemID{}, Amount: new(big.Int), HarvestedAt: s.clock.Now().UTC()}, nil, nil
	}

	var (
		now    time.Time
		total  *big.Int
		paid   *treasury.Payout
		payout string
		event  *domain.LedgerEvent
	)
	// a sent payout must be followed by its checkpoint advance, so the unit outlives the request
	ctx = context.WithoutCancel(ctx)
	err := s.store.RunInTx(ctx, func(tx store.Store) error {
		now = s.clock.Now().UTC()
		nowUnix := now.Unix()

		records, err := tx.GetStakeRecordsByItemIDs(ctx, itemIDs)
		if err != nil {
			return fmt.Errorf("failed to get stake records: %w", err)
		}

		total = new(big.Int)
		quoted := make(map[domain.ItemID]struct{}, len(itemIDs))
		advance := make([]domain.ItemID, 0, len(itemIDs))
		for _, id := range itemIDs {
			record := toDomainRecord(records[id])
			if record == nil {
				return domain.WrongOwner(id)
			}

			ownership, err := s.oracle.OwnershipOf(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get ownership of %s: %w", id, err)
			}
			if !IsLiveFor(caller, record, ownership) {
				return domain.TokenIsMoved(id)
			}

			// a repeated id was already advanced to now by its first occurrence
			if _, ok := quoted[id]; ok {
				continue
			}
			quoted[id] = struct{}{}

			total.Add(total, Accrue(s.config.RewardPerSecond, record.LastHarvestTimestamp, nowUnix))
			if record.LastHarvestTimestamp < nowUnix {
				advance = append(advance, id)
			}
		}

		if err := tx.UpdateLastHarvestTimestamps(ctx, advance, nowUnix); err != nil {
			return fmt.Errorf("failed to advance harvest checkpoints: %w", err)
		}

		balance, err := s.pool.Balance(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to get pool balance: %w", err)
		}
		if balance.Cmp(total) < 0 {
			return domain.ErrNotEnoughFunds
		}

		paid, err = s.pool.Payout(ctx, tx, caller, total)
		if err != nil {
			return err
		}
		payout = paid.TxHash

		event = newEvent(domain.LedgerEventHarvest, caller.Hex(), itemIDs, total, now)
		event.TxHash = paid.TxHash
		event.PayoutPending = paid.Pending
		return s.appendJournal(ctx, tx, event)
	})
	if err != nil {
		if payout != "" {
			logger.ErrorCtx(ctx, fmt.Errorf("harvest rolled back after payout: %w", err),
				zap.String("txHash", payout),
				zap.String("amount", total.String()))
		}
		return nil, nil, err
	}

	return &HarvestResult{
		EventID:     event.EventID,
		Owner:       caller,
		ItemIDs:     itemIDs,
		Amount:      total,
		HarvestedAt: now,
		TxHash:      payout,
		Pending:     paid.Pending,
	}, event, nil
}
