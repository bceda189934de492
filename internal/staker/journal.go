package staker

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/logger"
	"github.com/feral-file/ff-staker/internal/metrics"
	"github.com/feral-file/ff-staker/internal/store"
)

// newEvent builds the ledger event of a call committed at now
func newEvent(eventType domain.LedgerEventType, account string, itemIDs []domain.ItemID, amount *big.Int, now time.Time) *domain.LedgerEvent {
	event := &domain.LedgerEvent{
		EventID:   ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		EventType: eventType,
		Account:   account,
		ItemIDs:   itemIDs,
		Timestamp: now.UTC(),
	}
	if amount != nil {
		event.Amount = amount.String()
	}
	return event
}

// appendJournal writes the event to the journal inside the ledger transaction
func (s *staker) appendJournal(ctx context.Context, tx store.Store, event *domain.LedgerEvent) error {
	data, err := s.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}

	meta, err := s.jcs.Transform(data)
	if err != nil {
		return fmt.Errorf("failed to canonicalize ledger event: %w", err)
	}

	err = tx.CreateJournalEntry(ctx, store.CreateJournalEntryInput{
		EventID:   event.EventID,
		EventType: event.EventType,
		Account:   event.Account,
		ChangedAt: event.Timestamp,
		Meta:      meta,
	})
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}

	return nil
}

// publish sends a committed event to the broker. Failures are logged only.
func (s *staker) publish(ctx context.Context, event *domain.LedgerEvent) {
	if err := s.publisher.PublishLedgerEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish ledger event",
			zap.Error(err),
			zap.String("eventID", event.EventID),
			zap.String("eventType", string(event.EventType)))
	}
}

// observe records metrics and logs for a finished state-changing call
func (s *staker) observe(ctx context.Context, operation string, start time.Time, items int, err error) {
	duration := s.clock.Since(start)

	if err == nil {
		metrics.RecordLedgerOperation(operation, metrics.OutcomeSuccess, duration)
		metrics.AddItems(operation, items)
		logger.InfoCtx(ctx, "Ledger call committed",
			zap.String("operation", operation),
			zap.Int("items", items),
			zap.Duration("duration", duration))
		return
	}

	if le, ok := domain.AsLedgerError(err); ok {
		metrics.RecordLedgerOperation(operation, metrics.OutcomeRejected, duration)
		metrics.RecordRejection(string(le.Code))
		logger.WarnCtx(ctx, "Ledger call rejected",
			zap.String("operation", operation),
			zap.String("code", string(le.Code)),
			zap.String("itemID", le.ItemID.String()))
		return
	}

	if errors.Is(err, domain.ErrInvalidAmount) || errors.Is(err, domain.ErrDepositNotSupported) {
		metrics.RecordLedgerOperation(operation, metrics.OutcomeRejected, duration)
		logger.WarnCtx(ctx, "Ledger call rejected", zap.String("operation", operation), zap.Error(err))
		return
	}

	metrics.RecordLedgerOperation(operation, metrics.OutcomeError, duration)
	if errors.Is(err, context.Canceled) {
		logger.WarnCtx(ctx, "Ledger call canceled", zap.String("operation", operation))
		return
	}
	logger.ErrorCtx(ctx, fmt.Errorf("ledger call failed: %w", err), zap.String("operation", operation))
}

func (s *staker) GetJournal(ctx context.Context, anchor *int64, account *common.Address, limit int) ([]JournalEntry, error) {
	filter := store.JournalQueryFilter{
		Anchor: anchor,
		Limit:  limit,
	}
	if account != nil {
		hex := account.Hex()
		filter.Account = &hex
	}

	rows, err := s.store.GetJournalEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entries: %w", err)
	}

	entries := make([]JournalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, JournalEntry{
			Cursor:    row.Cursor,
			EventID:   row.EventID,
			EventType: domain.LedgerEventType(row.EventType),
			Account:   row.Account,
			ChangedAt: row.ChangedAt,
			Event:     []byte(row.Meta),
		})
	}
	return entries, nil
}
