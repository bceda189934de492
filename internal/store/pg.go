package store

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/store/schema"
)

// ledgerLockKey is the advisory lock taken by every ledger transaction
const ledgerLockKey int64 = 0x6666_7374_616b_6572

type pgStore struct {
	db   *gorm.DB
	inTx bool
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize returns how many records fit into one statement without exceeding
// PostgreSQL's extended protocol limit of 65535 bind parameters.
// A fixed headroom is reserved for GORM bookkeeping and ON CONFLICT parameters.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000 // Total parameter headroom for batch-level overhead

	// Reserve headroom from total available parameters
	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// RunInTx runs fn inside a database transaction holding the ledger advisory lock.
// Nested calls join the outer transaction.
func (s *pgStore) RunInTx(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", ledgerLockKey).Error; err != nil {
			return fmt.Errorf("failed to acquire ledger lock: %w", err)
		}
		return fn(&pgStore{db: tx, inTx: true})
	})
}

// transaction runs fn in the current transaction, or a fresh one outside RunInTx
func (s *pgStore) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.inTx {
		return fn(s.db.WithContext(ctx))
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// GetStakeRecord retrieves the stake slot of an item
func (s *pgStore) GetStakeRecord(ctx context.Context, itemID domain.ItemID) (*schema.StakeRecord, error) {
	var record schema.StakeRecord
	err := s.db.WithContext(ctx).Where("item_id = ?", itemID.String()).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stake record: %w", err)
	}
	return &record, nil
}

// GetStakeRecordsByItemIDs retrieves stake slots for multiple items
func (s *pgStore) GetStakeRecordsByItemIDs(ctx context.Context, itemIDs []domain.ItemID) (map[domain.ItemID]*schema.StakeRecord, error) {
	result := make(map[domain.ItemID]*schema.StakeRecord, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	keys := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		keys = append(keys, id.String())
	}

	batchSize := calculateSafeBatchSize(len(keys), 1)
	for start := 0; start < len(keys); start += batchSize {
		end := min(start+batchSize, len(keys))

		var records []*schema.StakeRecord
		if err := s.db.WithContext(ctx).
			Where("item_id IN ?", keys[start:end]).
			Find(&records).Error; err != nil {
			return nil, fmt.Errorf("failed to get stake records: %w", err)
		}
		for _, record := range records {
			result[domain.ItemID(record.ItemID)] = record
		}
	}

	return result, nil
}

// SaveStakeRecord overwrites an item's stake slot and appends the item to the owner's index
func (s *pgStore) SaveStakeRecord(ctx context.Context, input SaveStakeRecordInput) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		now := time.Now().UTC()

		// 1. Overwrite the slot
		record := schema.StakeRecord{
			ItemID:               input.ItemID.String(),
			OwnerAddress:         input.OwnerAddress,
			OriginTimestamp:      input.OriginTimestamp,
			LastHarvestTimestamp: input.LastHarvestTimestamp,
			StakedAt:             input.StakedAt,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"owner_address",
				"origin_timestamp",
				"last_harvest_timestamp",
				"staked_at",
				"updated_at",
			}),
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("failed to save stake record: %w", err)
		}

		// 2. Bump the owner's index length
		var owner schema.StakeOwner
		if err := tx.Raw(`
			INSERT INTO stake_owners (owner_address, index_length, created_at, updated_at)
			VALUES (?, 1, now(), now())
			ON CONFLICT (owner_address)
			DO UPDATE SET index_length = stake_owners.index_length + 1, updated_at = now()
			RETURNING owner_address, index_length`, input.OwnerAddress).
			Scan(&owner).Error; err != nil {
			return fmt.Errorf("failed to extend owner index: %w", err)
		}

		// 3. Append at the new tail
		entry := schema.OwnerStakeIndex{
			OwnerAddress:    input.OwnerAddress,
			Position:        owner.IndexLength - 1,
			ItemID:          input.ItemID.String(),
			OriginTimestamp: input.OriginTimestamp,
			CreatedAt:       now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append owner index entry: %w", err)
		}

		return nil
	})
}

// UpdateLastHarvestTimestamps moves the accrual baseline of the given items
func (s *pgStore) UpdateLastHarvestTimestamps(ctx context.Context, itemIDs []domain.ItemID, timestamp int64) error {
	if len(itemIDs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		keys = append(keys, id.String())
	}

	err := s.db.WithContext(ctx).
		Model(&schema.StakeRecord{}).
		Where("item_id IN ?", keys).
		Updates(map[string]interface{}{
			"last_harvest_timestamp": timestamp,
			"updated_at":             time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update last harvest timestamps: %w", err)
	}

	return nil
}

// GetOwnerIndexLength returns the stored length of an owner's index
func (s *pgStore) GetOwnerIndexLength(ctx context.Context, ownerAddress string) (uint64, error) {
	var owner schema.StakeOwner
	err := s.db.WithContext(ctx).Where("owner_address = ?", ownerAddress).First(&owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get owner index length: %w", err)
	}
	return uint64(owner.IndexLength), nil //nolint:gosec,G115 // index_length is never negative
}

// GetOwnerIndexRange returns index entries at positions [start, stop), with stop clamped to the index length
func (s *pgStore) GetOwnerIndexRange(ctx context.Context, ownerAddress string, start, stop uint64) ([]OwnerIndexEntry, error) {
	length, err := s.GetOwnerIndexLength(ctx, ownerAddress)
	if err != nil {
		return nil, err
	}
	stop = min(stop, length)
	if stop <= start {
		return []OwnerIndexEntry{}, nil
	}

	var entries []schema.OwnerStakeIndex
	err = s.db.WithContext(ctx).
		Where("owner_address = ? AND position >= ? AND position < ?", ownerAddress, int64(start), int64(stop)). //nolint:gosec,G115 // bounded by index_length
		Order("position ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get owner index range: %w", err)
	}

	result := make([]OwnerIndexEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, OwnerIndexEntry{
			ItemID:          domain.ItemID(entry.ItemID),
			OriginTimestamp: entry.OriginTimestamp,
		})
	}
	return result, nil
}

// GetRewardBalance returns the ledger reward balance of a holder
func (s *pgStore) GetRewardBalance(ctx context.Context, holderAddress string) (*big.Int, error) {
	var balance schema.RewardBalance
	err := s.db.WithContext(ctx).Where("holder_address = ?", holderAddress).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return new(big.Int), nil
		}
		return nil, fmt.Errorf("failed to get reward balance: %w", err)
	}

	amount, ok := new(big.Int).SetString(balance.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("corrupted reward balance for %s: %s", holderAddress, balance.Amount)
	}
	return amount, nil
}

// CreditRewardBalance adds amount to a holder's balance
func (s *pgStore) CreditRewardBalance(ctx context.Context, holderAddress string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}

	err := s.db.WithContext(ctx).Exec(`
		INSERT INTO reward_balances (holder_address, amount, created_at, updated_at)
		VALUES (?, ?::numeric, now(), now())
		ON CONFLICT (holder_address)
		DO UPDATE SET amount = reward_balances.amount + EXCLUDED.amount, updated_at = now()`,
		holderAddress, amount.String()).Error
	if err != nil {
		return fmt.Errorf("failed to credit reward balance: %w", err)
	}

	return nil
}

// TransferRewardBalance moves amount from one holder to another
func (s *pgStore) TransferRewardBalance(ctx context.Context, fromAddress, toAddress string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}

	return s.transaction(ctx, func(tx *gorm.DB) error {
		debit := tx.Exec(`
			UPDATE reward_balances
			SET amount = amount - ?::numeric, updated_at = now()
			WHERE holder_address = ? AND amount >= ?::numeric`,
			amount.String(), fromAddress, amount.String())
		if debit.Error != nil {
			return fmt.Errorf("failed to debit reward balance: %w", debit.Error)
		}
		if debit.RowsAffected == 0 {
			return domain.ErrInsufficientBalance
		}

		return (&pgStore{db: tx, inTx: true}).CreditRewardBalance(ctx, toAddress, amount)
	})
}

// CreateJournalEntry appends an entry to the ledger journal
func (s *pgStore) CreateJournalEntry(ctx context.Context, input CreateJournalEntryInput) error {
	entry := schema.LedgerJournal{
		EventID:   input.EventID,
		EventType: string(input.EventType),
		Account:   input.Account,
		ChangedAt: input.ChangedAt,
		Meta:      datatypes.JSON(input.Meta),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	return nil
}

// GetJournalEntries retrieves journal entries in cursor order
func (s *pgStore) GetJournalEntries(ctx context.Context, filter JournalQueryFilter) ([]*schema.LedgerJournal, error) {
	query := s.db.WithContext(ctx).Model(&schema.LedgerJournal{})

	if filter.Anchor != nil {
		query = query.Where("\"cursor\" > ?", *filter.Anchor)
	}
	if filter.Account != nil {
		query = query.Where("account = ?", *filter.Account)
	}

	limit := filter.Limit
	if limit <= 0 || limit > domain.MAX_JOURNAL_PAGE_SIZE {
		limit = domain.MAX_JOURNAL_PAGE_SIZE
	}

	var entries []*schema.LedgerJournal
	if err := query.Order("\"cursor\" ASC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get journal entries: %w", err)
	}

	return entries, nil
}
