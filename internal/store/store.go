package store

import (
	"context"
	"math/big"
	"time"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/store/schema"
)

// SaveStakeRecordInput represents the data required to (re)write an item's stake slot
type SaveStakeRecordInput struct {
	ItemID               domain.ItemID
	OwnerAddress         string
	OriginTimestamp      int64
	LastHarvestTimestamp int64
	StakedAt             time.Time
}

// OwnerIndexEntry is one append to an owner's historical index
type OwnerIndexEntry struct {
	ItemID domain.ItemID
	// OriginTimestamp identifies the stake the entry was appended for
	OriginTimestamp int64
}

// CreateJournalEntryInput represents the data required to append a ledger journal entry
type CreateJournalEntryInput struct {
	EventID   string
	EventType domain.LedgerEventType
	Account   string
	ChangedAt time.Time
	Meta      []byte
}

// JournalQueryFilter represents filters for ledger journal queries
type JournalQueryFilter struct {
	// Anchor is the cursor after which entries are returned (exclusive)
	Anchor *int64
	// Account restricts entries to a single account
	Account *string
	// Limit is the maximum number of entries to return
	Limit int
}

// Store defines the interface for ledger persistence.
// Every write made through the Store handed to RunInTx's callback commits or rolls back together.
type Store interface {
	// RunInTx runs fn inside a serialized ledger transaction
	RunInTx(ctx context.Context, fn func(tx Store) error) error

	// GetStakeRecord retrieves the stake slot of an item, nil if the item was never staked
	GetStakeRecord(ctx context.Context, itemID domain.ItemID) (*schema.StakeRecord, error)
	// GetStakeRecordsByItemIDs retrieves stake slots keyed by item id; unknown ids are absent from the map
	GetStakeRecordsByItemIDs(ctx context.Context, itemIDs []domain.ItemID) (map[domain.ItemID]*schema.StakeRecord, error)
	// SaveStakeRecord overwrites an item's stake slot and appends the item to the owner's index
	SaveStakeRecord(ctx context.Context, input SaveStakeRecordInput) error
	// UpdateLastHarvestTimestamps moves the accrual baseline of the given items
	UpdateLastHarvestTimestamps(ctx context.Context, itemIDs []domain.ItemID, timestamp int64) error

	// GetOwnerIndexLength returns the number of entries ever appended to the owner's index
	GetOwnerIndexLength(ctx context.Context, ownerAddress string) (uint64, error)
	// GetOwnerIndexRange returns index entries at positions [start, stop) in insertion order
	GetOwnerIndexRange(ctx context.Context, ownerAddress string, start, stop uint64) ([]OwnerIndexEntry, error)

	// GetRewardBalance returns the ledger reward balance of a holder, zero if unknown
	GetRewardBalance(ctx context.Context, holderAddress string) (*big.Int, error)
	// CreditRewardBalance adds amount to a holder's ledger reward balance
	CreditRewardBalance(ctx context.Context, holderAddress string, amount *big.Int) error
	// TransferRewardBalance moves amount between holders, failing with domain.ErrInsufficientBalance
	TransferRewardBalance(ctx context.Context, fromAddress, toAddress string, amount *big.Int) error

	// CreateJournalEntry appends an entry to the ledger journal
	CreateJournalEntry(ctx context.Context, input CreateJournalEntryInput) error
	// GetJournalEntries retrieves journal entries in cursor order
	GetJournalEntries(ctx context.Context, filter JournalQueryFilter) ([]*schema.LedgerJournal, error)
}
