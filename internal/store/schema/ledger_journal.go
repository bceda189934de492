package schema

import (
	"time"

	"gorm.io/datatypes"
)

// LedgerJournal represents the ledger_journal table - audit log of every committed ledger change
type LedgerJournal struct {
	// Cursor is an auto-incrementing sequence number for efficient pagination and ordering
	Cursor int64 `gorm:"column:\"cursor\";primaryKey;autoIncrement"`
	// EventID is the ULID of the ledger event, shared with the published message
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:text"`
	// EventType is stake, harvest, withdraw or deposit
	EventType string `gorm:"column:event_type;not null;type:text"`
	// Account is the caller, withdrawal recipient or depositor
	Account string `gorm:"column:account;not null;type:text;index:idx_ledger_journal_account"`
	// ChangedAt is the ledger time of the change
	ChangedAt time.Time `gorm:"column:changed_at;not null;default:now();type:timestamptz"`
	// Meta is the canonical JSON of the ledger event
	Meta datatypes.JSON `gorm:"column:meta;type:jsonb"`
}

// TableName specifies the table name for the LedgerJournal model
func (LedgerJournal) TableName() string {
	return "ledger_journal"
}
