package schema

import (
	"time"
)

// RewardBalance represents the reward_balances table - fungible reward balances used by the ledger reward pool
type RewardBalance struct {
	// HolderAddress is the checksummed holder address (the pool itself is a holder)
	HolderAddress string `gorm:"column:holder_address;primaryKey;type:text"`
	// Amount is the balance in base units (stored as string to support up to 78 digits)
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// CreatedAt is the timestamp when this balance was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RewardBalance model
func (RewardBalance) TableName() string {
	return "reward_balances"
}
