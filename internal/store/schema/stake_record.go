package schema

import "time"

// StakeRecord represents the stake_records table - one slot per item, overwritten by a re-stake
type StakeRecord struct {
	// ItemID is the registry token id in canonical base-10 form
	ItemID string `gorm:"column:item_id;primaryKey;type:text"`
	// OwnerAddress is the checksummed address that staked the item
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;index:idx_stake_records_owner"`
	// OriginTimestamp is the registry origin time (unix seconds) captured when the item was staked
	OriginTimestamp int64 `gorm:"column:origin_timestamp;not null"`
	// LastHarvestTimestamp is the reward accrual baseline (unix seconds)
	LastHarvestTimestamp int64 `gorm:"column:last_harvest_timestamp;not null"`
	// StakedAt is the ledger time at which the current logical stake was created
	StakedAt time.Time `gorm:"column:staked_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp when the slot was first written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the slot was last written
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the StakeRecord model
func (StakeRecord) TableName() string {
	return "stake_records"
}
