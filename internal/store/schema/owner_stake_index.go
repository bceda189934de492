package schema

import "time"

// StakeOwner represents the stake_owners table - the stored length of each owner's historical index
type StakeOwner struct {
	// OwnerAddress is the checksummed owner address
	OwnerAddress string `gorm:"column:owner_address;primaryKey;type:text"`
	// IndexLength is the number of entries ever appended to the owner's index
	IndexLength int64 `gorm:"column:index_length;not null;default:0"`
	// CreatedAt is the timestamp when the owner first staked
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the most recent append
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the StakeOwner model
func (StakeOwner) TableName() string {
	return "stake_owners"
}

// OwnerStakeIndex represents the owner_stake_index table - the append-only history of ids staked by an owner.
// Entries are never deleted; the same item may appear more than once.
type OwnerStakeIndex struct {
	// OwnerAddress is the checksummed owner address
	OwnerAddress string `gorm:"column:owner_address;primaryKey;type:text"`
	// Position is the zero-based insertion position within the owner's index
	Position int64 `gorm:"column:position;primaryKey;autoIncrement:false"`
	// ItemID is the staked item
	ItemID string `gorm:"column:item_id;not null;type:text"`
	// OriginTimestamp is the origin timestamp of the stake this entry was appended for
	OriginTimestamp int64 `gorm:"column:origin_timestamp;not null"`
	// CreatedAt is the timestamp of the append
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the OwnerStakeIndex model
func (OwnerStakeIndex) TableName() string {
	return "owner_stake_index"
}
