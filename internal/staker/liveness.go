package staker

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/store/schema"
)

// IsLive reports whether a stake record is still backed by the registry.
// The record is live while the item is not burned, the registry owner is the staker,
// and the registry origin timestamp is the one captured at stake time. A transfer away
// and back moves the origin timestamp, so it ends the stake even though the owner matches again.
func IsLive(record *domain.StakeRecord, ownership *domain.Ownership) bool {
	if record == nil || domain.IsZeroAddress(record.Owner) {
		return false
	}
	owner := ownership.CurrentOwner()
	return owner != nil && *owner == record.Owner &&
		ownership.OriginTimestamp == record.OriginTimestamp
}

// IsLiveFor reports whether the record is live and staked by owner
func IsLiveFor(owner common.Address, record *domain.StakeRecord, ownership *domain.Ownership) bool {
	if domain.IsZeroAddress(owner) || record == nil {
		return false
	}
	return record.Owner == owner && IsLive(record, ownership)
}

// toDomainRecord converts a stored slot into the ledger's view of it
func toDomainRecord(record *schema.StakeRecord) *domain.StakeRecord {
	if record == nil {
		return nil
	}
	return &domain.StakeRecord{
		ItemID:               domain.ItemID(record.ItemID),
		Owner:                common.HexToAddress(record.OwnerAddress),
		OriginTimestamp:      record.OriginTimestamp,
		LastHarvestTimestamp: record.LastHarvestTimestamp,
	}
}
