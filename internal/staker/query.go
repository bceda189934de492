package staker

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/store"
)

// ownerships looks up the registry ownership of every id, preserving order.
// Lookups run on the query pool; the first failure cancels the rest.
func (s *staker) ownerships(ctx context.Context, itemIDs []domain.ItemID) ([]*domain.Ownership, error) {
	if len(itemIDs) == 0 {
		return []*domain.Ownership{}, nil
	}

	group := s.lookups.NewGroupContext(ctx)
	for _, id := range itemIDs {
		group.SubmitErr(func() (*domain.Ownership, error) {
			ownership, err := s.oracle.OwnershipOf(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to get ownership of %s: %w", id, err)
			}
			return ownership, nil
		})
	}

	return group.Wait()
}

// StakedTokensOfOwner walks the owner's historical index over [start, stop).
// An entry is returned only when it belongs to the stake that is live for the owner now,
// so entries left behind by earlier stakes of the same item are filtered out.
func (s *staker) StakedTokensOfOwner(ctx context.Context, owner common.Address, start, stop uint64) ([]domain.ItemID, error) {
	if stop <= start {
		return nil, domain.ErrInvalidQueryRange
	}

	entries, err := s.store.GetOwnerIndexRange(ctx, owner.Hex(), start, stop)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner index: %w", err)
	}
	if len(entries) == 0 {
		return []domain.ItemID{}, nil
	}

	ids := make([]domain.ItemID, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ItemID
	}
	records, err := s.store.GetStakeRecordsByItemIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get stake records: %w", err)
	}

	// only entries whose slot still names the owner need a registry lookup
	candidates := make([]store.OwnerIndexEntry, 0, len(entries))
	for _, entry := range entries {
		record := records[entry.ItemID]
		if record == nil || record.OriginTimestamp != entry.OriginTimestamp ||
			common.HexToAddress(record.OwnerAddress) != owner {
			continue
		}
		candidates = append(candidates, entry)
	}

	lookup := uniqueIDs(candidates)
	ownerships, err := s.ownerships(ctx, lookup)
	if err != nil {
		return nil, err
	}
	byID := make(map[domain.ItemID]*domain.Ownership, len(lookup))
	for i, id := range lookup {
		byID[id] = ownerships[i]
	}

	result := []domain.ItemID{}
	for _, entry := range candidates {
		if IsLiveFor(owner, toDomainRecord(records[entry.ItemID]), byID[entry.ItemID]) {
			result = append(result, entry.ItemID)
		}
	}
	return result, nil
}

func uniqueIDs(entries []store.OwnerIndexEntry) []domain.ItemID {
	seen := make(map[domain.ItemID]struct{}, len(entries))
	ids := make([]domain.ItemID, 0, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.ItemID]; ok {
			continue
		}
		seen[entry.ItemID] = struct{}{}
		ids = append(ids, entry.ItemID)
	}
	return ids
}

func (s *staker) IsStillStaked(ctx context.Context, itemID domain.ItemID) (bool, error) {
	record, ownership, err := s.snapshot(ctx, itemID)
	if err != nil {
		return false, err
	}
	return IsLive(record, ownership), nil
}

func (s *staker) IsStillStakedForOwner(ctx context.Context, owner common.Address, itemID domain.ItemID) (bool, error) {
	record, ownership, err := s.snapshot(ctx, itemID)
	if err != nil {
		return false, err
	}
	return IsLiveFor(owner, record, ownership), nil
}

// AreStaked answers IsStillStakedForOwner for every id. Ids without a record are false
// without a registry lookup.
func (s *staker) AreStaked(ctx context.Context, owner common.Address, itemIDs []domain.ItemID) ([]bool, error) {
	result := make([]bool, len(itemIDs))
	if len(itemIDs) == 0 || domain.IsZeroAddress(owner) {
		return result, nil
	}

	records, err := s.store.GetStakeRecordsByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get stake records: %w", err)
	}

	lookup := make([]domain.ItemID, 0, len(records))
	seen := make(map[domain.ItemID]struct{}, len(records))
	for _, id := range itemIDs {
		record := records[id]
		if record == nil || common.HexToAddress(record.OwnerAddress) != owner {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		lookup = append(lookup, id)
	}

	ownerships, err := s.ownerships(ctx, lookup)
	if err != nil {
		return nil, err
	}
	byID := make(map[domain.ItemID]*domain.Ownership, len(lookup))
	for i, id := range lookup {
		byID[id] = ownerships[i]
	}

	for i, id := range itemIDs {
		ownership, ok := byID[id]
		if !ok {
			continue
		}
		result[i] = IsLiveFor(owner, toDomainRecord(records[id]), ownership)
	}
	return result, nil
}

func (s *staker) GetStakeRecord(ctx context.Context, itemID domain.ItemID) (*StakeInfo, error) {
	stored, err := s.store.GetStakeRecord(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stake record: %w", err)
	}
	if stored == nil {
		return nil, domain.ErrStakeRecordNotFound
	}

	record := toDomainRecord(stored)
	ownership, err := s.oracle.OwnershipOf(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ownership of %s: %w", itemID, err)
	}

	info := &StakeInfo{
		StakeRecord: *record,
		StakedAt:    stored.StakedAt,
		Live:        IsLive(record, ownership),
		Quote:       new(big.Int),
	}
	if info.Live {
		info.Quote = Accrue(s.config.RewardPerSecond, record.LastHarvestTimestamp, s.clock.Now().Unix())
	}
	return info, nil
}

func (s *staker) Quote(ctx context.Context, itemID domain.ItemID) (*big.Int, error) {
	info, err := s.GetStakeRecord(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrStakeRecordNotFound) {
			return new(big.Int), nil
		}
		return nil, err
	}
	return info.Quote, nil
}

// snapshot reads the stake record of an item and, when there is one, its registry ownership
func (s *staker) snapshot(ctx context.Context, itemID domain.ItemID) (*domain.StakeRecord, *domain.Ownership, error) {
	stored, err := s.store.GetStakeRecord(ctx, itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get stake record: %w", err)
	}
	if stored == nil {
		return nil, nil, nil
	}

	ownership, err := s.oracle.OwnershipOf(ctx, itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get ownership of %s: %w", itemID, err)
	}
	return toDomainRecord(stored), ownership, nil
}
