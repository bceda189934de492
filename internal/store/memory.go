package store

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/store/schema"
)

// memoryState is the full ledger state held by the in-memory store
type memoryState struct {
	records    map[domain.ItemID]schema.StakeRecord
	ownerIndex map[string][]OwnerIndexEntry
	balances   map[string]*big.Int
	journal    []schema.LedgerJournal
	nextCursor int64
}

func newMemoryState() *memoryState {
	return &memoryState{
		records:    make(map[domain.ItemID]schema.StakeRecord),
		ownerIndex: make(map[string][]OwnerIndexEntry),
		balances:   make(map[string]*big.Int),
		nextCursor: 1,
	}
}

func (m *memoryState) clone() *memoryState {
	c := &memoryState{
		records:    make(map[domain.ItemID]schema.StakeRecord, len(m.records)),
		ownerIndex: make(map[string][]OwnerIndexEntry, len(m.ownerIndex)),
		balances:   make(map[string]*big.Int, len(m.balances)),
		journal:    make([]schema.LedgerJournal, len(m.journal)),
		nextCursor: m.nextCursor,
	}
	for k, v := range m.records {
		c.records[k] = v
	}
	for k, v := range m.ownerIndex {
		c.ownerIndex[k] = append([]OwnerIndexEntry(nil), v...)
	}
	for k, v := range m.balances {
		c.balances[k] = new(big.Int).Set(v)
	}
	copy(c.journal, m.journal)
	return c
}

// memoryShared is the state shared by a memory store and the transactions it opens
type memoryShared struct {
	mu    sync.RWMutex // guards state
	txMu  sync.Mutex   // serializes transactions
	state *memoryState
}

type memoryStore struct {
	shared *memoryShared
	// tx is set when the store is bound to an open transaction; state is then its private copy
	tx    bool
	state *memoryState
}

// NewMemoryStore creates a store that keeps the ledger in process memory.
// Transactions run serially against a copy of the state that is swapped in on success.
func NewMemoryStore() Store {
	return &memoryStore{
		shared: &memoryShared{state: newMemoryState()},
	}
}

// RunInTx runs fn against a private copy of the state and publishes it when fn succeeds
func (s *memoryStore) RunInTx(ctx context.Context, fn func(tx Store) error) error {
	if s.tx {
		return fn(s)
	}

	s.shared.txMu.Lock()
	defer s.shared.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.shared.mu.RLock()
	working := s.shared.state.clone()
	s.shared.mu.RUnlock()

	if err := fn(&memoryStore{shared: s.shared, tx: true, state: working}); err != nil {
		return err
	}

	s.shared.mu.Lock()
	s.shared.state = working
	s.shared.mu.Unlock()

	return nil
}

// read runs fn against the current state under a read lock
func (s *memoryStore) read(fn func(state *memoryState) error) error {
	if s.tx {
		return fn(s.state)
	}

	s.shared.mu.RLock()
	defer s.shared.mu.RUnlock()
	return fn(s.shared.state)
}

// write runs fn inside a transaction so that partial writes never become visible
func (s *memoryStore) write(ctx context.Context, fn func(state *memoryState) error) error {
	return s.RunInTx(ctx, func(tx Store) error {
		return fn(tx.(*memoryStore).state)
	})
}

func (s *memoryStore) GetStakeRecord(ctx context.Context, itemID domain.ItemID) (*schema.StakeRecord, error) {
	var result *schema.StakeRecord
	err := s.read(func(state *memoryState) error {
		if record, ok := state.records[itemID]; ok {
			result = &record
		}
		return nil
	})
	return result, err
}

func (s *memoryStore) GetStakeRecordsByItemIDs(ctx context.Context, itemIDs []domain.ItemID) (map[domain.ItemID]*schema.StakeRecord, error) {
	result := make(map[domain.ItemID]*schema.StakeRecord, len(itemIDs))
	err := s.read(func(state *memoryState) error {
		for _, id := range itemIDs {
			if record, ok := state.records[id]; ok {
				result[id] = &record
			}
		}
		return nil
	})
	return result, err
}

func (s *memoryStore) SaveStakeRecord(ctx context.Context, input SaveStakeRecordInput) error {
	return s.write(ctx, func(state *memoryState) error {
		now := time.Now().UTC()

		record := schema.StakeRecord{
			ItemID:               input.ItemID.String(),
			OwnerAddress:         input.OwnerAddress,
			OriginTimestamp:      input.OriginTimestamp,
			LastHarvestTimestamp: input.LastHarvestTimestamp,
			StakedAt:             input.StakedAt,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if existing, ok := state.records[input.ItemID]; ok {
			record.CreatedAt = existing.CreatedAt
		}
		state.records[input.ItemID] = record
		state.ownerIndex[input.OwnerAddress] = append(state.ownerIndex[input.OwnerAddress], OwnerIndexEntry{
			ItemID:          input.ItemID,
			OriginTimestamp: input.OriginTimestamp,
		})

		return nil
	})
}

func (s *memoryStore) UpdateLastHarvestTimestamps(ctx context.Context, itemIDs []domain.ItemID, timestamp int64) error {
	if len(itemIDs) == 0 {
		return nil
	}

	return s.write(ctx, func(state *memoryState) error {
		now := time.Now().UTC()
		for _, id := range itemIDs {
			record, ok := state.records[id]
			if !ok {
				continue
			}
			record.LastHarvestTimestamp = timestamp
			record.UpdatedAt = now
			state.records[id] = record
		}
		return nil
	})
}

func (s *memoryStore) GetOwnerIndexLength(ctx context.Context, ownerAddress string) (uint64, error) {
	var length uint64
	err := s.read(func(state *memoryState) error {
		length = uint64(len(state.ownerIndex[ownerAddress]))
		return nil
	})
	return length, err
}

func (s *memoryStore) GetOwnerIndexRange(ctx context.Context, ownerAddress string, start, stop uint64) ([]OwnerIndexEntry, error) {
	result := []OwnerIndexEntry{}
	err := s.read(func(state *memoryState) error {
		index := state.ownerIndex[ownerAddress]
		length := uint64(len(index))
		if stop > length {
			stop = length
		}
		if start >= stop {
			return nil
		}
		result = append(result, index[start:stop]...)
		return nil
	})
	return result, err
}

func (s *memoryStore) GetRewardBalance(ctx context.Context, holderAddress string) (*big.Int, error) {
	balance := new(big.Int)
	err := s.read(func(state *memoryState) error {
		if v, ok := state.balances[holderAddress]; ok {
			balance.Set(v)
		}
		return nil
	})
	return balance, err
}

func (s *memoryStore) CreditRewardBalance(ctx context.Context, holderAddress string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}

	return s.write(ctx, func(state *memoryState) error {
		credit(state, holderAddress, amount)
		return nil
	})
}

func (s *memoryStore) TransferRewardBalance(ctx context.Context, fromAddress, toAddress string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}

	return s.write(ctx, func(state *memoryState) error {
		from, ok := state.balances[fromAddress]
		if !ok || from.Cmp(amount) < 0 {
			return domain.ErrInsufficientBalance
		}
		from.Sub(from, amount)
		credit(state, toAddress, amount)
		return nil
	})
}

func credit(state *memoryState, holderAddress string, amount *big.Int) {
	if v, ok := state.balances[holderAddress]; ok {
		v.Add(v, amount)
		return
	}
	state.balances[holderAddress] = new(big.Int).Set(amount)
}

func (s *memoryStore) CreateJournalEntry(ctx context.Context, input CreateJournalEntryInput) error {
	return s.write(ctx, func(state *memoryState) error {
		for _, entry := range state.journal {
			if entry.EventID == input.EventID {
				return fmt.Errorf("failed to create journal entry: duplicate event id %s", input.EventID)
			}
		}

		state.journal = append(state.journal, schema.LedgerJournal{
			Cursor:    state.nextCursor,
			EventID:   input.EventID,
			EventType: string(input.EventType),
			Account:   input.Account,
			ChangedAt: input.ChangedAt,
			Meta:      datatypes.JSON(append([]byte(nil), input.Meta...)),
		})
		state.nextCursor++
		return nil
	})
}

func (s *memoryStore) GetJournalEntries(ctx context.Context, filter JournalQueryFilter) ([]*schema.LedgerJournal, error) {
	limit := filter.Limit
	if limit <= 0 || limit > domain.MAX_JOURNAL_PAGE_SIZE {
		limit = domain.MAX_JOURNAL_PAGE_SIZE
	}

	entries := []*schema.LedgerJournal{}
	err := s.read(func(state *memoryState) error {
		for i := range state.journal {
			entry := state.journal[i]
			if filter.Anchor != nil && entry.Cursor <= *filter.Anchor {
				continue
			}
			if filter.Account != nil && entry.Account != *filter.Account {
				continue
			}
			entries = append(entries, &entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Cursor < entries[j].Cursor })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
