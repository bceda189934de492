package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-staker/internal/domain"
)

const (
	testOwnerA = "0x1111111111111111111111111111111111111111"
	testOwnerB = "0x2222222222222222222222222222222222222222"
	testOwnerC = "0x3333333333333333333333333333333333333333"
	testPool   = "0x9999999999999999999999999999999999999999"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestStake creates a stake slot input for an owner
func buildTestStake(itemID domain.ItemID, owner string, origin int64, lastHarvest int64) SaveStakeRecordInput {
	return SaveStakeRecordInput{
		ItemID:               itemID,
		OwnerAddress:         owner,
		OriginTimestamp:      origin,
		LastHarvestTimestamp: lastHarvest,
		StakedAt:             time.Unix(lastHarvest, 0).UTC(),
	}
}

func buildTestJournalEntry(eventID string, eventType domain.LedgerEventType, account string) CreateJournalEntryInput {
	return CreateJournalEntryInput{
		EventID:   eventID,
		EventType: eventType,
		Account:   account,
		ChangedAt: time.Now().UTC().Truncate(time.Second),
		Meta:      []byte(fmt.Sprintf(`{"event_id":"%s"}`, eventID)),
	}
}

// =============================================================================
// Test: Stake records
// =============================================================================

func testStakeRecords(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("unknown item has no record", func(t *testing.T) {
		record, err := store.GetStakeRecord(ctx, "404")
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("save creates the slot", func(t *testing.T) {
		require.NoError(t, store.SaveStakeRecord(ctx, buildTestStake("1", testOwnerA, 100, 150)))

		record, err := store.GetStakeRecord(ctx, "1")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "1", record.ItemID)
		assert.Equal(t, testOwnerA, record.OwnerAddress)
		assert.Equal(t, int64(100), record.OriginTimestamp)
		assert.Equal(t, int64(150), record.LastHarvestTimestamp)
	})

	t.Run("re-stake overwrites the slot", func(t *testing.T) {
		require.NoError(t, store.SaveStakeRecord(ctx, buildTestStake("1", testOwnerB, 200, 250)))

		record, err := store.GetStakeRecord(ctx, "1")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, testOwnerB, record.OwnerAddress)
		assert.Equal(t, int64(200), record.OriginTimestamp)
		assert.Equal(t, int64(250), record.LastHarvestTimestamp)
	})

	t.Run("bulk lookup skips unknown ids", func(t *testing.T) {
		require.NoError(t, store.SaveStakeRecord(ctx, buildTestStake("2", testOwnerA, 100, 150)))

		records, err := store.GetStakeRecordsByItemIDs(ctx, []domain.ItemID{"1", "2", "3"})
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, testOwnerB, records["1"].OwnerAddress)
		assert.Equal(t, testOwnerA, records["2"].OwnerAddress)
		_, ok := records["3"]
		assert.False(t, ok)

		empty, err := store.GetStakeRecordsByItemIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("update last harvest timestamps", func(t *testing.T) {
		require.NoError(t, store.UpdateLastHarvestTimestamps(ctx, []domain.ItemID{"1", "2"}, 999))

		records, err := store.GetStakeRecordsByItemIDs(ctx, []domain.ItemID{"1", "2"})
		require.NoError(t, err)
		assert.Equal(t, int64(999), records["1"].LastHarvestTimestamp)
		assert.Equal(t, int64(999), records["2"].LastHarvestTimestamp)
		// other fields untouched
		assert.Equal(t, int64(200), records["1"].OriginTimestamp)
	})
}

// =============================================================================
// Test: Owner index
// =============================================================================

func testOwnerIndex(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("unknown owner has empty index", func(t *testing.T) {
		length, err := store.GetOwnerIndexLength(ctx, testOwnerA)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), length)

		ids, err := store.GetOwnerIndexRange(ctx, testOwnerA, 0, 10)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("index is append-only and keeps duplicates", func(t *testing.T) {
		require.NoError(t, store.SaveStakeRecord(ctx, buildTestStake("5", testOwnerA, 1, 1)))
		require.NoError(t, store.SaveStakeRecord(ctx, buildTestStake("6", testOwnerA, 1, 1)))
		require.NoError(t, store.SaveStakeRecord(ctx, buildTestStake("5", testOwnerB, 2, 2)))
		require.NoError(t, store.SaveStakeRecord(ctx, buildTestStake("5", testOwnerA, 3, 3)))

		length, err := store.GetOwnerIndexLength(ctx, testOwnerA)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), length)

		entries, err := store.GetOwnerIndexRange(ctx, testOwnerA, 0, 3)
		require.NoError(t, err)
		assert.Equal(t, []OwnerIndexEntry{
			{ItemID: "5", OriginTimestamp: 1},
			{ItemID: "6", OriginTimestamp: 1},
			{ItemID: "5", OriginTimestamp: 3},
		}, entries)

		length, err = store.GetOwnerIndexLength(ctx, testOwnerB)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), length)
	})

	t.Run("range windows", func(t *testing.T) {
		entries, err := store.GetOwnerIndexRange(ctx, testOwnerA, 1, 2)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.ItemID("6"), entries[0].ItemID)

		entries, err = store.GetOwnerIndexRange(ctx, testOwnerA, 1, 100)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.ItemID("6"), entries[0].ItemID)
		assert.Equal(t, domain.ItemID("5"), entries[1].ItemID)

		entries, err = store.GetOwnerIndexRange(ctx, testOwnerA, 2, 2)
		require.NoError(t, err)
		assert.Empty(t, entries)

		entries, err = store.GetOwnerIndexRange(ctx, testOwnerA, 10, 20)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("bounds beyond int64 are clamped", func(t *testing.T) {
		tests := []struct {
			name        string
			start, stop uint64
			want        []domain.ItemID
		}{
			{name: "max stop", start: 0, stop: math.MaxUint64, want: []domain.ItemID{"5", "6", "5"}},
			{name: "stop above int64", start: 1, stop: math.MaxInt64 + 1, want: []domain.ItemID{"6", "5"}},
			{name: "max start", start: math.MaxUint64 - 1, stop: math.MaxUint64},
			{name: "start above int64", start: math.MaxInt64 + 1, stop: math.MaxUint64},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				entries, err := store.GetOwnerIndexRange(ctx, testOwnerA, tt.start, tt.stop)
				require.NoError(t, err)

				got := make([]domain.ItemID, 0, len(entries))
				for _, entry := range entries {
					got = append(got, entry.ItemID)
				}
				if tt.want == nil {
					assert.Empty(t, got)
					return
				}
				assert.Equal(t, tt.want, got)
			})
		}

		entries, err := store.GetOwnerIndexRange(ctx, testOwnerC, 0, math.MaxUint64)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

// =============================================================================
// Test: Reward balances
// =============================================================================

func testRewardBalances(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("unknown holder has zero balance", func(t *testing.T) {
		balance, err := store.GetRewardBalance(ctx, testPool)
		require.NoError(t, err)
		assert.Equal(t, 0, balance.Sign())
	})

	t.Run("credit accumulates", func(t *testing.T) {
		require.NoError(t, store.CreditRewardBalance(ctx, testPool, big.NewInt(1000)))
		require.NoError(t, store.CreditRewardBalance(ctx, testPool, big.NewInt(500)))

		balance, err := store.GetRewardBalance(ctx, testPool)
		require.NoError(t, err)
		assert.Equal(t, "1500", balance.String())
	})

	t.Run("credit supports uint256 amounts", func(t *testing.T) {
		huge, ok := new(big.Int).SetString("100000000000000000000000000000", 10)
		require.True(t, ok)
		require.NoError(t, store.CreditRewardBalance(ctx, testOwnerB, huge))

		balance, err := store.GetRewardBalance(ctx, testOwnerB)
		require.NoError(t, err)
		assert.Equal(t, huge.String(), balance.String())
	})

	t.Run("negative credit is rejected", func(t *testing.T) {
		err := store.CreditRewardBalance(ctx, testPool, big.NewInt(-1))
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("transfer moves funds", func(t *testing.T) {
		require.NoError(t, store.TransferRewardBalance(ctx, testPool, testOwnerA, big.NewInt(600)))

		pool, err := store.GetRewardBalance(ctx, testPool)
		require.NoError(t, err)
		assert.Equal(t, "900", pool.String())

		holder, err := store.GetRewardBalance(ctx, testOwnerA)
		require.NoError(t, err)
		assert.Equal(t, "600", holder.String())
	})

	t.Run("transfer of the exact balance succeeds", func(t *testing.T) {
		require.NoError(t, store.TransferRewardBalance(ctx, testOwnerA, testPool, big.NewInt(600)))

		holder, err := store.GetRewardBalance(ctx, testOwnerA)
		require.NoError(t, err)
		assert.Equal(t, 0, holder.Sign())
	})

	t.Run("overdraw fails without side effects", func(t *testing.T) {
		err := store.TransferRewardBalance(ctx, testPool, testOwnerA, big.NewInt(1501))
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

		pool, err := store.GetRewardBalance(ctx, testPool)
		require.NoError(t, err)
		assert.Equal(t, "1500", pool.String())
	})

	t.Run("transfer from unknown holder fails", func(t *testing.T) {
		err := store.TransferRewardBalance(ctx, "0x3333333333333333333333333333333333333333", testOwnerA, big.NewInt(1))
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})

	t.Run("zero transfer is a no-op", func(t *testing.T) {
		require.NoError(t, store.TransferRewardBalance(ctx, "0x3333333333333333333333333333333333333333", testOwnerA, big.NewInt(0)))
	})
}

// =============================================================================
// Test: Journal
// =============================================================================

func testJournal(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.CreateJournalEntry(ctx, buildTestJournalEntry("01JOURNAL0000000000000001", domain.LedgerEventStake, testOwnerA)))
	require.NoError(t, store.CreateJournalEntry(ctx, buildTestJournalEntry("01JOURNAL0000000000000002", domain.LedgerEventHarvest, testOwnerA)))
	require.NoError(t, store.CreateJournalEntry(ctx, buildTestJournalEntry("01JOURNAL0000000000000003", domain.LedgerEventDeposit, testOwnerB)))

	t.Run("entries are returned in cursor order", func(t *testing.T) {
		entries, err := store.GetJournalEntries(ctx, JournalQueryFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "01JOURNAL0000000000000001", entries[0].EventID)
		assert.Equal(t, "stake", entries[0].EventType)
		assert.Equal(t, "01JOURNAL0000000000000003", entries[2].EventID)
		assert.Less(t, entries[0].Cursor, entries[1].Cursor)
		assert.Less(t, entries[1].Cursor, entries[2].Cursor)
		assert.JSONEq(t, `{"event_id":"01JOURNAL0000000000000002"}`, string(entries[1].Meta))
	})

	t.Run("anchor is exclusive", func(t *testing.T) {
		all, err := store.GetJournalEntries(ctx, JournalQueryFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 3)

		anchor := all[0].Cursor
		entries, err := store.GetJournalEntries(ctx, JournalQueryFilter{Anchor: &anchor, Limit: 10})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, all[1].EventID, entries[0].EventID)
	})

	t.Run("limit and account filter", func(t *testing.T) {
		entries, err := store.GetJournalEntries(ctx, JournalQueryFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		account := testOwnerB
		entries, err = store.GetJournalEntries(ctx, JournalQueryFilter{Account: &account})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "deposit", entries[0].EventType)
	})

	t.Run("duplicate event id is rejected", func(t *testing.T) {
		err := store.CreateJournalEntry(ctx, buildTestJournalEntry("01JOURNAL0000000000000001", domain.LedgerEventStake, testOwnerA))
		assert.Error(t, err)
	})
}

// =============================================================================
// Test: Transactions
// =============================================================================

func testRunInTx(t *testing.T, store Store) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	t.Run("commit makes every write visible", func(t *testing.T) {
		err := store.RunInTx(ctx, func(tx Store) error {
			if err := tx.SaveStakeRecord(ctx, buildTestStake("10", testOwnerA, 1, 1)); err != nil {
				return err
			}
			if err := tx.CreditRewardBalance(ctx, testPool, big.NewInt(10)); err != nil {
				return err
			}

			// writes are visible inside the transaction
			record, err := tx.GetStakeRecord(ctx, "10")
			if err != nil {
				return err
			}
			assert.NotNil(t, record)
			return nil
		})
		require.NoError(t, err)

		record, err := store.GetStakeRecord(ctx, "10")
		require.NoError(t, err)
		assert.NotNil(t, record)

		balance, err := store.GetRewardBalance(ctx, testPool)
		require.NoError(t, err)
		assert.Equal(t, "10", balance.String())
	})

	t.Run("error rolls every write back", func(t *testing.T) {
		err := store.RunInTx(ctx, func(tx Store) error {
			if err := tx.SaveStakeRecord(ctx, buildTestStake("11", testOwnerA, 1, 1)); err != nil {
				return err
			}
			if err := tx.UpdateLastHarvestTimestamps(ctx, []domain.ItemID{"10"}, 500); err != nil {
				return err
			}
			if err := tx.CreditRewardBalance(ctx, testPool, big.NewInt(10)); err != nil {
				return err
			}
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		record, err := store.GetStakeRecord(ctx, "11")
		require.NoError(t, err)
		assert.Nil(t, record)

		record, err = store.GetStakeRecord(ctx, "10")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, int64(1), record.LastHarvestTimestamp)

		length, err := store.GetOwnerIndexLength(ctx, testOwnerA)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), length)

		balance, err := store.GetRewardBalance(ctx, testPool)
		require.NoError(t, err)
		assert.Equal(t, "10", balance.String())
	})

	t.Run("nested calls join the outer transaction", func(t *testing.T) {
		err := store.RunInTx(ctx, func(tx Store) error {
			return tx.RunInTx(ctx, func(inner Store) error {
				if err := inner.SaveStakeRecord(ctx, buildTestStake("12", testOwnerA, 1, 1)); err != nil {
					return err
				}
				return errBoom
			})
		})
		require.ErrorIs(t, err, errBoom)

		record, err := store.GetStakeRecord(ctx, "12")
		require.NoError(t, err)
		assert.Nil(t, record)
	})
}

// =============================================================================
// Test: Concurrency
// =============================================================================

func testConcurrentAppends(t *testing.T, store Store) {
	ctx := context.Background()
	const n = 20

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.RunInTx(ctx, func(tx Store) error {
				return tx.SaveStakeRecord(ctx, buildTestStake(domain.ItemID(fmt.Sprintf("%d", 100+i)), testOwnerA, 1, 1))
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	length, err := store.GetOwnerIndexLength(ctx, testOwnerA)
	require.NoError(t, err)
	assert.Equal(t, uint64(n), length)

	entries, err := store.GetOwnerIndexRange(ctx, testOwnerA, 0, n)
	require.NoError(t, err)
	assert.Len(t, entries, n)
}

// RunStoreTests runs all store tests against a store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"StakeRecords", testStakeRecords},
		{"OwnerIndex", testOwnerIndex},
		{"RewardBalances", testRewardBalances},
		{"Journal", testJournal},
		{"RunInTx", testRunInTx},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
