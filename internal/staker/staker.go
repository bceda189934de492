package staker

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-staker/internal/adapter"
	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/messaging"
	"github.com/feral-file/ff-staker/internal/registry"
	"github.com/feral-file/ff-staker/internal/store"
	"github.com/feral-file/ff-staker/internal/treasury"
)

// Staker is the staking ledger: it records stakes of registry items, pays time-based
// rewards from the pool on harvest and reconciles every stake against the registry on read.
//
//go:generate mockgen -source=staker.go -destination=../mocks/staker.go -package=mocks -mock_names=Staker=MockStaker
type Staker interface {
	// Stake records the caller's stake of every item, or of none
	Stake(ctx context.Context, caller common.Address, itemIDs []domain.ItemID) (*StakeResult, error)
	// Harvest pays the caller the reward accrued by every item, or by none
	Harvest(ctx context.Context, caller common.Address, itemIDs []domain.ItemID) (*HarvestResult, error)
	// Withdraw moves amount from the pool to the ledger owner
	Withdraw(ctx context.Context, amount *big.Int) (*WithdrawResult, error)
	// Deposit credits the pool with amount received from an external account
	Deposit(ctx context.Context, from common.Address, amount *big.Int) (*DepositResult, error)

	// StakedTokensOfOwner returns the entries of the owner's index in [start, stop) that are still live for the owner
	StakedTokensOfOwner(ctx context.Context, owner common.Address, start, stop uint64) ([]domain.ItemID, error)
	// IsStillStaked reports whether the item has a live stake
	IsStillStaked(ctx context.Context, itemID domain.ItemID) (bool, error)
	// IsStillStakedForOwner reports whether the item has a live stake by owner
	IsStillStakedForOwner(ctx context.Context, owner common.Address, itemID domain.ItemID) (bool, error)
	// AreStaked reports IsStillStakedForOwner pointwise, preserving order and length
	AreStaked(ctx context.Context, owner common.Address, itemIDs []domain.ItemID) ([]bool, error)

	// GetStakeRecord returns the raw stake record of an item with its current liveness and quote
	GetStakeRecord(ctx context.Context, itemID domain.ItemID) (*StakeInfo, error)
	// Quote returns what a harvest of the item would pay now, zero when the stake is not live
	Quote(ctx context.Context, itemID domain.ItemID) (*big.Int, error)
	// PoolBalance returns the amount available for payouts
	PoolBalance(ctx context.Context) (*big.Int, error)
	// RewardBalance returns the reward balance of any holder
	RewardBalance(ctx context.Context, holder common.Address) (*big.Int, error)
	// GetJournal returns committed ledger changes after the anchor cursor, optionally of one account
	GetJournal(ctx context.Context, anchor *int64, account *common.Address, limit int) ([]JournalEntry, error)

	// RewardPerSecond returns the fixed reward rate
	RewardPerSecond() *big.Int
	// Close releases the query worker pool
	Close()
}

// Config holds the ledger configuration
type Config struct {
	// RewardPerSecond is the reward paid per item per second, in reward base units
	RewardPerSecond *big.Int
	// OwnerAddress receives withdrawals
	OwnerAddress common.Address
	// QueryConcurrency bounds concurrent registry lookups of read-only queries
	QueryConcurrency int
}

// StakeResult is the outcome of a committed stake batch
type StakeResult struct {
	EventID  string
	Owner    common.Address
	ItemIDs  []domain.ItemID
	StakedAt time.Time
}

// HarvestResult is the outcome of a committed harvest batch
type HarvestResult struct {
	EventID     string
	Owner       common.Address
	ItemIDs     []domain.ItemID
	Amount      *big.Int
	HarvestedAt time.Time
	TxHash      string
	// Pending is set when the payout was sent but not yet confirmed on chain
	Pending bool
}

// WithdrawResult is the outcome of a committed withdrawal
type WithdrawResult struct {
	EventID string
	To      common.Address
	Amount  *big.Int
	TxHash  string
	Pending bool
}

// DepositResult is the outcome of a committed deposit
type DepositResult struct {
	EventID     string
	From        common.Address
	Amount      *big.Int
	PoolBalance *big.Int
}

// StakeInfo is a stake record together with its liveness at read time
type StakeInfo struct {
	domain.StakeRecord
	StakedAt time.Time
	Live     bool
	Quote    *big.Int
}

// JournalEntry is a committed ledger change
type JournalEntry struct {
	Cursor    int64
	EventID   string
	EventType domain.LedgerEventType
	Account   string
	ChangedAt time.Time
	Event     json.RawMessage
}

type staker struct {
	config    Config
	store     store.Store
	oracle    registry.OwnershipOracle
	inspector registry.AccountInspector
	pool      treasury.Pool
	publisher messaging.Publisher
	clock     adapter.Clock
	json      adapter.JSON
	jcs       adapter.JCS
	lookups   pond.ResultPool[*domain.Ownership]
}

// New creates a new staking ledger
func New(
	cfg Config,
	st store.Store,
	oracle registry.OwnershipOracle,
	inspector registry.AccountInspector,
	pool treasury.Pool,
	publisher messaging.Publisher,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
	jcsAdapter adapter.JCS,
) (Staker, error) {
	if cfg.RewardPerSecond == nil || cfg.RewardPerSecond.Sign() <= 0 {
		return nil, fmt.Errorf("reward per second must be positive")
	}
	if domain.IsZeroAddress(cfg.OwnerAddress) {
		return nil, fmt.Errorf("owner address is required")
	}
	if cfg.QueryConcurrency <= 0 {
		cfg.QueryConcurrency = 8
	}
	if publisher == nil {
		publisher = messaging.NewNoopPublisher()
	}

	return &staker{
		config:    cfg,
		store:     st,
		oracle:    oracle,
		inspector: inspector,
		pool:      pool,
		publisher: publisher,
		clock:     clock,
		json:      jsonAdapter,
		jcs:       jcsAdapter,
		lookups:   pond.NewResultPool[*domain.Ownership](cfg.QueryConcurrency),
	}, nil
}

func (s *staker) RewardPerSecond() *big.Int {
	return new(big.Int).Set(s.config.RewardPerSecond)
}

func (s *staker) Close() {
	s.lookups.StopAndWait()
}
