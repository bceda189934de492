package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ItemID is the registry identifier of a staked item.
// It is kept as a canonical base-10 string so that uint256 token ids survive storage and JSON.
type ItemID string

// ParseItemID parses and normalizes a base-10 item id
func ParseItemID(s string) (ItemID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty item id")
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return "", fmt.Errorf("invalid item id: %s", s)
	}
	if n.Sign() < 0 {
		return "", fmt.Errorf("negative item id: %s", s)
	}
	if n.BitLen() > 256 {
		return "", fmt.Errorf("item id exceeds uint256: %s", s)
	}

	return ItemID(n.String()), nil
}

// ParseItemIDs parses a list of item ids preserving order and duplicates
func ParseItemIDs(values []string) ([]ItemID, error) {
	ids := make([]ItemID, 0, len(values))
	for _, v := range values {
		id, err := ParseItemID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// String returns the string representation of the ItemID
func (id ItemID) String() string {
	return string(id)
}

// BigInt returns the item id as a big integer
func (id ItemID) BigInt() *big.Int {
	n, ok := new(big.Int).SetString(string(id), 10)
	if !ok {
		return new(big.Int)
	}
	return n
}

// ParseAddress parses a hex account address
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address: %s", s)
	}
	return common.HexToAddress(s), nil
}

// IsZeroAddress reports whether addr is the zero address
func IsZeroAddress(addr common.Address) bool {
	return addr == (common.Address{})
}

// ParseAmount parses a base-10 token amount in base units
func ParseAmount(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", s)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("negative amount: %s", s)
	}
	return n, nil
}

// StakeRecord is the ledger's view of a staked item.
// Liveness is never stored here; it is derived from an Ownership snapshot at read time.
type StakeRecord struct {
	ItemID               ItemID         `json:"item_id"`
	Owner                common.Address `json:"owner"`
	OriginTimestamp      int64          `json:"origin_timestamp"`
	LastHarvestTimestamp int64          `json:"last_harvest_timestamp"`
}

// Ownership is a point-in-time answer from the item registry
type Ownership struct {
	// Owner is the registry-recorded holder. For burned items it is the last holder, if the registry keeps it.
	Owner common.Address `json:"owner"`
	// Burned reports whether the item was destroyed
	Burned bool `json:"burned"`
	// OriginTimestamp is the registry time of the mint or of the last transfer
	OriginTimestamp int64 `json:"origin_timestamp"`
}

// CurrentOwner returns the current holder, or nil when the item never existed or was burned
func (o *Ownership) CurrentOwner() *common.Address {
	if o == nil || o.Burned || IsZeroAddress(o.Owner) {
		return nil
	}
	owner := o.Owner
	return &owner
}

// LedgerEventType represents the type of a committed ledger change
type LedgerEventType string

const (
	LedgerEventStake    LedgerEventType = "stake"
	LedgerEventHarvest  LedgerEventType = "harvest"
	LedgerEventWithdraw LedgerEventType = "withdraw"
	LedgerEventDeposit  LedgerEventType = "deposit"
)

// LedgerEvent is the normalized record of a committed ledger change.
// It is written to the journal and published to NATS.
type LedgerEvent struct {
	EventID   string          `json:"event_id"`
	EventType LedgerEventType `json:"event_type"`
	Account   string          `json:"account"`            // caller, withdrawal recipient or depositor
	ItemIDs   []ItemID        `json:"item_ids,omitempty"` // stake/harvest only
	Amount    string          `json:"amount,omitempty"`   // base units
	Timestamp time.Time       `json:"timestamp"`
	// TxHash and PayoutPending describe an on-chain payout, if any
	TxHash        string `json:"tx_hash,omitempty"`
	PayoutPending bool   `json:"payout_pending,omitempty"`
}
