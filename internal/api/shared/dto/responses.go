package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/staker"
)

// StakeResponse represents the response of a committed stake batch
type StakeResponse struct {
	EventID  string          `json:"event_id,omitempty"`
	Owner    string          `json:"owner"`
	ItemIDs  []domain.ItemID `json:"item_ids"`
	StakedAt time.Time       `json:"staked_at"`
}

// HarvestResponse represents the response of a committed harvest batch
type HarvestResponse struct {
	EventID     string          `json:"event_id,omitempty"`
	Owner       string          `json:"owner"`
	ItemIDs     []domain.ItemID `json:"item_ids"`
	Amount      string          `json:"amount"`
	HarvestedAt time.Time       `json:"harvested_at"`
	TxHash      string          `json:"tx_hash,omitempty"`
	Pending     bool            `json:"payout_pending,omitempty"`
}

// StakeRecordResponse represents a stake record with its liveness at read time
type StakeRecordResponse struct {
	ItemID               domain.ItemID `json:"item_id"`
	Owner                string        `json:"owner"`
	OriginTimestamp      int64         `json:"origin_timestamp"`
	LastHarvestTimestamp int64         `json:"last_harvest_timestamp"`
	StakedAt             time.Time     `json:"staked_at"`
	Live                 bool          `json:"live"`
	Quote                string        `json:"quote"`
}

// OwnerStakesResponse represents a window of an owner's historical index filtered to live stakes
type OwnerStakesResponse struct {
	Owner   string          `json:"owner"`
	Start   uint64          `json:"start"`
	Stop    uint64          `json:"stop"`
	ItemIDs []domain.ItemID `json:"item_ids"`
}

// StakeStatusResponse represents the liveness of one item for an owner
type StakeStatusResponse struct {
	Owner  string        `json:"owner"`
	ItemID domain.ItemID `json:"item_id"`
	Staked bool          `json:"staked"`
}

// StakeStatusListResponse represents the liveness of several items for an owner, in request order
type StakeStatusListResponse struct {
	Owner   string          `json:"owner"`
	ItemIDs []domain.ItemID `json:"item_ids"`
	Staked  []bool          `json:"staked"`
}

// RewardBalanceResponse represents the reward balance of a holder
type RewardBalanceResponse struct {
	Holder  string `json:"holder"`
	Balance string `json:"balance"`
}

// PoolResponse represents the reward pool state
type PoolResponse struct {
	Address         string `json:"address"`
	Balance         string `json:"balance"`
	RewardPerSecond string `json:"reward_per_second"`
}

// WithdrawResponse represents a committed withdrawal
type WithdrawResponse struct {
	EventID string `json:"event_id"`
	To      string `json:"to"`
	Amount  string `json:"amount"`
	TxHash  string `json:"tx_hash,omitempty"`
	Pending bool   `json:"payout_pending,omitempty"`
}

// DepositResponse represents a committed deposit
type DepositResponse struct {
	EventID     string `json:"event_id"`
	From        string `json:"from"`
	Amount      string `json:"amount"`
	PoolBalance string `json:"pool_balance"`
}

// JournalEntryResponse represents a committed ledger change
type JournalEntryResponse struct {
	Cursor    int64                  `json:"cursor"`
	EventID   string                 `json:"event_id"`
	EventType domain.LedgerEventType `json:"event_type"`
	Account   string                 `json:"account"`
	ChangedAt time.Time              `json:"changed_at"`
	Event     json.RawMessage        `json:"event,omitempty"`
}

// JournalResponse represents a page of the ledger journal
type JournalResponse struct {
	Items      []JournalEntryResponse `json:"items"`
	NextAnchor *int64                 `json:"next_anchor,omitempty"` // cursor for the next page, absent on the last page
}

// MapStakeResult maps a committed stake batch
func MapStakeResult(r *staker.StakeResult) *StakeResponse {
	return &StakeResponse{
		EventID:  r.EventID,
		Owner:    r.Owner.Hex(),
		ItemIDs:  r.ItemIDs,
		StakedAt: r.StakedAt,
	}
}

// MapHarvestResult maps a committed harvest batch
func MapHarvestResult(r *staker.HarvestResult) *HarvestResponse {
	return &HarvestResponse{
		EventID:     r.EventID,
		Owner:       r.Owner.Hex(),
		ItemIDs:     r.ItemIDs,
		Amount:      r.Amount.String(),
		HarvestedAt: r.HarvestedAt,
		TxHash:      r.TxHash,
		Pending:     r.Pending,
	}
}

// MapStakeInfo maps a stake record read
func MapStakeInfo(info *staker.StakeInfo) *StakeRecordResponse {
	return &StakeRecordResponse{
		ItemID:               info.ItemID,
		Owner:                info.Owner.Hex(),
		OriginTimestamp:      info.OriginTimestamp,
		LastHarvestTimestamp: info.LastHarvestTimestamp,
		StakedAt:             info.StakedAt,
		Live:                 info.Live,
		Quote:                info.Quote.String(),
	}
}

// MapJournal maps a journal page. A full page carries the anchor of its last entry.
func MapJournal(entries []staker.JournalEntry, limit int) *JournalResponse {
	resp := &JournalResponse{Items: make([]JournalEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Items = append(resp.Items, JournalEntryResponse{
			Cursor:    e.Cursor,
			EventID:   e.EventID,
			EventType: e.EventType,
			Account:   e.Account,
			ChangedAt: e.ChangedAt,
			Event:     e.Event,
		})
	}

	if len(entries) > 0 && len(entries) >= limit {
		next := entries[len(entries)-1].Cursor
		resp.NextAnchor = &next
	}

	return resp
}
