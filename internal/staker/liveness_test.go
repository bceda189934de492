package staker_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/staker"
)

func TestIsLive(t *testing.T) {
	alice := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob := common.HexToAddress("0x00000000000000000000000000000000000000b0")

	record := &domain.StakeRecord{ItemID: "1", Owner: alice, OriginTimestamp: 100, LastHarvestTimestamp: 120}

	tests := []struct {
		name      string
		record    *domain.StakeRecord
		ownership *domain.Ownership
		want      bool
	}{
		{
			name:      "held by staker since stake",
			record:    record,
			ownership: &domain.Ownership{Owner: alice, OriginTimestamp: 100},
			want:      true,
		},
		{
			name:      "no record",
			record:    nil,
			ownership: &domain.Ownership{Owner: alice, OriginTimestamp: 100},
			want:      false,
		},
		{
			name:      "no ownership answer",
			record:    record,
			ownership: nil,
			want:      false,
		},
		{
			name:      "transferred away",
			record:    record,
			ownership: &domain.Ownership{Owner: bob, OriginTimestamp: 150},
			want:      false,
		},
		{
			name:      "transferred away and back",
			record:    record,
			ownership: &domain.Ownership{Owner: alice, OriginTimestamp: 200},
			want:      false,
		},
		{
			name:      "burned by staker",
			record:    record,
			ownership: &domain.Ownership{Owner: alice, Burned: true, OriginTimestamp: 100},
			want:      false,
		},
		{
			name:      "zero owner record",
			record:    &domain.StakeRecord{ItemID: "1", OriginTimestamp: 0},
			ownership: &domain.Ownership{},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, staker.IsLive(tt.record, tt.ownership))
		})
	}
}

func TestIsLiveFor(t *testing.T) {
	alice := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob := common.HexToAddress("0x00000000000000000000000000000000000000b0")

	record := &domain.StakeRecord{ItemID: "1", Owner: alice, OriginTimestamp: 100}
	ownership := &domain.Ownership{Owner: alice, OriginTimestamp: 100}

	assert.True(t, staker.IsLiveFor(alice, record, ownership))
	assert.False(t, staker.IsLiveFor(bob, record, ownership))
	assert.False(t, staker.IsLiveFor(common.Address{}, record, ownership))
	assert.False(t, staker.IsLiveFor(alice, nil, ownership))
}
