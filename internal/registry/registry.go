package registry

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-staker/internal/domain"
)

// OwnershipOracle answers ownership questions about items held in the external item registry.
// Answers must reflect the registry state at the time of the call; implementations must not cache.
//
//go:generate mockgen -source=registry.go -destination=../mocks/registry.go -package=mocks -mock_names=OwnershipOracle=MockOwnershipOracle,AccountInspector=MockAccountInspector
type OwnershipOracle interface {
	// OwnershipOf returns the current owner, burn status and origin timestamp of an item.
	// Items that were never minted yield a zero Ownership and no error.
	OwnershipOf(ctx context.Context, itemID domain.ItemID) (*domain.Ownership, error)
}

// AccountInspector classifies accounts on the chain the callers live on
type AccountInspector interface {
	// IsContract reports whether the account has executable code
	IsContract(ctx context.Context, account common.Address) (bool, error)
}
