package staker

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-staker/internal/domain"
)

// guard rejects callers that are contract accounts.
// It runs once per state-changing call, before any item is looked at.
func (s *staker) guard(ctx context.Context, caller common.Address) error {
	isContract, err := s.inspector.IsContract(ctx, caller)
	if err != nil {
		return fmt.Errorf("failed to inspect caller account: %w", err)
	}
	if isContract {
		return domain.ErrContractsNotAllowed
	}

	return nil
}
