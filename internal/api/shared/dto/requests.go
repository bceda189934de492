package dto

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	apierrors "github.com/feral-file/ff-staker/internal/api/shared/errors"
	"github.com/feral-file/ff-staker/internal/domain"
)

// BatchRequest represents the request body of stake and harvest calls
type BatchRequest struct {
	ItemIDs []string `json:"item_ids"`
}

// Validate validates the request body and returns the parsed item ids in request order
func (r *BatchRequest) Validate(maxBatchSize int) ([]domain.ItemID, error) {
	// Validate: item ids must be provided
	if len(r.ItemIDs) == 0 {
		return nil, apierrors.NewValidationError("item_ids is required")
	}

	// Validate: maximum number of item ids allowed
	if maxBatchSize > 0 && len(r.ItemIDs) > maxBatchSize {
		return nil, apierrors.NewValidationError(fmt.Sprintf("maximum %d item ids allowed", maxBatchSize))
	}

	ids, err := domain.ParseItemIDs(r.ItemIDs)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	return ids, nil
}

// WithdrawRequest represents the request body of an administrative withdrawal
type WithdrawRequest struct {
	Amount string `json:"amount"`
}

// Validate validates the request body and returns the amount in base units
func (r *WithdrawRequest) Validate() (*big.Int, error) {
	return parsePositiveAmount(r.Amount)
}

// DepositRequest represents the request body of a pool deposit
type DepositRequest struct {
	From   string `json:"from"`
	Amount string `json:"amount"`
}

// Validate validates the request body and returns the depositor and the amount in base units
func (r *DepositRequest) Validate() (common.Address, *big.Int, error) {
	from, err := domain.ParseAddress(r.From)
	if err != nil {
		return common.Address{}, nil, apierrors.NewValidationError(err.Error())
	}

	amount, err := parsePositiveAmount(r.Amount)
	if err != nil {
		return common.Address{}, nil, err
	}

	return from, amount, nil
}

func parsePositiveAmount(s string) (*big.Int, error) {
	if s == "" {
		return nil, apierrors.NewValidationError("amount is required")
	}

	amount, err := domain.ParseAmount(s)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}
	if amount.Sign() == 0 {
		return nil, apierrors.NewValidationError("amount must be positive")
	}

	return amount, nil
}
