package rest

import (
	"fmt"
	"math"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-staker/internal/api/shared/constants"
	"github.com/feral-file/ff-staker/internal/domain"
)

// OwnerStakesQueryParams holds query parameters for GET /owners/:address/stakes
type OwnerStakesQueryParams struct {
	Start uint64  `form:"start,default=0"`
	Stop  *uint64 `form:"stop"`
}

// StakeStatusQueryParams holds query parameters for GET /owners/:address/stakes/status
type StakeStatusQueryParams struct {
	ItemIDs []string `form:"item_ids"`
}

// JournalQueryParams holds query parameters for GET /journal
type JournalQueryParams struct {
	Anchor     *int64  `form:"anchor"`
	AccountHex *string `form:"account"`
	Limit      int     `form:"limit,default=20"`

	Account *common.Address `form:"-"`
}

// ParseOwnerStakesQuery parses query parameters for GET /owners/:address/stakes.
// Without stop the window covers DEFAULT_STAKES_WINDOW entries from start.
func ParseOwnerStakesQuery(c *gin.Context) (start, stop uint64, err error) {
	var params OwnerStakesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return 0, 0, err
	}

	start = params.Start
	stop = math.MaxUint64
	if start < math.MaxUint64-constants.DEFAULT_STAKES_WINDOW {
		stop = start + constants.DEFAULT_STAKES_WINDOW
	}
	if params.Stop != nil {
		stop = *params.Stop
	}
	return start, stop, nil
}

// ParseStakeStatusQuery parses query parameters for GET /owners/:address/stakes/status.
// Ids may be repeated or comma separated; order and duplicates are preserved.
func ParseStakeStatusQuery(c *gin.Context) ([]domain.ItemID, error) {
	var params StakeStatusQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	values := make([]string, 0, len(params.ItemIDs))
	for _, v := range params.ItemIDs {
		values = append(values, strings.Split(v, ",")...)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("item_ids is required")
	}
	if len(values) > constants.MAX_STATUS_ITEMS {
		return nil, fmt.Errorf("maximum %d item ids allowed", constants.MAX_STATUS_ITEMS)
	}

	return domain.ParseItemIDs(values)
}

// ParseJournalQuery parses query parameters for GET /journal
func ParseJournalQuery(c *gin.Context) (*JournalQueryParams, error) {
	var params JournalQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.AccountHex != nil {
		account, err := domain.ParseAddress(*params.AccountHex)
		if err != nil {
			return nil, err
		}
		params.Account = &account
	}

	// Cap limits
	if params.Limit <= 0 {
		params.Limit = constants.DEFAULT_JOURNAL_LIMIT
	}
	if params.Limit > domain.MAX_JOURNAL_PAGE_SIZE {
		params.Limit = domain.MAX_JOURNAL_PAGE_SIZE
	}

	return &params, nil
}

// parseAddressParam parses the :address path parameter
func parseAddressParam(c *gin.Context) (common.Address, error) {
	return domain.ParseAddress(c.Param("address"))
}

// parseItemIDParam parses the :item_id path parameter
func parseItemIDParam(c *gin.Context) (domain.ItemID, error) {
	return domain.ParseItemID(c.Param("item_id"))
}
