package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-staker/internal/api/middleware"
	"github.com/feral-file/ff-staker/internal/api/shared/constants"
	"github.com/feral-file/ff-staker/internal/api/shared/dto"
	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/staker"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// Stake stakes items of the authenticated caller
	// POST /api/v1/stakes
	Stake(c *gin.Context)

	// Harvest pays the authenticated caller the rewards accrued by items
	// POST /api/v1/harvests
	Harvest(c *gin.Context)

	// GetStakeRecord retrieves the stake record of an item with its liveness and current quote
	// GET /api/v1/stakes/:item_id
	GetStakeRecord(c *gin.Context)

	// ListOwnerStakes retrieves the live stakes in a window of an owner's historical index
	// GET /api/v1/owners/:address/stakes?start=<start>&stop=<stop>
	ListOwnerStakes(c *gin.Context)

	// GetStakeStatus reports whether an item is still staked by an owner
	// GET /api/v1/owners/:address/stakes/:item_id
	GetStakeStatus(c *gin.Context)

	// GetStakeStatuses reports whether each item is still staked by an owner, in request order
	// GET /api/v1/owners/:address/stakes/status?item_ids=<id1>,<id2>
	GetStakeStatuses(c *gin.Context)

	// GetRewardBalance retrieves the reward balance of a holder
	// GET /api/v1/rewards/:address
	GetRewardBalance(c *gin.Context)

	// GetPool retrieves the reward pool balance and rate
	// GET /api/v1/pool
	GetPool(c *gin.Context)

	// GetJournal retrieves committed ledger changes in cursor order
	// GET /api/v1/journal?anchor=<cursor>&limit=<limit>
	GetJournal(c *gin.Context)

	// Withdraw moves funds from the pool to the ledger owner (requires API key)
	// POST /api/v1/admin/withdrawals
	Withdraw(c *gin.Context)

	// Deposit credits the reward pool (requires API key)
	// POST /api/v1/admin/deposits
	Deposit(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// HandlerConfig holds the settings the handlers need besides the ledger
type HandlerConfig struct {
	Debug        bool
	PoolAddress  common.Address
	MaxBatchSize int
}

// handler implements the Handler interface
type handler struct {
	config HandlerConfig
	staker staker.Staker
}

// NewHandler creates a new REST API handler backed by the staking ledger
func NewHandler(cfg HandlerConfig, s staker.Staker) Handler {
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = constants.DEFAULT_MAX_BATCH_SIZE
	}
	return &handler{
		config: cfg,
		staker: s,
	}
}

// bindBatch reads the caller and the item ids of a stake or harvest call
func (h *handler) bindBatch(c *gin.Context) (common.Address, []domain.ItemID, bool) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondBadRequest(c, "Caller is required")
		return common.Address{}, nil, false
	}

	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return common.Address{}, nil, false
	}

	itemIDs, err := req.Validate(h.config.MaxBatchSize)
	if err != nil {
		respondValidationError(c, err)
		return common.Address{}, nil, false
	}

	return caller, itemIDs, true
}

// Stake stakes items of the authenticated caller
func (h *handler) Stake(c *gin.Context) {
	caller, itemIDs, ok := h.bindBatch(c)
	if !ok {
		return
	}

	result, err := h.staker.Stake(c.Request.Context(), caller, itemIDs)
	if err != nil {
		respondError(c, err, "Failed to stake")
		return
	}

	c.JSON(http.StatusCreated, dto.MapStakeResult(result))
}

// Harvest pays the authenticated caller the rewards accrued by items
func (h *handler) Harvest(c *gin.Context) {
	caller, itemIDs, ok := h.bindBatch(c)
	if !ok {
		return
	}

	result, err := h.staker.Harvest(c.Request.Context(), caller, itemIDs)
	if err != nil {
		respondError(c, err, "Failed to harvest")
		return
	}

	c.JSON(http.StatusOK, dto.MapHarvestResult(result))
}

// GetStakeRecord retrieves the stake record of an item
func (h *handler) GetStakeRecord(c *gin.Context) {
	itemID, err := parseItemIDParam(c)
	if err != nil {
		respondBadRequest(c, "Invalid item id", err.Error())
		return
	}

	info, err := h.staker.GetStakeRecord(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, domain.ErrStakeRecordNotFound) {
			respondNotFound(c, "Stake record not found")
			return
		}
		respondError(c, err, "Failed to get stake record")
		return
	}

	c.JSON(http.StatusOK, dto.MapStakeInfo(info))
}

// ListOwnerStakes retrieves the live stakes in a window of an owner's historical index
func (h *handler) ListOwnerStakes(c *gin.Context) {
	owner, err := parseAddressParam(c)
	if err != nil {
		respondBadRequest(c, "Invalid address", err.Error())
		return
	}

	start, stop, err := ParseOwnerStakesQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	itemIDs, err := h.staker.StakedTokensOfOwner(c.Request.Context(), owner, start, stop)
	if err != nil {
		respondError(c, err, "Failed to list owner stakes")
		return
	}

	c.JSON(http.StatusOK, dto.OwnerStakesResponse{
		Owner:   owner.Hex(),
		Start:   start,
		Stop:    stop,
		ItemIDs: itemIDs,
	})
}

// GetStakeStatus reports whether an item is still staked by an owner
func (h *handler) GetStakeStatus(c *gin.Context) {
	owner, err := parseAddressParam(c)
	if err != nil {
		respondBadRequest(c, "Invalid address", err.Error())
		return
	}

	itemID, err := parseItemIDParam(c)
	if err != nil {
		respondBadRequest(c, "Invalid item id", err.Error())
		return
	}

	staked, err := h.staker.IsStillStakedForOwner(c.Request.Context(), owner, itemID)
	if err != nil {
		respondError(c, err, "Failed to get stake status")
		return
	}

	c.JSON(http.StatusOK, dto.StakeStatusResponse{
		Owner:  owner.Hex(),
		ItemID: itemID,
		Staked: staked,
	})
}

// GetStakeStatuses reports whether each item is still staked by an owner
func (h *handler) GetStakeStatuses(c *gin.Context) {
	owner, err := parseAddressParam(c)
	if err != nil {
		respondBadRequest(c, "Invalid address", err.Error())
		return
	}

	itemIDs, err := ParseStakeStatusQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	staked, err := h.staker.AreStaked(c.Request.Context(), owner, itemIDs)
	if err != nil {
		respondError(c, err, "Failed to get stake statuses")
		return
	}

	c.JSON(http.StatusOK, dto.StakeStatusListResponse{
		Owner:   owner.Hex(),
		ItemIDs: itemIDs,
		Staked:  staked,
	})
}

// GetRewardBalance retrieves the reward balance of a holder
func (h *handler) GetRewardBalance(c *gin.Context) {
	holder, err := parseAddressParam(c)
	if err != nil {
		respondBadRequest(c, "Invalid address", err.Error())
		return
	}

	balance, err := h.staker.RewardBalance(c.Request.Context(), holder)
	if err != nil {
		respondError(c, err, "Failed to get reward balance")
		return
	}

	c.JSON(http.StatusOK, dto.RewardBalanceResponse{
		Holder:  holder.Hex(),
		Balance: balance.String(),
	})
}

// GetPool retrieves the reward pool balance and rate
func (h *handler) GetPool(c *gin.Context) {
	balance, err := h.staker.PoolBalance(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get pool balance")
		return
	}

	c.JSON(http.StatusOK, dto.PoolResponse{
		Address:         h.config.PoolAddress.Hex(),
		Balance:         balance.String(),
		RewardPerSecond: h.staker.RewardPerSecond().String(),
	})
}

// GetJournal retrieves committed ledger changes in cursor order
func (h *handler) GetJournal(c *gin.Context) {
	params, err := ParseJournalQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	entries, err := h.staker.GetJournal(c.Request.Context(), params.Anchor, params.Account, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to get journal")
		return
	}

	c.JSON(http.StatusOK, dto.MapJournal(entries, params.Limit))
}

// Withdraw moves funds from the pool to the ledger owner
func (h *handler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}

	amount, err := req.Validate()
	if err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.staker.Withdraw(c.Request.Context(), amount)
	if err != nil {
		respondError(c, err, "Failed to withdraw")
		return
	}

	c.JSON(http.StatusOK, dto.WithdrawResponse{
		EventID: result.EventID,
		To:      result.To.Hex(),
		Amount:  result.Amount.String(),
		TxHash:  result.TxHash,
		Pending: result.Pending,
	})
}

// Deposit credits the reward pool
func (h *handler) Deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}

	from, amount, err := req.Validate()
	if err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.staker.Deposit(c.Request.Context(), from, amount)
	if err != nil {
		respondError(c, err, "Failed to deposit")
		return
	}

	c.JSON(http.StatusOK, dto.DepositResponse{
		EventID:     result.EventID,
		From:        result.From.Hex(),
		Amount:      result.Amount.String(),
		PoolBalance: result.PoolBalance.String(),
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-staker",
	})
}
