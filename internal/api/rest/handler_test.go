package rest_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"math"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-staker/internal/api/middleware"
	"github.com/feral-file/ff-staker/internal/api/rest"
	"github.com/feral-file/ff-staker/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-staker/internal/api/shared/errors"
	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/mocks"
	"github.com/feral-file/ff-staker/internal/staker"
)

var (
	alice       = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	poolAddress = common.HexToAddress("0x00000000000000000000000000000000000000f0")
)

type testAPI struct {
	router *gin.Engine
	staker *mocks.MockStaker
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockStaker := mocks.NewMockStaker(ctrl)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicKey := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   alice.Hex(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := rest.NewHandler(rest.HandlerConfig{PoolAddress: poolAddress, MaxBatchSize: 3}, mockStaker)
	rest.SetupRoutes(router, handler, middleware.AuthConfig{
		JWTPublicKey: publicKey,
		APIKeys:      []string{"admin-key"},
	})

	return &testAPI{router: router, staker: mockStaker, token: token}
}

func (a *testAPI) do(method, path, body, authorization string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestStake(t *testing.T) {
	t.Run("stakes for the token subject", func(t *testing.T) {
		api := newTestAPI(t)
		stakedAt := time.Unix(1_000, 0).UTC()
		api.staker.EXPECT().
			Stake(gomock.Any(), alice, []domain.ItemID{"1", "2"}).
			Return(&staker.StakeResult{EventID: "evt", Owner: alice, ItemIDs: []domain.ItemID{"1", "2"}, StakedAt: stakedAt}, nil)

		w := api.do(http.MethodPost, "/api/v1/stakes", `{"item_ids":["1","2"]}`, "Bearer "+api.token)

		require.Equal(t, http.StatusCreated, w.Code)
		resp := decode[dto.StakeResponse](t, w)
		assert.Equal(t, "evt", resp.EventID)
		assert.Equal(t, alice.Hex(), resp.Owner)
		assert.Equal(t, []domain.ItemID{"1", "2"}, resp.ItemIDs)
		assert.True(t, stakedAt.Equal(resp.StakedAt))
	})

	t.Run("requires a caller token", func(t *testing.T) {
		api := newTestAPI(t)
		w := api.do(http.MethodPost, "/api/v1/stakes", `{"item_ids":["1"]}`, "ApiKey admin-key")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		api := newTestAPI(t)
		w := api.do(http.MethodPost, "/api/v1/stakes", `{"item_ids":[]}`, "Bearer "+api.token)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("rejects an oversized batch", func(t *testing.T) {
		api := newTestAPI(t)
		w := api.do(http.MethodPost, "/api/v1/stakes", `{"item_ids":["1","2","3","4"]}`, "Bearer "+api.token)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		api := newTestAPI(t)
		w := api.do(http.MethodPost, "/api/v1/stakes", `{"item_ids":["abc"]}`, "Bearer "+api.token)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("maps ledger rejections", func(t *testing.T) {
		tests := []struct {
			err    error
			status int
			code   apierrors.ErrorCode
		}{
			{domain.WrongOwner("2"), http.StatusUnprocessableEntity, apierrors.ErrorCode(domain.CodeWrongOwner)},
			{domain.TokenIsBurned("2"), http.StatusUnprocessableEntity, apierrors.ErrorCode(domain.CodeTokenIsBurned)},
			{domain.AlreadyStaked("2"), http.StatusConflict, apierrors.ErrorCode(domain.CodeAlreadyStaked)},
			{domain.ErrContractsNotAllowed, http.StatusForbidden, apierrors.ErrorCode(domain.CodeContractsNotAllowed)},
		}
		for _, tt := range tests {
			api := newTestAPI(t)
			api.staker.EXPECT().Stake(gomock.Any(), alice, gomock.Any()).Return(nil, tt.err)

			w := api.do(http.MethodPost, "/api/v1/stakes", `{"item_ids":["1","2"]}`, "Bearer "+api.token)

			assert.Equal(t, tt.status, w.Code, tt.err.Error())
			apiErr := decode[apierrors.APIError](t, w)
			assert.Equal(t, tt.code, apiErr.Code)
		}
	})

	t.Run("hides internal errors", func(t *testing.T) {
		api := newTestAPI(t)
		api.staker.EXPECT().Stake(gomock.Any(), alice, gomock.Any()).Return(nil, errors.New("registry unavailable"))

		w := api.do(http.MethodPost, "/api/v1/stakes", `{"item_ids":["1"]}`, "Bearer "+api.token)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "registry unavailable")
	})
}

func TestHarvest(t *testing.T) {
	api := newTestAPI(t)
	api.staker.EXPECT().
		Harvest(gomock.Any(), alice, []domain.ItemID{"7"}).
		Return(&staker.HarvestResult{
			EventID:     "evt",
			Owner:       alice,
			ItemIDs:     []domain.ItemID{"7"},
			Amount:      big.NewInt(1070),
			HarvestedAt: time.Unix(2_000, 0),
			TxHash:      "0xabc",
			Pending:     true,
		}, nil)

	w := api.do(http.MethodPost, "/api/v1/harvests", `{"item_ids":["7"]}`, "Bearer "+api.token)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.HarvestResponse](t, w)
	assert.Equal(t, "1070", resp.Amount)
	assert.Equal(t, "0xabc", resp.TxHash)
	assert.True(t, resp.Pending)

	api.staker.EXPECT().Harvest(gomock.Any(), alice, gomock.Any()).Return(nil, domain.ErrNotEnoughFunds)
	w = api.do(http.MethodPost, "/api/v1/harvests", `{"item_ids":["7"]}`, "Bearer "+api.token)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetStakeRecord(t *testing.T) {
	api := newTestAPI(t)
	api.staker.EXPECT().GetStakeRecord(gomock.Any(), domain.ItemID("5")).Return(&staker.StakeInfo{
		StakeRecord: domain.StakeRecord{ItemID: "5", Owner: alice, OriginTimestamp: 100, LastHarvestTimestamp: 150},
		StakedAt:    time.Unix(100, 0),
		Live:        true,
		Quote:       big.NewInt(42),
	}, nil)
	api.staker.EXPECT().GetStakeRecord(gomock.Any(), domain.ItemID("6")).Return(nil, domain.ErrStakeRecordNotFound)

	w := api.do(http.MethodGet, "/api/v1/stakes/5", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.StakeRecordResponse](t, w)
	assert.Equal(t, domain.ItemID("5"), resp.ItemID)
	assert.Equal(t, alice.Hex(), resp.Owner)
	assert.True(t, resp.Live)
	assert.Equal(t, "42", resp.Quote)

	w = api.do(http.MethodGet, "/api/v1/stakes/6", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/v1/stakes/x", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOwnerStakes(t *testing.T) {
	api := newTestAPI(t)
	api.staker.EXPECT().StakedTokensOfOwner(gomock.Any(), alice, uint64(0), uint64(100)).Return([]domain.ItemID{"1"}, nil)
	api.staker.EXPECT().StakedTokensOfOwner(gomock.Any(), alice, uint64(2), uint64(4)).Return([]domain.ItemID{}, nil)
	api.staker.EXPECT().StakedTokensOfOwner(gomock.Any(), alice, uint64(4), uint64(4)).Return(nil, domain.ErrInvalidQueryRange)

	w := api.do(http.MethodGet, "/api/v1/owners/"+alice.Hex()+"/stakes", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.OwnerStakesResponse](t, w)
	assert.Equal(t, []domain.ItemID{"1"}, resp.ItemIDs)
	assert.Equal(t, uint64(100), resp.Stop)

	w = api.do(http.MethodGet, "/api/v1/owners/"+alice.Hex()+"/stakes?start=2&stop=4", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.OwnerStakesResponse](t, w).ItemIDs)

	w = api.do(http.MethodGet, "/api/v1/owners/"+alice.Hex()+"/stakes?start=4&stop=4", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apierrors.ErrorCode(domain.CodeInvalidQueryRange), decode[apierrors.APIError](t, w).Code)

	w = api.do(http.MethodGet, "/api/v1/owners/nobody/stakes", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOwnerStakes_LargeBounds(t *testing.T) {
	api := newTestAPI(t)
	nearMax := uint64(math.MaxUint64 - 10)
	api.staker.EXPECT().StakedTokensOfOwner(gomock.Any(), alice, nearMax, uint64(math.MaxUint64)).Return([]domain.ItemID{}, nil)
	api.staker.EXPECT().StakedTokensOfOwner(gomock.Any(), alice, uint64(0), uint64(math.MaxUint64)).Return([]domain.ItemID{"1"}, nil)

	// the default window saturates instead of wrapping below start
	w := api.do(http.MethodGet, "/api/v1/owners/"+alice.Hex()+"/stakes?start="+strconv.FormatUint(nearMax, 10), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint64(math.MaxUint64), decode[dto.OwnerStakesResponse](t, w).Stop)

	w = api.do(http.MethodGet, "/api/v1/owners/"+alice.Hex()+"/stakes?stop=18446744073709551615", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []domain.ItemID{"1"}, decode[dto.OwnerStakesResponse](t, w).ItemIDs)
}

func TestStakeStatus(t *testing.T) {
	api := newTestAPI(t)
	api.staker.EXPECT().IsStillStakedForOwner(gomock.Any(), alice, domain.ItemID("3")).Return(true, nil)
	api.staker.EXPECT().
		AreStaked(gomock.Any(), alice, []domain.ItemID{"3", "4", "3"}).
		Return([]bool{true, false, true}, nil)

	w := api.do(http.MethodGet, "/api/v1/owners/"+alice.Hex()+"/stakes/3", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.StakeStatusResponse](t, w).Staked)

	w = api.do(http.MethodGet, "/api/v1/owners/"+alice.Hex()+"/stakes/status?item_ids=3,4&item_ids=3", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.StakeStatusListResponse](t, w)
	assert.Equal(t, []bool{true, false, true}, resp.Staked)

	w = api.do(http.MethodGet, "/api/v1/owners/"+alice.Hex()+"/stakes/status", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRewardsAndPool(t *testing.T) {
	api := newTestAPI(t)
	api.staker.EXPECT().RewardBalance(gomock.Any(), alice).Return(big.NewInt(1070), nil)
	api.staker.EXPECT().PoolBalance(gomock.Any()).Return(big.NewInt(5000), nil)
	api.staker.EXPECT().RewardPerSecond().Return(big.NewInt(1000))

	w := api.do(http.MethodGet, "/api/v1/rewards/"+alice.Hex(), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1070", decode[dto.RewardBalanceResponse](t, w).Balance)

	w = api.do(http.MethodGet, "/api/v1/pool", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	pool := decode[dto.PoolResponse](t, w)
	assert.Equal(t, poolAddress.Hex(), pool.Address)
	assert.Equal(t, "5000", pool.Balance)
	assert.Equal(t, "1000", pool.RewardPerSecond)
}

func TestGetJournal(t *testing.T) {
	api := newTestAPI(t)
	anchor := int64(10)
	api.staker.EXPECT().
		GetJournal(gomock.Any(), &anchor, gomock.Nil(), 2).
		Return([]staker.JournalEntry{
			{Cursor: 11, EventID: "a", EventType: domain.LedgerEventStake},
			{Cursor: 12, EventID: "b", EventType: domain.LedgerEventHarvest},
		}, nil)
	api.staker.EXPECT().
		GetJournal(gomock.Any(), gomock.Nil(), gomock.Nil(), 20).
		Return([]staker.JournalEntry{{Cursor: 1, EventID: "a", EventType: domain.LedgerEventStake}}, nil)

	w := api.do(http.MethodGet, "/api/v1/journal?anchor=10&limit=2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[dto.JournalResponse](t, w)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.NextAnchor)
	assert.Equal(t, int64(12), *page.NextAnchor)

	w = api.do(http.MethodGet, "/api/v1/journal", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[dto.JournalResponse](t, w).NextAnchor)

	api.staker.EXPECT().
		GetJournal(gomock.Any(), gomock.Nil(), &alice, 20).
		Return([]staker.JournalEntry{{Cursor: 3, EventID: "c", EventType: domain.LedgerEventHarvest, Account: alice.Hex()}}, nil)

	w = api.do(http.MethodGet, "/api/v1/journal?account="+strings.ToLower(alice.Hex()), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[dto.JournalResponse](t, w).Items, 1)

	w = api.do(http.MethodGet, "/api/v1/journal?account=nobody", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAdmin(t *testing.T) {
	t.Run("withdraw", func(t *testing.T) {
		api := newTestAPI(t)
		owner := common.HexToAddress("0x00000000000000000000000000000000000000ee")
		api.staker.EXPECT().Withdraw(gomock.Any(), big.NewInt(300)).Return(&staker.WithdrawResult{
			EventID: "evt", To: owner, Amount: big.NewInt(300),
		}, nil)

		w := api.do(http.MethodPost, "/api/v1/admin/withdrawals", `{"amount":"300"}`, "ApiKey admin-key")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, owner.Hex(), decode[dto.WithdrawResponse](t, w).To)

		w = api.do(http.MethodPost, "/api/v1/admin/withdrawals", `{"amount":"0"}`, "ApiKey admin-key")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		w = api.do(http.MethodPost, "/api/v1/admin/withdrawals", `{"amount":"300"}`, "Bearer "+api.token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("withdraw more than the pool holds", func(t *testing.T) {
		api := newTestAPI(t)
		api.staker.EXPECT().Withdraw(gomock.Any(), gomock.Any()).Return(nil, domain.ErrNotEnoughFunds)

		w := api.do(http.MethodPost, "/api/v1/admin/withdrawals", `{"amount":"300"}`, "ApiKey admin-key")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("deposit", func(t *testing.T) {
		api := newTestAPI(t)
		api.staker.EXPECT().Deposit(gomock.Any(), alice, big.NewInt(500)).Return(&staker.DepositResult{
			EventID: "evt", From: alice, Amount: big.NewInt(500), PoolBalance: big.NewInt(1500),
		}, nil)

		w := api.do(http.MethodPost, "/api/v1/admin/deposits", `{"from":"`+alice.Hex()+`","amount":"500"}`, "ApiKey admin-key")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1500", decode[dto.DepositResponse](t, w).PoolBalance)
	})

	t.Run("deposit not supported by the pool", func(t *testing.T) {
		api := newTestAPI(t)
		api.staker.EXPECT().Deposit(gomock.Any(), alice, gomock.Any()).Return(nil, domain.ErrDepositNotSupported)

		w := api.do(http.MethodPost, "/api/v1/admin/deposits", `{"from":"`+alice.Hex()+`","amount":"500"}`, "ApiKey admin-key")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, apierrors.ErrCodeNotSupported, decode[apierrors.APIError](t, w).Code)
	})
}

func TestHealthCheck(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
