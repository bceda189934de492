package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-staker/internal/adapter"
	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/logger"
	"github.com/feral-file/ff-staker/internal/mocks"
	ethprovider "github.com/feral-file/ff-staker/internal/providers/ethereum"
	"github.com/feral-file/ff-staker/internal/ratelimit"
)

var (
	itemContract  = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	rewardToken   = common.HexToAddress("0x00000000000000000000000000000000000000B2")
	holderAddress = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

func init() {
	_ = logger.Initialize(logger.Config{Debug: true})
}

func newTestClient(ethClient adapter.EthClient) ethprovider.EthereumClient {
	return ethprovider.NewClient(ethprovider.Config{
		ChainID:             big.NewInt(31337),
		ItemContract:        itemContract,
		RetryMaxElapsed:     500 * time.Millisecond,
		ReceiptPollInterval: time.Millisecond,
	}, ethClient, adapter.NewClock())
}

// packOwnership encodes an explicitOwnershipOf return value
func packOwnership(t *testing.T, owner common.Address, start uint64, burned bool) []byte {
	tupleType, err := abi.NewType("tuple", "struct IERC721A.TokenOwnership", []abi.ArgumentMarshaling{
		{Name: "addr", Type: "address"},
		{Name: "startTimestamp", Type: "uint64"},
		{Name: "burned", Type: "bool"},
		{Name: "extraData", Type: "uint24"},
	})
	require.NoError(t, err)

	args := abi.Arguments{{Type: tupleType}}
	data, err := args.Pack(struct {
		Addr           common.Address
		StartTimestamp uint64
		Burned         bool
		ExtraData      *big.Int
	}{owner, start, burned, big.NewInt(0)})
	require.NoError(t, err)
	return data
}

func packUint256(t *testing.T, v *big.Int) []byte {
	uintType, err := abi.NewType("uint256", "", nil)
	require.NoError(t, err)
	data, err := abi.Arguments{{Type: uintType}}.Pack(v)
	require.NoError(t, err)
	return data
}

func TestOwnershipOf(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(*mocks.MockEthClient)
		expected    *domain.Ownership
		expectedErr string
	}{
		{
			name: "held item",
			setupMocks: func(m *mocks.MockEthClient) {
				m.EXPECT().
					CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
					DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
						assert.Equal(t, itemContract, *msg.To)
						return packOwnership(t, holderAddress, 1700000000, false), nil
					})
			},
			expected: &domain.Ownership{Owner: holderAddress, OriginTimestamp: 1700000000},
		},
		{
			name: "burned item keeps its last holder",
			setupMocks: func(m *mocks.MockEthClient) {
				m.EXPECT().
					CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(packOwnership(t, holderAddress, 1700000500, true), nil)
			},
			expected: &domain.Ownership{Owner: holderAddress, Burned: true, OriginTimestamp: 1700000500},
		},
		{
			name: "never minted item",
			setupMocks: func(m *mocks.MockEthClient) {
				m.EXPECT().
					CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(packOwnership(t, common.Address{}, 0, false), nil)
			},
			expected: &domain.Ownership{},
		},
		{
			name: "transient error is retried",
			setupMocks: func(m *mocks.MockEthClient) {
				gomock.InOrder(
					m.EXPECT().
						CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
						Return(nil, errors.New("connection reset")),
					m.EXPECT().
						CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
						Return(packOwnership(t, holderAddress, 42, false), nil),
				)
			},
			expected: &domain.Ownership{Owner: holderAddress, OriginTimestamp: 42},
		},
		{
			name: "persistent error gives up",
			setupMocks: func(m *mocks.MockEthClient) {
				m.EXPECT().
					CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil, errors.New("node down")).
					AnyTimes()
			},
			expectedErr: "failed to call contract",
		},
		{
			name: "malformed response",
			setupMocks: func(m *mocks.MockEthClient) {
				m.EXPECT().
					CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return([]byte{0x01}, nil)
			},
			expectedErr: "failed to unpack result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockEth := mocks.NewMockEthClient(ctrl)
			tt.setupMocks(mockEth)

			ownership, err := newTestClient(mockEth).OwnershipOf(context.Background(), "7")
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ownership)
		})
	}
}

func TestIsContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEth := mocks.NewMockEthClient(ctrl)
	contract := common.HexToAddress("0x3333333333333333333333333333333333333333")

	mockEth.EXPECT().CodeAt(gomock.Any(), holderAddress, gomock.Nil()).Return([]byte{}, nil)
	mockEth.EXPECT().CodeAt(gomock.Any(), contract, gomock.Nil()).Return([]byte{0x60, 0x80}, nil)

	client := newTestClient(mockEth)

	isContract, err := client.IsContract(context.Background(), holderAddress)
	require.NoError(t, err)
	assert.False(t, isContract)

	isContract, err = client.IsContract(context.Background(), contract)
	require.NoError(t, err)
	assert.True(t, isContract)
}

func TestERC20BalanceOf(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEth := mocks.NewMockEthClient(ctrl)
	mockEth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			assert.Equal(t, rewardToken, *msg.To)
			return packUint256(t, big.NewInt(5000)), nil
		})

	balance, err := newTestClient(mockEth).ERC20BalanceOf(context.Background(), rewardToken, holderAddress)
	require.NoError(t, err)
	assert.Equal(t, "5000", balance.String())
}

func TestERC20Transfer(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	t.Run("signs and sends", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockEth := mocks.NewMockEthClient(ctrl)
		mockEth.EXPECT().PendingNonceAt(gomock.Any(), from).Return(uint64(3), nil)
		mockEth.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1_000_000_000), nil)
		mockEth.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(52000), nil)

		var sent *types.Transaction
		mockEth.EXPECT().
			SendTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
				sent = tx
				return nil
			})

		hash, err := newTestClient(mockEth).ERC20Transfer(context.Background(), rewardToken, key, holderAddress, big.NewInt(77))
		require.NoError(t, err)
		require.NotNil(t, sent)
		assert.Equal(t, sent.Hash(), hash)
		assert.Equal(t, uint64(3), sent.Nonce())
		assert.Equal(t, rewardToken, *sent.To())

		signer := types.LatestSignerForChainID(big.NewInt(31337))
		sender, err := types.Sender(signer, sent)
		require.NoError(t, err)
		assert.Equal(t, from, sender)
	})

	t.Run("send failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockEth := mocks.NewMockEthClient(ctrl)
		mockEth.EXPECT().PendingNonceAt(gomock.Any(), from).Return(uint64(0), nil)
		mockEth.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil)
		mockEth.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(21000), nil)
		mockEth.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(errors.New("nonce too low"))

		_, err := newTestClient(mockEth).ERC20Transfer(context.Background(), rewardToken, key, holderAddress, big.NewInt(1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send transaction")
	})
}

func TestWaitMined(t *testing.T) {
	txHash := common.HexToHash("0xabc")

	t.Run("pending then mined", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockEth := mocks.NewMockEthClient(ctrl)
		gomock.InOrder(
			mockEth.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(nil, ethereum.NotFound),
			mockEth.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(&types.Receipt{
				Status:      types.ReceiptStatusSuccessful,
				TxHash:      txHash,
				BlockNumber: big.NewInt(10),
			}, nil),
		)

		receipt, err := newTestClient(mockEth).WaitMined(context.Background(), txHash, time.Second)
		require.NoError(t, err)
		assert.Equal(t, txHash, receipt.TxHash)
	})

	t.Run("reverted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockEth := mocks.NewMockEthClient(ctrl)
		mockEth.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(&types.Receipt{
			Status:      types.ReceiptStatusFailed,
			TxHash:      txHash,
			BlockNumber: big.NewInt(10),
		}, nil)

		_, err := newTestClient(mockEth).WaitMined(context.Background(), txHash, time.Second)
		require.Error(t, err)
		assert.ErrorIs(t, err, ethprovider.ErrTransactionReverted)
	})

	t.Run("timeout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockEth := mocks.NewMockEthClient(ctrl)
		mockEth.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(nil, ethereum.NotFound).AnyTimes()

		_, err := newTestClient(mockEth).WaitMined(context.Background(), txHash, 20*time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not mined yet")
	})
}

func TestRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockEth := mocks.NewMockEthClient(ctrl)

	client := ethprovider.NewClient(ethprovider.Config{
		ChainID:         big.NewInt(31337),
		ItemContract:    itemContract,
		RetryMaxElapsed: 500 * time.Millisecond,
		RateLimit:       ratelimit.Config{RequestsPerSecond: 0.001, Burst: 1},
	}, mockEth, adapter.NewClock())

	mockEth.EXPECT().CodeAt(gomock.Any(), holderAddress, gomock.Nil()).Return(nil, nil).Times(1)

	isContract, err := client.IsContract(context.Background(), holderAddress)
	require.NoError(t, err)
	assert.False(t, isContract)

	// The bucket is empty, so the next read gives up when its context expires without reaching the node
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.IsContract(ctx, holderAddress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
}
