package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/feral-file/ff-staker/internal/adapter"
	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/logger"
	"github.com/feral-file/ff-staker/internal/ratelimit"
)

const (
	// erc721aABI covers explicitOwnershipOf, which reports burned tokens and the ownership start time
	erc721aABI = `[{"inputs":[{"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"explicitOwnershipOf","outputs":[{"components":[{"internalType":"address","name":"addr","type":"address"},{"internalType":"uint64","name":"startTimestamp","type":"uint64"},{"internalType":"bool","name":"burned","type":"bool"},{"internalType":"uint24","name":"extraData","type":"uint24"}],"internalType":"struct IERC721A.TokenOwnership","name":"ownership","type":"tuple"}],"stateMutability":"view","type":"function"}]`

	erc20ABI = `[{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"nonpayable","type":"function"}]`
)

var (
	parsedERC721A = mustParseABI(erc721aABI)
	parsedERC20   = mustParseABI(erc20ABI)
)

// ErrTransactionReverted is returned when a mined transaction has a failed status
var ErrTransactionReverted = errors.New("transaction reverted")

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("failed to parse ABI: %v", err))
	}
	return parsed
}

// tokenOwnership mirrors IERC721A.TokenOwnership
type tokenOwnership struct {
	Addr           common.Address
	StartTimestamp uint64
	Burned         bool
	ExtraData      *big.Int
}

// EthereumClient is the chain-facing side of the ledger: the item registry,
// caller classification and the ERC20 reward token
type EthereumClient interface {
	// OwnershipOf returns the registry view of an item
	OwnershipOf(ctx context.Context, itemID domain.ItemID) (*domain.Ownership, error)

	// IsContract reports whether the account has deployed code
	IsContract(ctx context.Context, account common.Address) (bool, error)

	// ERC20BalanceOf fetches the token balance of a holder
	ERC20BalanceOf(ctx context.Context, token, holder common.Address) (*big.Int, error)

	// ERC20Transfer signs and sends a transfer from the key's account, returning the transaction hash
	ERC20Transfer(ctx context.Context, token common.Address, key *ecdsa.PrivateKey, to common.Address, amount *big.Int) (common.Hash, error)

	// WaitMined polls for the receipt of a transaction until it is mined or the timeout elapses
	WaitMined(ctx context.Context, txHash common.Hash, timeout time.Duration) (*types.Receipt, error)

	// Close closes the connection
	Close()
}

// Config holds the chain configuration of the client
type Config struct {
	ChainID      *big.Int
	ItemContract common.Address
	// RetryMaxElapsed bounds retries of read calls; zero means 10 seconds
	RetryMaxElapsed time.Duration
	// ReceiptPollInterval is the initial receipt polling interval; zero means 2 seconds
	ReceiptPollInterval time.Duration
	// RateLimit bounds the RPC request rate; zero disables throttling
	RateLimit ratelimit.Config
}

type ethereumClient struct {
	config  Config
	client  adapter.EthClient
	clock   adapter.Clock
	limiter ratelimit.Limiter
}

// NewClient creates a new Ethereum client
func NewClient(cfg Config, client adapter.EthClient, clock adapter.Clock) EthereumClient {
	if cfg.RetryMaxElapsed == 0 {
		cfg.RetryMaxElapsed = 10 * time.Second
	}
	if cfg.ReceiptPollInterval == 0 {
		cfg.ReceiptPollInterval = 2 * time.Second
	}
	return &ethereumClient{
		config:  cfg,
		client:  client,
		clock:   clock,
		limiter: ratelimit.NewLimiter("ethereum-rpc", cfg.RateLimit),
	}
}

// readBackoff is the retry policy of idempotent RPC reads
func (c *ethereumClient) readBackoff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = c.config.RetryMaxElapsed
	b.RandomizationFactor = 0.5
	return backoff.WithContext(b, ctx)
}

// call performs an eth_call with retries on transport errors
func (c *ethereumClient) call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	operation := func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}
		return c.client.CallContract(ctx, ethereum.CallMsg{
			To:   &to,
			Data: data,
		}, nil)
	}

	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Contract call failed, retrying",
			zap.String("contract", to.Hex()),
			zap.Error(err),
			zap.Duration("next_retry_in", next))
	}

	return backoff.RetryNotifyWithData(operation, c.readBackoff(ctx), notify)
}

// OwnershipOf returns the registry view of an item.
// Items that were never minted come back as a zero ownership.
func (c *ethereumClient) OwnershipOf(ctx context.Context, itemID domain.ItemID) (*domain.Ownership, error) {
	data, err := parsedERC721A.Pack("explicitOwnershipOf", itemID.BigInt())
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.call(ctx, c.config.ItemContract, data)
	if err != nil {
		return nil, fmt.Errorf("failed to call contract: %w", err)
	}

	out, err := parsedERC721A.Unpack("explicitOwnershipOf", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unexpected explicitOwnershipOf output length: %d", len(out))
	}

	ownership := *abi.ConvertType(out[0], new(tokenOwnership)).(*tokenOwnership)

	return &domain.Ownership{
		Owner:           ownership.Addr,
		Burned:          ownership.Burned,
		OriginTimestamp: int64(ownership.StartTimestamp), //nolint:gosec,G115 // block timestamps fit int64
	}, nil
}

// IsContract reports whether the account has deployed code
func (c *ethereumClient) IsContract(ctx context.Context, account common.Address) (bool, error) {
	operation := func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}
		return c.client.CodeAt(ctx, account, nil)
	}

	code, err := backoff.RetryWithData(operation, c.readBackoff(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to get code: %w", err)
	}

	return len(code) > 0, nil
}

// ERC20BalanceOf fetches the token balance of a holder
func (c *ethereumClient) ERC20BalanceOf(ctx context.Context, token, holder common.Address) (*big.Int, error) {
	data, err := parsedERC20.Pack("balanceOf", holder)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.call(ctx, token, data)
	if err != nil {
		return nil, fmt.Errorf("failed to call contract: %w", err)
	}

	var balance *big.Int
	if err := parsedERC20.UnpackIntoInterface(&balance, "balanceOf", result); err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}

	return balance, nil
}

// ERC20Transfer signs and sends a transfer. It does not wait for the transaction to be mined.
func (c *ethereumClient) ERC20Transfer(ctx context.Context, token common.Address, key *ecdsa.PrivateKey, to common.Address, amount *big.Int) (common.Hash, error) {
	if c.config.ChainID == nil {
		return common.Hash{}, fmt.Errorf("chain id is not configured")
	}

	from := crypto.PubkeyToAddress(key.PublicKey)

	data, err := parsedERC20.Pack("transfer", to, amount)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack data: %w", err)
	}

	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to suggest gas price: %w", err)
	}

	gas, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From: from,
		To:   &token,
		Data: data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &token,
		Value:    big.NewInt(0),
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.config.ChainID), key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.InfoCtx(ctx, "ERC20 transfer sent",
		zap.String("token", token.Hex()),
		zap.String("to", to.Hex()),
		zap.String("amount", amount.String()),
		zap.String("txHash", signed.Hash().Hex()))

	return signed.Hash(), nil
}

// WaitMined polls for the receipt of a transaction until it is mined or the timeout elapses
func (c *ethereumClient) WaitMined(ctx context.Context, txHash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.ReceiptPollInterval
	b.MaxInterval = 15 * time.Second
	b.MaxElapsedTime = timeout
	b.Multiplier = 1.5

	started := c.clock.Now()
	operation := func() (*types.Receipt, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}
		receipt, err := c.client.TransactionReceipt(ctx, txHash)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return nil, fmt.Errorf("transaction %s not mined yet", txHash.Hex())
			}
			return nil, fmt.Errorf("failed to get receipt: %w", err)
		}
		if receipt.Status != types.ReceiptStatusSuccessful {
			return receipt, backoff.Permanent(fmt.Errorf("%w: %s", ErrTransactionReverted, txHash.Hex()))
		}
		return receipt, nil
	}

	receipt, err := backoff.RetryWithData(operation, backoff.WithContext(b, ctx))
	if err != nil {
		return receipt, fmt.Errorf("failed waiting for transaction %s: %w", txHash.Hex(), err)
	}

	logger.InfoCtx(ctx, "Transaction mined",
		zap.String("txHash", txHash.Hex()),
		zap.Uint64("blockNumber", receipt.BlockNumber.Uint64()),
		zap.Duration("waited", c.clock.Since(started)))

	return receipt, nil
}

// Close closes the connection
func (c *ethereumClient) Close() {
	c.client.Close()
}
