package treasury

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/logger"
	"github.com/feral-file/ff-staker/internal/store"
)

// TokenClient is the ERC20 access the on-chain pool needs
//
//go:generate mockgen -source=erc20.go -destination=../mocks/token_client.go -package=mocks -mock_names=TokenClient=MockTokenClient
type TokenClient interface {
	ERC20BalanceOf(ctx context.Context, token, holder common.Address) (*big.Int, error)
	ERC20Transfer(ctx context.Context, token common.Address, key *ecdsa.PrivateKey, to common.Address, amount *big.Int) (common.Hash, error)
	WaitMined(ctx context.Context, txHash common.Hash, timeout time.Duration) (*types.Receipt, error)
}

// ERC20Config holds the configuration of the on-chain pool
type ERC20Config struct {
	Token          common.Address
	SignerKey      *ecdsa.PrivateKey
	ReceiptTimeout time.Duration
}

type erc20Pool struct {
	config  ERC20Config
	address common.Address
	client  TokenClient
}

// NewERC20Pool creates a pool backed by an ERC20 balance held by the signer key's account.
// Payouts are sent and awaited inside the ledger transaction. Only a mined and reverted
// transfer fails the ledger call: once sent, a transfer that cannot be confirmed is
// reported as pending and the ledger call commits.
func NewERC20Pool(cfg ERC20Config, client TokenClient) (Pool, error) {
	if cfg.SignerKey == nil {
		return nil, fmt.Errorf("pool signer key is required")
	}
	if cfg.ReceiptTimeout == 0 {
		cfg.ReceiptTimeout = 2 * time.Minute
	}

	return &erc20Pool{
		config:  cfg,
		address: crypto.PubkeyToAddress(cfg.SignerKey.PublicKey),
		client:  client,
	}, nil
}

func (p *erc20Pool) Address() common.Address {
	return p.address
}

func (p *erc20Pool) Balance(ctx context.Context, tx store.Store) (*big.Int, error) {
	return p.BalanceOf(ctx, tx, p.address)
}

func (p *erc20Pool) BalanceOf(ctx context.Context, _ store.Store, holder common.Address) (*big.Int, error) {
	balance, err := p.client.ERC20BalanceOf(ctx, p.config.Token, holder)
	if err != nil {
		return nil, fmt.Errorf("failed to get token balance: %w", err)
	}
	return balance, nil
}

func (p *erc20Pool) Payout(ctx context.Context, tx store.Store, to common.Address, amount *big.Int) (*Payout, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if amount.Sign() == 0 {
		return &Payout{To: to, Amount: new(big.Int)}, nil
	}

	balance, err := p.Balance(ctx, tx)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(amount) < 0 {
		return nil, domain.ErrNotEnoughFunds
	}

	// a broadcast transfer can be mined whatever happens to the caller
	settleCtx := context.WithoutCancel(ctx)

	txHash, err := p.client.ERC20Transfer(settleCtx, p.config.Token, p.config.SignerKey, to, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to send payout: %w", err)
	}

	payout := &Payout{To: to, Amount: new(big.Int).Set(amount), TxHash: txHash.Hex()}

	receipt, err := p.client.WaitMined(settleCtx, txHash, p.config.ReceiptTimeout)
	if err != nil {
		if receipt != nil && receipt.Status != types.ReceiptStatusSuccessful {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrPayoutReverted, txHash.Hex(), err)
		}

		logger.WarnCtx(ctx, "Payout sent but not confirmed",
			zap.Error(err),
			zap.String("txHash", txHash.Hex()),
			zap.String("to", to.Hex()),
			zap.String("amount", amount.String()))
		payout.Pending = true
	}

	return payout, nil
}

func (p *erc20Pool) Deposit(context.Context, store.Store, common.Address, *big.Int) error {
	return domain.ErrDepositNotSupported
}
