package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-staker/internal/adapter"
	"github.com/feral-file/ff-staker/internal/api/middleware"
	"github.com/feral-file/ff-staker/internal/api/server"
	"github.com/feral-file/ff-staker/internal/config"
	"github.com/feral-file/ff-staker/internal/logger"
	"github.com/feral-file/ff-staker/internal/messaging"
	"github.com/feral-file/ff-staker/internal/providers/ethereum"
	"github.com/feral-file/ff-staker/internal/providers/jetstream"
	"github.com/feral-file/ff-staker/internal/ratelimit"
	"github.com/feral-file/ff-staker/internal/staker"
	"github.com/feral-file/ff-staker/internal/store"
	"github.com/feral-file/ff-staker/internal/treasury"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ff-staker-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Staker API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()

	// Connect to the chain
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err))
	}
	nodeChainID, err := ethClient.ChainID(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to get chain id", zap.Error(err))
	}
	if nodeChainID.Int64() != cfg.Ethereum.ChainID {
		logger.FatalCtx(ctx, "RPC node serves a different chain",
			zap.Int64("expected", cfg.Ethereum.ChainID),
			zap.String("actual", nodeChainID.String()))
	}
	chainClient := ethereum.NewClient(ethereum.Config{
		ChainID:      big.NewInt(cfg.Ethereum.ChainID),
		ItemContract: common.HexToAddress(cfg.Ethereum.ItemContract),
		RateLimit: ratelimit.Config{
			RequestsPerSecond: cfg.Ethereum.RequestsPerSecond,
			Burst:             cfg.Ethereum.Burst,
		},
	}, ethClient, clock)
	defer chainClient.Close()
	logger.InfoCtx(ctx, "Connected to Ethereum",
		zap.Int64("chain_id", cfg.Ethereum.ChainID),
		zap.String("item_contract", cfg.Ethereum.ItemContract),
	)

	// Reward pool
	pool, err := newPool(cfg, chainClient)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create reward pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Reward pool ready",
		zap.String("mode", string(cfg.Staker.PoolMode)),
		zap.String("address", pool.Address().Hex()),
	)

	// Ledger events
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			MaxAge:         cfg.NATS.MaxAge,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Publishing ledger events", zap.String("stream", cfg.NATS.StreamName))
	} else {
		publisher = messaging.NewNoopPublisher()
		logger.WarnCtx(ctx, "NATS URL not configured, ledger events will not be published")
	}
	defer publisher.Close()

	// Staking ledger
	rate, _ := cfg.Staker.RewardRate()
	owner, _ := cfg.Staker.Owner()
	ledger, err := staker.New(staker.Config{
		RewardPerSecond:  rate,
		OwnerAddress:     owner,
		QueryConcurrency: cfg.Staker.QueryConcurrency,
	}, dataStore, chainClient, chainClient, pool, publisher, clock, jsonAdapter, jcsAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create staking ledger", zap.Error(err))
	}
	defer ledger.Close()

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		MaxBatchSize: cfg.Staker.MaxBatchSize,
		PoolAddress:  pool.Address(),
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	srv := server.New(serverConfig, ledger)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// In-flight erc20 payouts may still be waiting for their receipt
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, fmt.Errorf("server forced to shutdown: %w", err))
	}

	logger.Info("API server stopped")
}

// newPool creates the reward pool selected by staker.pool_mode
func newPool(cfg *config.APIConfig, client ethereum.EthereumClient) (treasury.Pool, error) {
	switch cfg.Staker.PoolMode {
	case treasury.ModeERC20:
		key, err := cfg.Ethereum.PoolSigner()
		if err != nil {
			return nil, err
		}
		return treasury.NewERC20Pool(treasury.ERC20Config{
			Token:          common.HexToAddress(cfg.Ethereum.RewardTokenContract),
			SignerKey:      key,
			ReceiptTimeout: cfg.Ethereum.ReceiptTimeout,
		}, client)
	default:
		address, err := cfg.Staker.Pool()
		if err != nil {
			return nil, err
		}
		return treasury.NewLedgerPool(address), nil
	}
}
