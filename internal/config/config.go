package config

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-staker/internal/domain"
	"github.com/feral-file/ff-staker/internal/treasury"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration. Events are not published when URL is empty.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	MaxAge         time.Duration `mapstructure:"max_age"`
}

// EthereumConfig holds Ethereum-specific configuration
type EthereumConfig struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	ChainID             int64         `mapstructure:"chain_id"`
	ItemContract        string        `mapstructure:"item_contract"`
	RewardTokenContract string        `mapstructure:"reward_token_contract"`
	PoolPrivateKey      string        `mapstructure:"pool_private_key"`
	ReceiptTimeout      time.Duration `mapstructure:"receipt_timeout"`
	RequestsPerSecond   float64       `mapstructure:"rpc_requests_per_second"` // 0 disables throttling
	Burst               int           `mapstructure:"rpc_burst"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// StakerConfig holds the staking ledger configuration
type StakerConfig struct {
	// RewardPerSecond is a base-10 integer of reward base units paid per item per second
	RewardPerSecond  string        `mapstructure:"reward_per_second"`
	OwnerAddress     string        `mapstructure:"owner_address"`
	PoolAddress      string        `mapstructure:"pool_address"` // ledger pool mode only
	PoolMode         treasury.Mode `mapstructure:"pool_mode"`
	MaxBatchSize     int           `mapstructure:"max_batch_size"`
	QueryConcurrency int           `mapstructure:"query_concurrency"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Staker     StakerConfig   `mapstructure:"staker"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 180) // erc20 payouts wait for the receipt
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "STAKER_EVENTS")
	v.SetDefault("nats.connection_name", "ff-staker")
	v.SetDefault("ethereum.chain_id", 1)
	v.SetDefault("ethereum.receipt_timeout", "2m")
	v.SetDefault("ethereum.rpc_requests_per_second", 20)
	v.SetDefault("ethereum.rpc_burst", 10)
	v.SetDefault("staker.pool_mode", string(treasury.ModeLedger))
	v.SetDefault("staker.max_batch_size", 100)
	v.SetDefault("staker.query_concurrency", 8)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings the ledger cannot start without
func (c *APIConfig) Validate() error {
	if _, err := c.Staker.RewardRate(); err != nil {
		return err
	}
	if _, err := c.Staker.Owner(); err != nil {
		return err
	}
	if !treasury.IsValidMode(c.Staker.PoolMode) {
		return fmt.Errorf("staker.pool_mode must be one of %q, %q: got %q", treasury.ModeLedger, treasury.ModeERC20, c.Staker.PoolMode)
	}
	if c.Ethereum.RPCURL == "" {
		return errors.New("ethereum.rpc_url is required")
	}
	if !common.IsHexAddress(c.Ethereum.ItemContract) {
		return errors.New("ethereum.item_contract must be an address")
	}

	switch c.Staker.PoolMode {
	case treasury.ModeLedger:
		pool, err := c.Staker.Pool()
		if err != nil {
			return err
		}
		if owner, _ := c.Staker.Owner(); owner == pool {
			return errors.New("staker.pool_address must differ from staker.owner_address")
		}
	case treasury.ModeERC20:
		if !common.IsHexAddress(c.Ethereum.RewardTokenContract) {
			return errors.New("ethereum.reward_token_contract is required in erc20 pool mode")
		}
		if _, err := c.Ethereum.PoolSigner(); err != nil {
			return err
		}
	}

	return nil
}

// RewardRate parses the reward rate
func (c *StakerConfig) RewardRate() (*big.Int, error) {
	rate, ok := new(big.Int).SetString(strings.TrimSpace(c.RewardPerSecond), 10)
	if !ok || rate.Sign() <= 0 {
		return nil, fmt.Errorf("staker.reward_per_second must be a positive integer: got %q", c.RewardPerSecond)
	}
	return rate, nil
}

// Owner parses the ledger owner address
func (c *StakerConfig) Owner() (common.Address, error) {
	owner, err := domain.ParseAddress(c.OwnerAddress)
	if err != nil || domain.IsZeroAddress(owner) {
		return common.Address{}, fmt.Errorf("staker.owner_address is required: got %q", c.OwnerAddress)
	}
	return owner, nil
}

// Pool parses the address of the ledger-held reward pool
func (c *StakerConfig) Pool() (common.Address, error) {
	pool, err := domain.ParseAddress(c.PoolAddress)
	if err != nil || domain.IsZeroAddress(pool) {
		return common.Address{}, fmt.Errorf("staker.pool_address is required in ledger pool mode: got %q", c.PoolAddress)
	}
	return pool, nil
}

// PoolSigner parses the private key that signs erc20 payouts
func (c *EthereumConfig) PoolSigner() (*ecdsa.PrivateKey, error) {
	if c.PoolPrivateKey == "" {
		return nil, errors.New("ethereum.pool_private_key is required in erc20 pool mode")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(c.PoolPrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid ethereum.pool_private_key: %w", err)
	}
	return key, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_STAKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.max_age",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.item_contract",
		"ethereum.reward_token_contract",
		"ethereum.pool_private_key",
		"ethereum.receipt_timeout",
		"ethereum.rpc_requests_per_second",
		"ethereum.rpc_burst",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Staker
		"staker.reward_per_second",
		"staker.owner_address",
		"staker.pool_address",
		"staker.pool_mode",
		"staker.max_batch_size",
		"staker.query_concurrency",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
