package configloader

import (
	"fmt"
	"os"
	"strings"

	"yieldhop/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string   `yaml:"port"`
	ReadTimeout  int      `yaml:"readTimeout"`
	WriteTimeout int      `yaml:"writeTimeout"`
	IdleTimeout  int      `yaml:"idleTimeout"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// RPCClientConfig holds configuration for the contract RPC clients.
type RPCClientConfig struct {
	ConnectionTimeoutMs int64   `yaml:"connectionTimeoutMs"`
	CallTimeoutMs       int64   `yaml:"callTimeoutMs"`
	RateLimit           float64 `yaml:"rateLimit"` // calls per second per chain, 0 = unlimited
	BurstLimit          int     `yaml:"burstLimit"`
}

// ViewsConfig holds configuration for staking view sessions.
type ViewsConfig struct {
	DefaultChain           string `yaml:"defaultChain"`
	SessionTTLMinutes      int    `yaml:"sessionTTLMinutes"`
	CleanupIntervalMinutes int    `yaml:"cleanupIntervalMinutes"`
}

// PollerConfig holds configuration for the background refresh of watched wallets.
type PollerConfig struct {
	Enabled         bool   `yaml:"enabled"`
	IntervalSeconds int    `yaml:"intervalSeconds"`
	WalletsFile     string `yaml:"walletsFile"`
}

// ActionsConfig holds configuration for prepared staking calls.
type ActionsConfig struct {
	PendingTTLMinutes     int `yaml:"pendingTTLMinutes"`
	ConfirmTimeoutSeconds int `yaml:"confirmTimeoutSeconds"`
	ReceiptPollMs         int `yaml:"receiptPollMs"`
}

// PreferencesConfig holds configuration for the persisted preference store.
type PreferencesConfig struct {
	Path string `yaml:"path"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecFile string `yaml:"specFile"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig             `yaml:"server"`
	Logging     LoggingConfig            `yaml:"logging"`
	Chains      []entity.ChainDefinition `yaml:"chains"`
	RPCClient   RPCClientConfig          `yaml:"rpcClient"`
	Views       ViewsConfig              `yaml:"views"`
	Poller      PollerConfig             `yaml:"poller"`
	Actions     ActionsConfig            `yaml:"actions"`
	Preferences PreferencesConfig        `yaml:"preferences"`
	Swagger     SwaggerConfig            `yaml:"swagger"`
}

// Load reads the YAML configuration file from the given path, unmarshals it and applies defaults.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML configuration data and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied and the built-in chains.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	cfg.Server.Port = strings.TrimPrefix(cfg.Server.Port, ":")
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 60
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 120
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.RPCClient.ConnectionTimeoutMs <= 0 {
		cfg.RPCClient.ConnectionTimeoutMs = 10000
	}
	if cfg.RPCClient.CallTimeoutMs <= 0 {
		cfg.RPCClient.CallTimeoutMs = 10000
		logrus.Infof("rpcClient.callTimeoutMs not set, defaulting to %d ms", cfg.RPCClient.CallTimeoutMs)
	}
	if cfg.RPCClient.RateLimit > 0 && cfg.RPCClient.BurstLimit <= 0 {
		cfg.RPCClient.BurstLimit = 10
		logrus.Infof("rpcClient.burstLimit not set, defaulting to %d", cfg.RPCClient.BurstLimit)
	}

	if cfg.Views.DefaultChain == "" {
		cfg.Views.DefaultChain = string(entity.ChainSepolia)
	}
	cfg.Views.DefaultChain = strings.ToLower(cfg.Views.DefaultChain)
	if cfg.Views.SessionTTLMinutes <= 0 {
		cfg.Views.SessionTTLMinutes = 30
	}
	if cfg.Views.CleanupIntervalMinutes <= 0 {
		cfg.Views.CleanupIntervalMinutes = 10
	}

	if cfg.Poller.IntervalSeconds <= 0 {
		cfg.Poller.IntervalSeconds = 60
	}
	if cfg.Poller.WalletsFile == "" {
		cfg.Poller.WalletsFile = "data/wallets.txt"
	}

	if cfg.Actions.PendingTTLMinutes <= 0 {
		cfg.Actions.PendingTTLMinutes = 60
	}
	if cfg.Actions.ConfirmTimeoutSeconds <= 0 {
		cfg.Actions.ConfirmTimeoutSeconds = 120
	}
	if cfg.Actions.ReceiptPollMs <= 0 {
		cfg.Actions.ReceiptPollMs = 2000
	}

	if cfg.Preferences.Path == "" {
		cfg.Preferences.Path = "data/preferences"
	}
	if cfg.Swagger.SpecFile == "" {
		cfg.Swagger.SpecFile = "./docs/swagger.yaml"
	}

	if len(cfg.Chains) == 0 {
		logrus.Info("No chains configured, built-in Sepolia and Fuji definitions will be used")
	}
}

// Validate checks cross-field constraints that defaults cannot fix.
func (cfg *Config) Validate() error {
	keys := []entity.ChainKey{entity.ChainSepolia, entity.ChainFuji}
	if len(cfg.Chains) > 0 {
		keys = keys[:0]
		for _, ch := range cfg.Chains {
			keys = append(keys, ch.Key)
		}
	}
	for _, key := range keys {
		if strings.EqualFold(string(key), cfg.Views.DefaultChain) {
			return nil
		}
	}
	return fmt.Errorf("views.defaultChain %q is not one of the configured chains", cfg.Views.DefaultChain)
}
