package configloader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations. There is no write
// timeout setting: the tool protocol stream holds its connection open for
// the whole session.
type ServerConfig struct {
	Port               string `yaml:"port"`
	ReadTimeoutSeconds int    `yaml:"readTimeoutSeconds"`
	IdleTimeoutSeconds int    `yaml:"idleTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ChainConfig holds node access configurations.
type ChainConfig struct {
	DefaultNetwork           string              `yaml:"defaultNetwork"`
	RPCCallTimeoutSeconds    int                 `yaml:"rpcCallTimeoutSeconds"`
	ConnectionTimeoutSeconds int                 `yaml:"connectionTimeoutSeconds"`
	RPCOverrides             map[string][]string `yaml:"rpcOverrides"`
}

// ScannerConfig holds configuration for the block-history reconstructor.
type ScannerConfig struct {
	WindowSize           int `yaml:"windowSize"`
	ReceiptRatePerSecond int `yaml:"receiptRatePerSecond"`
	ReceiptBurst         int `yaml:"receiptBurst"`
}

// TokenConfig holds token read configuration.
type TokenConfig struct {
	MetadataCacheTTLMinutes int `yaml:"metadataCacheTTLMinutes"`
}

// SignerConfig names the environment variable carrying the signing key.
// Keys never live in YAML.
type SignerConfig struct {
	PrivateKeyEnv string `yaml:"privateKeyEnv"`
}

// PrivateKey reads the signing key from the configured environment variable.
func (s SignerConfig) PrivateKey() string {
	return os.Getenv(s.PrivateKeyEnv)
}

// LLMConfig holds the language model gateway configuration.
type LLMConfig struct {
	BaseURL              string `yaml:"baseURL"`
	Model                string `yaml:"model"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	MaxRetries           int    `yaml:"maxRetries"`
	RetryDelayMillis     int64  `yaml:"retryDelayMillis"`
	APIKeyEnv            string `yaml:"apiKeyEnv"`
}

// APIKey reads the model API key from the configured environment variable.
func (l LLMConfig) APIKey() string {
	return os.Getenv(l.APIKeyEnv)
}

// ToolServerConfig holds streaming tool-channel configuration.
type ToolServerConfig struct {
	HeartbeatSeconds int `yaml:"heartbeatSeconds"`
}

// SwaggerConfig toggles the Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecPath string `yaml:"specPath"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Chain      ChainConfig      `yaml:"chain"`
	Scanner    ScannerConfig    `yaml:"scanner"`
	Tokens     TokenConfig      `yaml:"tokens"`
	Signer     SignerConfig     `yaml:"signer"`
	LLM        LLMConfig        `yaml:"llm"`
	ToolServer ToolServerConfig `yaml:"toolServer"`
	Swagger    SwaggerConfig    `yaml:"swagger"`
}

// maxScanWindow caps the history reconstructor's block window. Wider scans
// belong to an indexer, not a request path.
const maxScanWindow = 100

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	// Defaults for ServerConfig
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 60
	}

	// Defaults for LoggingConfig
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	// Defaults for ChainConfig
	if cfg.Chain.DefaultNetwork == "" {
		cfg.Chain.DefaultNetwork = "sei"
	}
	if cfg.Chain.RPCCallTimeoutSeconds <= 0 {
		cfg.Chain.RPCCallTimeoutSeconds = 10
	}
	if cfg.Chain.ConnectionTimeoutSeconds <= 0 {
		cfg.Chain.ConnectionTimeoutSeconds = 10
	}

	// Defaults for ScannerConfig
	if cfg.Scanner.WindowSize <= 0 || cfg.Scanner.WindowSize > maxScanWindow {
		cfg.Scanner.WindowSize = maxScanWindow
	}
	if cfg.Scanner.ReceiptRatePerSecond <= 0 {
		cfg.Scanner.ReceiptRatePerSecond = 20
	}
	if cfg.Scanner.ReceiptBurst <= 0 {
		cfg.Scanner.ReceiptBurst = 5
	}

	// Defaults for TokenConfig
	if cfg.Tokens.MetadataCacheTTLMinutes <= 0 {
		cfg.Tokens.MetadataCacheTTLMinutes = 10
	}

	// Defaults for SignerConfig
	if cfg.Signer.PrivateKeyEnv == "" {
		cfg.Signer.PrivateKeyEnv = "SIGNER_PRIVATE_KEY"
	}

	// Defaults for LLMConfig
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.RequestTimeoutMillis <= 0 {
		cfg.LLM.RequestTimeoutMillis = 60000
	}
	if cfg.LLM.MaxRetries <= 0 {
		cfg.LLM.MaxRetries = 3
	}
	if cfg.LLM.RetryDelayMillis <= 0 {
		cfg.LLM.RetryDelayMillis = 2000
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "LLM_API_KEY"
	}

	// Defaults for ToolServerConfig
	if cfg.ToolServer.HeartbeatSeconds <= 0 {
		cfg.ToolServer.HeartbeatSeconds = 30
	}

	// Defaults for SwaggerConfig
	if cfg.Swagger.SpecPath == "" {
		cfg.Swagger.SpecPath = "docs/swagger.yaml"
	}

	return &cfg, nil
}
