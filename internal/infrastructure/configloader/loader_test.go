package configloader

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "{}\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeoutSeconds)
	assert.Equal(t, 60, cfg.Server.IdleTimeoutSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "sei", cfg.Chain.DefaultNetwork)
	assert.Equal(t, 10, cfg.Chain.RPCCallTimeoutSeconds)
	assert.Equal(t, 100, cfg.Scanner.WindowSize)
	assert.Equal(t, 20, cfg.Scanner.ReceiptRatePerSecond)
	assert.Equal(t, 5, cfg.Scanner.ReceiptBurst)
	assert.Equal(t, 10, cfg.Tokens.MetadataCacheTTLMinutes)
	assert.Equal(t, "SIGNER_PRIVATE_KEY", cfg.Signer.PrivateKeyEnv)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "LLM_API_KEY", cfg.LLM.APIKeyEnv)
	assert.Equal(t, 30, cfg.ToolServer.HeartbeatSeconds)
	assert.Equal(t, "docs/swagger.yaml", cfg.Swagger.SpecPath)
}

func TestLoadReadsValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: ":9090"
  readTimeoutSeconds: 30
logging:
  level: debug
chain:
  defaultNetwork: sei-testnet
  rpcOverrides:
    sei:
      - https://rpc.example.com
scanner:
  windowSize: 50
llm:
  model: gpt-4o
swagger:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "sei-testnet", cfg.Chain.DefaultNetwork)
	assert.Equal(t, []string{"https://rpc.example.com"}, cfg.Chain.RPCOverrides["sei"])
	assert.Equal(t, 50, cfg.Scanner.WindowSize)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.True(t, cfg.Swagger.Enabled)
}

func TestLoadClampsScanWindow(t *testing.T) {
	tests := []struct {
		name     string
		window   int
		expected int
	}{
		{name: "oversized window is capped", window: 5000, expected: 100},
		{name: "zero gets the default", window: 0, expected: 100},
		{name: "negative gets the default", window: -3, expected: 100},
		{name: "in range stays", window: 25, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "scanner:\n  windowSize: "+strconv.Itoa(tt.window)+"\n")
			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Scanner.WindowSize)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not: a: mapping\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to unmarshal")
}

func TestSignerPrivateKeyFromEnv(t *testing.T) {
	t.Setenv("TEST_SIGNER_KEY", "deadbeef")
	s := SignerConfig{PrivateKeyEnv: "TEST_SIGNER_KEY"}
	assert.Equal(t, "deadbeef", s.PrivateKey())
}

func TestLLMAPIKeyFromEnv(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "sk-test")
	l := LLMConfig{APIKeyEnv: "TEST_LLM_KEY"}
	assert.Equal(t, "sk-test", l.APIKey())
}
