// Package config loads the application configuration from an optional YAML
// file overlaid with environment variables.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Oracle providers.
const (
	ProviderHeuristic = "heuristic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Oracle  OracleConfig  `mapstructure:"oracle"`
	Store   StoreConfig   `mapstructure:"store"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	MCP     MCPConfig     `mapstructure:"mcp"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Session SessionConfig `mapstructure:"session"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type OracleConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type StoreConfig struct {
	Driver  string        `mapstructure:"driver"`
	Redis   RedisConfig   `mapstructure:"redis"`
	LockTTL time.Duration `mapstructure:"lock_ttl"`

	// EncryptionKey is a base64 AES-256 key. When set, sessions are sealed
	// before they reach the store; FallbackKeys still open older ones.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`

	// Redact masks personal data in stored messages and log entries.
	Redact         bool     `mapstructure:"redact"`
	RedactPatterns []string `mapstructure:"redact_patterns"`
}

// Keys decodes the encryption keys. It returns a nil active key when
// encryption is off.
func (s StoreConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		return nil, nil, nil
	}
	if active, err = decodeKey(s.EncryptionKey); err != nil {
		return nil, nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	for i, k := range s.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("want 32 bytes, got %d", len(key))
	}
	return key, nil
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type HTTPConfig struct {
	Addr         string `mapstructure:"addr"`
	MetricsAddr  string `mapstructure:"metrics_addr"`
	MaxInputSize int    `mapstructure:"max_input_size"`
}

type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Addr      string `mapstructure:"addr"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type SessionConfig struct {
	LogCapacity      int      `mapstructure:"log_capacity"`
	CheckoutKeywords []string `mapstructure:"checkout_keywords"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Oracle: OracleConfig{Provider: ProviderHeuristic, Timeout: 30 * time.Second},
		Store: StoreConfig{
			Driver:  DriverMemory,
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "kawiarnia:session:", TTL: 24 * time.Hour},
			LockTTL: 30 * time.Second,
		},
		HTTP:    HTTPConfig{Addr: ":8080", MetricsAddr: ":9090", MaxInputSize: 4096},
		MCP:     MCPConfig{Transport: "stdio", Addr: ":8081"},
		Session: SessionConfig{LogCapacity: 512, CheckoutKeywords: []string{"checkout", "finalizuj"}},
	}
}

// envKeys maps environment variables onto dotted config keys.
var envKeys = map[string]string{
	"KAWIARNIA_LOG_LEVEL":            "log.level",
	"KAWIARNIA_ORACLE_PROVIDER":      "oracle.provider",
	"KAWIARNIA_ORACLE_MODEL":         "oracle.model",
	"KAWIARNIA_ORACLE_BASE_URL":      "oracle.base_url",
	"KAWIARNIA_ORACLE_API_KEY":       "oracle.api_key",
	"KAWIARNIA_ORACLE_TIMEOUT":       "oracle.timeout",
	"KAWIARNIA_STORE_DRIVER":         "store.driver",
	"KAWIARNIA_STORE_ENCRYPTION_KEY": "store.encryption_key",
	"KAWIARNIA_STORE_REDACT":         "store.redact",
	"KAWIARNIA_REDIS_ADDR":           "store.redis.addr",
	"KAWIARNIA_REDIS_PASSWORD":       "store.redis.password",
	"KAWIARNIA_REDIS_DB":             "store.redis.db",
	"KAWIARNIA_REDIS_TTL":            "store.redis.ttl",
	"KAWIARNIA_HTTP_ADDR":            "http.addr",
	"KAWIARNIA_METRICS_ADDR":         "http.metrics_addr",
	"KAWIARNIA_CATALOG_PATH":         "catalog.path",
	"KAWIARNIA_CHECKOUT_KEYWORDS":    "session.checkout_keywords",
}

// Load reads path (optional, "" skips the file), overlays the environment
// and validates the result.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	for env, key := range envKeys {
		if v, ok := lookup(env); ok && v != "" {
			set(raw, key, v)
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Oracle.APIKey == "" {
		switch cfg.Oracle.Provider {
		case ProviderOpenAI:
			cfg.Oracle.APIKey, _ = lookup("OPENAI_API_KEY")
		case ProviderGemini:
			cfg.Oracle.APIKey, _ = lookup("GEMINI_API_KEY")
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// set stores v under a dotted key, creating nested maps.
func set(m map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

// Validate reports every inconsistent setting.
func (c Config) Validate() error {
	var errs []error
	switch c.Oracle.Provider {
	case ProviderHeuristic:
	case ProviderOpenAI, ProviderGemini:
		if c.Oracle.APIKey == "" {
			errs = append(errs, fmt.Errorf("oracle.api_key is required for provider %q", c.Oracle.Provider))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown oracle.provider %q", c.Oracle.Provider))
	}
	if c.Oracle.Timeout <= 0 {
		errs = append(errs, errors.New("oracle.timeout must be positive"))
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required for the redis driver"))
		}
		if c.Store.LockTTL <= 0 {
			errs = append(errs, errors.New("store.lock_ttl must be positive for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.driver %q", c.Store.Driver))
	}
	if _, _, err := c.Store.Keys(); err != nil {
		errs = append(errs, err)
	}

	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		errs = append(errs, fmt.Errorf("unknown mcp.transport %q", c.MCP.Transport))
	}

	if c.Session.LogCapacity <= 0 {
		errs = append(errs, errors.New("session.log_capacity must be positive"))
	}
	return errors.Join(errs...)
}
