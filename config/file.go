package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tranvictor/tokenlens/networks"
	"github.com/tranvictor/tokenlens/util/browser"
	"github.com/tranvictor/tokenlens/util/capture"
	"github.com/tranvictor/tokenlens/util/market"
)

const (
	CacheDirEnv    = "TOKENLENS_CACHE_DIR"
	APIKeyEnv      = "COINGECKO_API_KEY"
	RedisAddrEnv   = "TOKENLENS_REDIS_ADDR"
	BrowserBinEnv  = "TOKENLENS_BROWSER_BIN"
	DebuggerURLEnv = "TOKENLENS_DEBUGGER_URL"
)

type ChainConfig struct {
	Candidates   []string      `yaml:"candidates"`
	Default      string        `yaml:"default"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

type Config struct {
	CacheDir string         `yaml:"cache_dir"`
	Browser  browser.Config `yaml:"browser"`
	Capture  capture.Config `yaml:"capture"`
	Chain    ChainConfig    `yaml:"chain"`
	Market   market.Config  `yaml:"market"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Dir is ~/.tokenlens, the home of the config file, the image cache and
// custom networks.
func Dir() string {
	usr, err := user.Current()
	if err != nil {
		return ".tokenlens"
	}
	return filepath.Join(usr.HomeDir, ".tokenlens")
}

func DefaultConfigFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Default() *Config {
	return &Config{
		CacheDir: filepath.Join(Dir(), "images"),
		Browser: browser.Config{
			Headless: true,
		},
		Capture: capture.DefaultConfig(),
		Chain: ChainConfig{
			Candidates:   networks.DefaultCandidates(),
			Default:      networks.DefaultNetwork,
			ProbeTimeout: 5 * time.Second,
		},
		Market: market.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the yaml config at path on top of the defaults. A missing
// file is not an error. Env variables override the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv(CacheDirEnv); dir != "" {
		c.CacheDir = dir
	}
	if key := os.Getenv(APIKeyEnv); key != "" {
		c.Market.APIKey = key
	}
	if addr := os.Getenv(RedisAddrEnv); addr != "" {
		c.Market.RedisAddr = addr
		c.Market.Backend = market.BackendRedis
	}
	if bin := os.Getenv(BrowserBinEnv); bin != "" {
		c.Browser.Bin = bin
	}
	if url := os.Getenv(DebuggerURLEnv); url != "" {
		c.Browser.DebuggerURL = url
	}
}

func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return fmt.Errorf("cache_dir is empty")
	}
	if c.Capture.Attempts <= 0 {
		return fmt.Errorf("capture.attempts must be positive, got %d", c.Capture.Attempts)
	}
	if c.Capture.ImageTTL <= 0 {
		return fmt.Errorf("capture.image_ttl must be positive, got %s", c.Capture.ImageTTL)
	}
	if c.Capture.ViewportWidth <= 0 || c.Capture.ViewportHeight <= 0 {
		return fmt.Errorf(
			"capture viewport must be positive, got %dx%d",
			c.Capture.ViewportWidth,
			c.Capture.ViewportHeight,
		)
	}
	for name, d := range map[string]time.Duration{
		"capture.navigation_timeout": c.Capture.NavigationTimeout,
		"chain.probe_timeout":        c.Chain.ProbeTimeout,
		"market.timeout":             c.Market.Timeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if c.Market.TTL <= 0 {
		return fmt.Errorf("market.ttl must be positive, got %s", c.Market.TTL)
	}
	switch c.Market.Backend {
	case market.BackendMemory:
		if c.Market.MemorySize <= 0 {
			return fmt.Errorf("market.memory_size must be positive, got %d", c.Market.MemorySize)
		}
	case market.BackendRedis:
		if c.Market.RedisAddr == "" {
			return fmt.Errorf("market.redis_addr is required by the redis backend")
		}
	default:
		return fmt.Errorf(
			"invalid market backend: %q (valid: %s, %s)",
			c.Market.Backend,
			market.BackendMemory,
			market.BackendRedis,
		)
	}
	if c.Chain.Default == "" {
		return fmt.Errorf("chain.default is empty")
	}
	for _, name := range append([]string{c.Chain.Default}, c.Chain.Candidates...) {
		if _, err := networks.GetNetwork(name); err != nil {
			return err
		}
	}
	return c.Logging.validate()
}
