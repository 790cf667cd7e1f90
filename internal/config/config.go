package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Server   ServerConfig   `mapstructure:"server"`
	Security SecurityConfig `mapstructure:"security"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// OpenAIConfig configures the upstream API client
type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	UserAgent   string        `mapstructure:"user_agent"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	HTTP2       *bool         `mapstructure:"http2"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type SecurityConfig struct {
	// APIKey guards the local gateway. Empty disables the check.
	APIKey         string   `mapstructure:"api_key"`
	EnableCORS     bool     `mapstructure:"enable_cors"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level         string `mapstructure:"level"`
	Output        string `mapstructure:"output"`
	ConsoleOutput bool   `mapstructure:"console_output"`
	MaxSize       int    `mapstructure:"max_size"`
	MaxBackups    int    `mapstructure:"max_backups"`
	MaxAge        int    `mapstructure:"max_age"`
	Compress      bool   `mapstructure:"compress"`
}

type StorageConfig struct {
	DataDir  string `mapstructure:"data_dir"`
	UsageDir string `mapstructure:"usage_dir"`
}

// BindEnv maps the conventional environment variables onto config keys.
func BindEnv(v *viper.Viper) {
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
}

// Load loads the configuration from file and environment
func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrCreate 加载配置，如果不存在则创建默认配置
//
// The created file never contains the upstream API key; only the configure
// command stores it.
func LoadOrCreate() (*Config, error) {
	configFile := configPath()

	if _, err := os.Stat(configFile); err == nil {
		cfg, err := Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configFile, err)
		}
		return cfg, nil
	}

	fmt.Fprintln(os.Stderr, "\n⚠️  Config file not found, creating default config...")

	// flags and environment still apply on first run
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if cfg.Security.APIKey == "" {
		cfg.Security.APIKey = GenerateGatewayKey()
		fmt.Fprintf(os.Stderr, "\n🔑 Generated gateway key: %s\n", cfg.Security.APIKey)
	}

	if err := writeConfig(configFile, cfg, false); err != nil {
		fmt.Fprintf(os.Stderr, "\n⚠️  Warning: Failed to save config file: %v\n", err)
		fmt.Fprintln(os.Stderr, "   Continuing with in-memory config...")
	} else {
		fmt.Fprintf(os.Stderr, "\n✅ Config file created: %s\n", configFile)
	}

	return cfg, nil
}

// SaveConfig 保存配置到文件，包括上游API key
func SaveConfig(cfg *Config) error {
	return writeConfig(configPath(), cfg, true)
}

func configPath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	return "./config.yaml"
}

// writeConfig writes cfg to path with owner-only permissions. It uses its
// own viper instance so values written here never shadow flags or
// environment in the global one.
func writeConfig(path string, cfg *Config, withAPIKey bool) error {
	v := viper.New()
	v.SetConfigPermissions(0600)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}
	for key, value := range settings(cfg) {
		if key == "openai.api_key" && !withAPIKey {
			continue
		}
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return err
	}
	// WriteConfigAs keeps the mode of an existing file
	return os.Chmod(path, 0600)
}

// settings flattens cfg into viper keys. Durations are written as strings
// so the file stays readable and decodes back unchanged.
func settings(cfg *Config) map[string]interface{} {
	m := map[string]interface{}{
		"openai.api_key":           cfg.OpenAI.APIKey,
		"openai.base_url":          cfg.OpenAI.BaseURL,
		"openai.user_agent":        cfg.OpenAI.UserAgent,
		"openai.idle_timeout":      cfg.OpenAI.IdleTimeout.String(),
		"openai.timeout":           cfg.OpenAI.Timeout.String(),
		"server.host":              cfg.Server.Host,
		"server.port":              cfg.Server.Port,
		"server.mode":              cfg.Server.Mode,
		"server.read_timeout":      cfg.Server.ReadTimeout.String(),
		"server.write_timeout":     cfg.Server.WriteTimeout.String(),
		"security.api_key":         cfg.Security.APIKey,
		"security.enable_cors":     cfg.Security.EnableCORS,
		"security.allowed_origins": cfg.Security.AllowedOrigins,
		"logging.level":            cfg.Logging.Level,
		"logging.output":           cfg.Logging.Output,
		"logging.console_output":   cfg.Logging.ConsoleOutput,
		"logging.max_size":         cfg.Logging.MaxSize,
		"logging.max_backups":      cfg.Logging.MaxBackups,
		"logging.max_age":          cfg.Logging.MaxAge,
		"logging.compress":         cfg.Logging.Compress,
		"storage.data_dir":         cfg.Storage.DataDir,
		"storage.usage_dir":        cfg.Storage.UsageDir,
	}
	if cfg.OpenAI.HTTP2 != nil {
		m["openai.http2"] = *cfg.OpenAI.HTTP2
	}
	return m
}

// GenerateGatewayKey returns a fresh key for the local gateway.
func GenerateGatewayKey() string {
	return "gw-" + uuid.NewString()
}

// HTTP2Enabled reports whether the client should attempt HTTP/2.
func (c OpenAIConfig) HTTP2Enabled() bool {
	return c.HTTP2 == nil || *c.HTTP2
}

// SetDefaults fills every unset field.
func SetDefaults(cfg *Config) {
	// OpenAI
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com"
	}
	if cfg.OpenAI.UserAgent == "" {
		cfg.OpenAI.UserAgent = "openai-go/1.0"
	}
	if cfg.OpenAI.IdleTimeout == 0 {
		cfg.OpenAI.IdleTimeout = 90 * time.Second
	}

	// 服务器配置
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8046
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 120 * time.Second
	}

	// 日志配置
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "logs/openai.log"
	}
	if cfg.Logging.MaxSize == 0 {
		cfg.Logging.MaxSize = 100
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 10
	}
	if cfg.Logging.MaxAge == 0 {
		cfg.Logging.MaxAge = 30
	}

	// 存储配置
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "./data"
	}
	if cfg.Storage.UsageDir == "" {
		cfg.Storage.UsageDir = "./data/usage"
	}
}

// Validate checks values SetDefaults cannot fix.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}
	u, err := url.Parse(cfg.OpenAI.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base url: %q", cfg.OpenAI.BaseURL)
	}
	if cfg.OpenAI.Timeout < 0 || cfg.OpenAI.IdleTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}
