package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const configName = ".casedesk"

// Session backend names
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Session SessionConfig `yaml:"session" mapstructure:"session"`
	Format  FormatConfig  `yaml:"format" mapstructure:"format"`
	DevAPI  DevAPIConfig  `yaml:"devserver" mapstructure:"devserver"`
}

// ServerConfig contains backend connection settings
type ServerConfig struct {
	URL     string `yaml:"url" mapstructure:"url"`
	Timeout string `yaml:"timeout" mapstructure:"timeout"`
}

// SessionConfig selects where the bearer token and profile are kept
type SessionConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// FormatConfig contains output formatting settings
type FormatConfig struct {
	Default string `yaml:"default" mapstructure:"default"`
	Colors  bool   `yaml:"colors" mapstructure:"colors"`
}

// DevAPIConfig configures the local development backend
type DevAPIConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
	OTP  string `yaml:"otp" mapstructure:"otp"`
	PIN  string `yaml:"pin" mapstructure:"pin"`
}

var (
	globalConfig *Config
	debug        bool
	outputFormat string
)

// Initialize loads the configuration from file
func Initialize(configFile string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get home directory: %w", err)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix("CASEDESK")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create default config
			if err := createDefaultConfig(); err != nil {
				return fmt.Errorf("could not create default config: %w", err)
			}
		} else {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}

	globalConfig = &Config{}
	if err := viper.Unmarshal(globalConfig); err != nil {
		return fmt.Errorf("could not unmarshal config: %w", err)
	}

	if globalConfig.Session.Path == "" {
		globalConfig.Session.Path = DefaultSessionPath(globalConfig.Session.Backend)
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	d := Defaults()
	viper.SetDefault("server.url", d.Server.URL)
	viper.SetDefault("server.timeout", d.Server.Timeout)
	viper.SetDefault("session.backend", d.Session.Backend)
	viper.SetDefault("session.path", "")
	viper.SetDefault("format.default", d.Format.Default)
	viper.SetDefault("format.colors", d.Format.Colors)
	viper.SetDefault("devserver.addr", d.DevAPI.Addr)
	viper.SetDefault("devserver.otp", d.DevAPI.OTP)
	viper.SetDefault("devserver.pin", d.DevAPI.PIN)
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			URL:     "http://localhost:5000",
			Timeout: "30s",
		},
		Session: SessionConfig{
			Backend: BackendFile,
		},
		Format: FormatConfig{
			Default: "table",
			Colors:  true,
		},
		DevAPI: DevAPIConfig{
			Addr: "127.0.0.1:5000",
			OTP:  "123456",
			PIN:  "1234",
		},
	}
}

// DefaultSessionPath returns where a backend keeps its data when no path is configured
func DefaultSessionPath(backend string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, configName)
	switch backend {
	case BackendBolt:
		return filepath.Join(dir, "session.db")
	case BackendMemory:
		return ""
	default:
		return filepath.Join(dir, "session.yaml")
	}
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	return writeConfig(filepath.Join(home, configName+".yaml"), Defaults())
}

func writeConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		d := Defaults()
		globalConfig = &d
	}
	return globalConfig
}

// Set overrides the global configuration. Used by tests and embedding callers.
func Set(cfg *Config) {
	globalConfig = cfg
}

// SetValue updates a single key and writes the config file
func SetValue(key, value string) error {
	if !viper.IsSet(key) {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	viper.Set(key, value)
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}

	globalConfig = &Config{}
	return viper.Unmarshal(globalConfig)
}

// Timeout parses the configured request timeout, falling back to 30s
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Server.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// SetDebug sets the debug mode
func SetDebug(enabled bool) {
	debug = enabled
}

// IsDebug returns whether debug mode is enabled
func IsDebug() bool {
	return debug
}

// SetOutputFormat sets the output format
func SetOutputFormat(format string) {
	outputFormat = format
}

// GetOutputFormat returns the current output format
func GetOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if globalConfig != nil && globalConfig.Format.Default != "" {
		return globalConfig.Format.Default
	}
	return "table"
}
