package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Remote RemoteConfig `yaml:"remote" mapstructure:"remote"`
	Market MarketConfig `yaml:"market" mapstructure:"market"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DataConfig optionally overrides the embedded reference tables with
// external YAML files. Both paths must be set together.
type DataConfig struct {
	CropsFile     string `yaml:"crops_file" mapstructure:"crops_file"`
	DistrictsFile string `yaml:"districts_file" mapstructure:"districts_file"`
}

// RemoteConfig configures the optional remote advisory backend. When
// BaseURL is empty all computation stays in-process.
type RemoteConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// MarketConfig configures the simulated price board. A zero seed means
// time-seeded quotes.
type MarketConfig struct {
	Seed uint64 `yaml:"seed" mapstructure:"seed"`
}

// BatchConfig configures concurrent CSV scoring.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("remote.timeout_secs", 10)
	v.SetDefault("remote.max_retries", 3)
	v.SetDefault("remote.rate_per_sec", 5)
	v.SetDefault("remote.base_url", "")
	v.SetDefault("market.seed", 0)
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("data.crops_file", "")
	v.SetDefault("data.districts_file", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if (cfg.Data.CropsFile == "") != (cfg.Data.DistrictsFile == "") {
		return nil, eris.New("config: crops_file and districts_file must be set together")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
