package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppName string `mapstructure:"app_name"`

	Log struct {
		Level  string `mapstructure:"level"`
		SeqURL string `mapstructure:"seq_url"`
	} `mapstructure:"log"`

	REPL struct {
		Prompt      string `mapstructure:"prompt"`
		HistoryFile string `mapstructure:"history_file"`
	} `mapstructure:"repl"`

	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`

	Metrics struct {
		Addr string `mapstructure:"addr"` // empty disables the /metrics listener
	} `mapstructure:"metrics"`

	Seed struct {
		Path string `mapstructure:"path"` // optional YAML seed file
	} `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "minidb")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.seq_url", "")
	v.SetDefault("repl.prompt", "> ")
	v.SetDefault("repl.history_file", "")
	v.SetDefault("server.port", 4444)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("seed.path", "")
}

// Load reads the YAML config at path (optional) and applies MINIDB_* environment overrides.
// An empty path yields the defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MINIDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseLevel maps a config level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}
