// Package config loads settings for the host-side tools. Firmware builds
// use the compiled-in board descriptor instead.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"

	"uartecho-go/errcode"
	"uartecho-go/x/mathx"
)

const (
	configName = "echo"
	envPrefix  = "UARTECHO"

	maxPollTimeout = 100 * time.Millisecond
)

type Config struct {
	Serial  SerialConfig  `mapstructure:"serial"`
	Probe   ProbeConfig   `mapstructure:"probe"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type SerialConfig struct {
	Port string `mapstructure:"port"`
	// PollTimeout bounds the look-ahead read that stands in for the
	// receive flag on a PC port.
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
}

type ProbeConfig struct {
	ReplyTimeout time.Duration `mapstructure:"reply_timeout"`
	// FollowBaud switches the probe's own rate after sending the change
	// command, using the device's transition table.
	FollowBaud bool `mapstructure:"follow_baud"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // "console" | "json"
	Output     string `mapstructure:"output"` // "stdout" | "stderr" | file path
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("serial.poll_timeout", time.Millisecond)

	v.SetDefault("probe.reply_timeout", 500*time.Millisecond)
	v.SetDefault("probe.follow_baud", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", false)
}

// Load reads echo.yaml (or the explicit file) plus UARTECHO_* environment
// variables. A missing default config file is not an error; flags and env
// may carry everything. v may be nil, or a viper instance with flags bound.
func Load(v *viper.Viper, file string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.uartecho")
		v.AddConfigPath("/etc/uartecho")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &nf) {
			return nil, errcode.Wrap(errcode.InvalidParams, "config_read", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "config_decode", err)
	}
	cfg.Serial.PollTimeout = mathx.Clamp(cfg.Serial.PollTimeout, 0, maxPollTimeout)
	return &cfg, nil
}

// Validate checks what every host tool needs.
func (c *Config) Validate() error {
	const op = "config_validate"
	if c.Serial.Port == "" {
		return errcode.New(errcode.InvalidParams, op, "serial.port is required")
	}
	if c.Probe.ReplyTimeout <= 0 {
		return errcode.New(errcode.InvalidParams, op, "probe.reply_timeout must be positive")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return errcode.New(errcode.InvalidParams, op, "logging.format must be console or json")
	}
	return nil
}
