// Package config loads qbit client settings from a config file and
// QBIT_-prefixed environment variables.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/George-Miao/qbit"
)

// Settings holds everything needed to reach a daemon, plus the watch-folder
// options used by cmd/qbwatch.
type Settings struct {
	Addr          string        `mapstructure:"addr"`
	Username      string        `mapstructure:"username"`
	Password      string        `mapstructure:"password"`
	Cookie        string        `mapstructure:"cookie"`
	BasicUser     string        `mapstructure:"basic_user"`
	BasicPass     string        `mapstructure:"basic_pass"`
	Timeout       time.Duration `mapstructure:"timeout"`
	SkipTLSVerify bool          `mapstructure:"skip_tls_verify"`
	LogLevel      string        `mapstructure:"log_level"`

	// Watch-folder options.
	WatchDir   string `mapstructure:"watch_dir"`
	ArchiveDir string `mapstructure:"archive_dir"`
	SavePath   string `mapstructure:"save_path"`
	Category   string `mapstructure:"category"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", "http://localhost:8080")
	v.SetDefault("timeout", qbit.DefaultTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("watch_dir", "/blackhole")
	v.SetDefault("archive_dir", "")
}

// Load reads configuration from the given file path, or when path is empty
// from a config.{yaml,toml,json} in the current directory or ~/.qbit. A
// missing file is fine: defaults and QBIT_* environment variables still
// apply.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.qbit")
	}

	v.SetEnvPrefix("qbit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &settings, nil
}

// Logger builds a console logger at the configured level. Unknown level
// names fall back to info.
func (s *Settings) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.NewConsoleWriter()).Level(level).With().Timestamp().Logger()
}

// Client builds a qbit.Client from the settings.
func (s *Settings) Client() (*qbit.Client, error) {
	builder := qbit.NewBuilder().
		Endpoint(s.Addr).
		Timeout(s.Timeout).
		Logger(s.Logger())

	if s.Cookie != "" {
		builder.Cookie(s.Cookie)
	}
	if s.Username != "" {
		builder.Credential(s.Username, s.Password)
	}
	if s.BasicUser != "" {
		builder.BasicAuth(s.BasicUser, s.BasicPass)
	}
	if s.SkipTLSVerify {
		builder.SkipTLSVerify()
	}

	return builder.Build()
}
