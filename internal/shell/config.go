package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config holds the settings of a calculator session.
type Config struct {
	// Prompt is shown before each line in interactive mode.
	Prompt string `toml:"prompt"`
	// Color enables colored output when the terminal supports it.
	Color bool `toml:"color"`
	// Format is the output format, "text" or "yaml".
	Format string `toml:"format"`
	// Details evaluates every expression step by step.
	Details bool `toml:"details"`
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level"`
}

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// DefaultConfig returns the settings used when there is no config file.
func DefaultConfig() Config {
	return Config{
		Prompt:   "calc> ",
		Color:    true,
		Format:   FormatText,
		LogLevel: zerolog.WarnLevel.String(),
	}
}

// DefaultConfigPath returns the path of the config file in the user's
// configuration directory.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "calc", "config.toml"), nil
}

// LoadConfig reads a TOML config file over the defaults. A missing file is
// not an error. Keys the file sets that Config does not have are logged and
// otherwise ignored.
func LoadConfig(path string, log zerolog.Logger) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", path).Msg("no config file")
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("reading config: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Warn().Str("path", path).Str("key", key.String()).Msg("unknown config key")
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the format and log level are known.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("bad log level: %w", err)
	}
	return nil
}

// Level returns the zerolog level named by LogLevel, or warn if the name is
// empty or not a level.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.WarnLevel
	}
	return level
}
