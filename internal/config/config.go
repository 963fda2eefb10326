package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ning0612/fdname/internal/core/namehash"
	"github.com/Ning0612/fdname/internal/domain"
	"github.com/Ning0612/fdname/internal/logger"
)

// Defaults applied by Normalize
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config represents the complete configuration of one fdname run
type Config struct {
	// Root is the directory whose entries are renamed; empty means the working directory
	Root string `mapstructure:"root"`

	// Selection picks files, directories or both
	Selection domain.Selection `mapstructure:",squash"`

	// Recursive descends into subdirectories
	Recursive bool `mapstructure:"recursive"`

	// Transform is taken from the subcommand, never from a file
	Transform domain.Transform `mapstructure:"-"`

	OnConflict    domain.ConflictPolicy `mapstructure:"on-conflict"`
	HashAlgorithm namehash.Algorithm    `mapstructure:"hash-algorithm"`

	// Root lock
	NoLock  bool   `mapstructure:"no-lock"`
	LockDir string `mapstructure:"lock-dir"`

	// Logging
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	LogFile   string `mapstructure:"log-file"`

	// Verbose prints one line per rename
	Verbose bool `mapstructure:"verbose"`
}

// Normalize fills defaults in place. Calling it twice has no further effect.
func (c *Config) Normalize() {
	c.Selection = c.Selection.Normalize()

	if c.Root != "" {
		c.Root = ExpandPath(c.Root)
	}
	if c.LockDir != "" {
		c.LockDir = ExpandPath(c.LockDir)
	}
	if c.LogFile != "" {
		c.LogFile = ExpandPath(c.LogFile)
	}
	if c.OnConflict == "" {
		c.OnConflict = domain.ConflictError
	}
	if c.HashAlgorithm == "" {
		c.HashAlgorithm = namehash.DefaultAlgorithm
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
}

// Validate checks if the configuration is complete and consistent.
// It does not touch the filesystem; the root is checked when the run starts.
func (c *Config) Validate() error {
	if err := c.Transform.Validate(); err != nil {
		return err
	}
	if !c.OnConflict.IsValid() {
		return fmt.Errorf("%w: invalid conflict policy: %s", domain.ErrConfigInvalid, c.OnConflict)
	}
	if !namehash.IsSupported(c.HashAlgorithm) {
		return fmt.Errorf("%w: unsupported hash algorithm: %s", domain.ErrConfigInvalid, c.HashAlgorithm)
	}
	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("%w: invalid log level: %s", domain.ErrConfigInvalid, c.LogLevel)
	}
	if !logger.IsValidFormat(c.LogFormat) {
		return fmt.Errorf("%w: invalid log format: %s", domain.ErrConfigInvalid, c.LogFormat)
	}
	return nil
}

// LoggerConfig converts the logging settings
func (c *Config) LoggerConfig() logger.Config {
	cfg := logger.Config{
		Level:   logger.ParseLevel(c.LogLevel),
		Format:  logger.ParseFormat(c.LogFormat),
		Outputs: []logger.OutputConfig{{Type: logger.OutputStderr}},
	}
	if c.LogFile != "" {
		cfg.File = logger.DefaultFileConfig(c.LogFile)
		cfg.Outputs = []logger.OutputConfig{{Type: logger.OutputFile}}
	}
	return cfg
}

// ExpandPath expands a leading ~ to the home directory and cleans the path
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			if len(path) > 1 && (path[1] == '/' || path[1] == filepath.Separator) {
				path = filepath.Join(home, path[2:])
			} else if len(path) == 1 {
				path = home
			}
		}
	}
	return filepath.Clean(path)
}
