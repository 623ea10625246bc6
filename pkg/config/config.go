// Package config loads the taskxm settings. Values come, in increasing order
// of precedence, from built-in defaults, an optional YAML file and TASKXM_*
// environment variables; command-line flags are applied on top by the CLI.
package config

import (
	"github.com/mensylisir/taskxm/pkg/common"
	"github.com/mensylisir/taskxm/pkg/logger"
)

// Config is the top-level configuration object, typically parsed from ~/.taskxm/config.yaml.
type Config struct {
	// DataFile is the task file used by the task commands and preloaded by the shell.
	DataFile string       `yaml:"dataFile" split_words:"true"`
	Log      LogConfig    `yaml:"log"`
	Output   OutputConfig `yaml:"output"`
	Tick     TickConfig   `yaml:"tick"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File enables JSON file logging when set.
	File string `yaml:"file"`
	// ToFile enables file logging to File, or to ~/.taskxm/logs/taskxm.log when File is empty.
	ToFile     bool   `yaml:"toFile" split_words:"true"`
	Color      bool   `yaml:"color"`
	MaxSizeMB  int    `yaml:"maxSizeMB" split_words:"true"`
	MaxBackups int    `yaml:"maxBackups" split_words:"true"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	// Template is the go template used when Format is "template".
	Template string `yaml:"template"`
	Color    bool   `yaml:"color"`
	Banner   bool   `yaml:"banner"`
	// ProgressThreshold is the task count from which save and load show a progress bar. 0 disables it.
	ProgressThreshold int `yaml:"progressThreshold" split_words:"true"`
}

type TickConfig struct {
	// Seed makes simulated ticks reproducible. 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		DataFile: common.DefaultDataFilePath(),
		Log: LogConfig{
			Level:      common.DefaultLogLevel,
			Color:      true,
			MaxSizeMB:  common.DefaultLogMaxSizeMB,
			MaxBackups: common.DefaultLogMaxBackups,
		},
		Output: OutputConfig{
			Format:            common.OutputTable,
			Color:             true,
			Banner:            true,
			ProgressThreshold: common.DefaultProgressThreshold,
		},
	}
}

// LoggerOptions converts the log section to logger options. verbose forces debug output on the console.
func (c *Config) LoggerOptions(verbose bool) logger.Options {
	opts := logger.DefaultOptions()
	if lvl, err := logger.ParseLevel(c.Log.Level); err == nil {
		opts.ConsoleLevel = lvl
	}
	if verbose {
		opts.ConsoleLevel = logger.DebugLevel
	}
	opts.ColorConsole = c.Log.Color
	opts.MaxSizeMB = c.Log.MaxSizeMB
	opts.MaxBackups = c.Log.MaxBackups
	if c.Log.File != "" {
		opts.FileOutput = true
		opts.LogFilePath = c.Log.File
	}
	return opts
}
