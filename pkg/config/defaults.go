package config

import (
	"strings"

	"github.com/mensylisir/taskxm/pkg/common"
)

// SetDefaults fills fields left empty by the file or the environment.
// Booleans are not touched: their defaults come from Default.
func SetDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if strings.TrimSpace(cfg.DataFile) == "" {
		cfg.DataFile = common.DefaultDataFilePath()
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = common.DefaultLogLevel
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if cfg.Log.ToFile && strings.TrimSpace(cfg.Log.File) == "" {
		cfg.Log.File = common.DefaultLogFilePath()
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = common.DefaultLogMaxSizeMB
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = common.OutputTable
	}
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
}
