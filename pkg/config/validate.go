package config

import (
	"github.com/mensylisir/taskxm/pkg/common"
	"github.com/mensylisir/taskxm/pkg/errors/validation"
	"github.com/mensylisir/taskxm/pkg/logger"
)

// Validate reports every invalid field at once.
func Validate(cfg *Config) error {
	verrs := &validation.ValidationErrors{}

	verrs.AddRequired("dataFile", cfg.DataFile)

	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		verrs.AddError("log.level", err.Error())
	}
	verrs.AddMin("log.maxSizeMB", cfg.Log.MaxSizeMB, 1)
	verrs.AddMin("log.maxBackups", cfg.Log.MaxBackups, 0)

	verrs.AddOneOf("output.format", cfg.Output.Format, common.OutputFormats...)
	if cfg.Output.Format == common.OutputTemplate {
		verrs.AddRequired("output.template", cfg.Output.Template)
	}
	verrs.AddMin("output.progressThreshold", cfg.Output.ProgressThreshold, 0)

	return verrs.OrNil()
}
