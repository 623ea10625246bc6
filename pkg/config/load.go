package config

import (
	"bytes"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mensylisir/taskxm/pkg/common"
)

// Load reads the YAML file at configPath, then applies environment
// overrides, defaults and validation. The file must exist.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, errors.New("configuration file path cannot be empty")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", configPath)
	}
	return LoadFromBytes(data)
}

// Resolve loads the explicitly requested file when configPath is set.
// Otherwise it uses ~/.taskxm/config.yaml if present, and the defaults if not.
func Resolve(configPath string) (*Config, error) {
	if configPath != "" {
		return Load(configPath)
	}
	def := common.DefaultConfigPath()
	if _, err := os.Stat(def); err == nil {
		return Load(def)
	}
	return LoadFromBytes(nil)
}

// LoadFromBytes is the core of Load: YAML over Default, then environment, defaults and validation.
// Unknown YAML keys are rejected.
func LoadFromBytes(yamlBytes []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(yamlBytes))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to unmarshal yaml config")
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}

	SetDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &cfg, nil
}

// ApplyEnv overrides cfg with TASKXM_* variables, e.g. TASKXM_DATA_FILE or TASKXM_LOG_LEVEL.
// Unset variables leave the field untouched.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(common.EnvPrefix, cfg); err != nil {
		return errors.Wrap(err, "failed to apply environment overrides")
	}
	return nil
}
