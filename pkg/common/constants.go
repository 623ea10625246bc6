package common

// EnvPrefix prefixes every environment variable read by the config layer, e.g. TASKXM_LOG_LEVEL.
const EnvPrefix = "TASKXM"

// Output formats accepted by --output and output.format.
const (
	OutputTable    = "table"
	OutputJSON     = "json"
	OutputYAML     = "yaml"
	OutputTOML     = "toml"
	OutputTemplate = "template"
)

// OutputFormats lists every supported output format.
var OutputFormats = []string{OutputTable, OutputJSON, OutputYAML, OutputTOML, OutputTemplate}

// Defaults for the ambient settings.
const (
	DefaultLogLevel          = "info"
	DefaultLogMaxSizeMB      = 10
	DefaultLogMaxBackups     = 3
	DefaultProgressThreshold = 1000
)
