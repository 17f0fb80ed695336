package config

const (
	defaultDataDir        = "~/.local/share/vendormatch"
	defaultLogDir         = "~/.local/share/vendormatch/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultFuzzyThreshold = 0.8
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			FuzzyThreshold: defaultFuzzyThreshold,
			FuzzyEnabled:   true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
