package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level to emit (debug, info, warn, error).
	Level string `mapstructure:"level" yaml:"level" default:"info"`
	// Format is the log encoding (console or json).
	Format string `mapstructure:"format" yaml:"format" default:"console"`
}
