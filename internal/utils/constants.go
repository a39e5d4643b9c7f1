package utils

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

const (
	// ApplicationName is the name of the executable.
	ApplicationName = "dirtree"
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".dirtree.yaml"
	// GlobalConfigDirectoryName is the directory under the home directory holding the global configuration.
	GlobalConfigDirectoryName = ".dirtree"
	// GlobalConfigFileName is the name of the global configuration file.
	GlobalConfigFileName = "config.yaml"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"

	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

	// ExitCodeFailure is returned when the tree cannot be rendered.
	ExitCodeFailure = 2
)
