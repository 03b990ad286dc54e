// Package utils holds the CLI plumbing shared by every command:
// ConfigurationLoader layers embedded defaults, configuration files and
// KBCHECK_ environment variables through Viper, and LoggerFactory builds the
// zap loggers for the structured and console formats.
package utils
