package cli

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/kbcheck/internal/audit"
	"github.com/temirov/kbcheck/internal/execshell"
	"github.com/temirov/kbcheck/internal/rebuild"
	"github.com/temirov/kbcheck/internal/ui"
	"github.com/temirov/kbcheck/internal/utils"
	"github.com/temirov/kbcheck/internal/utils/flags"
)

const (
	applicationNameConstant                 = "kbcheck"
	applicationShortDescriptionConstant     = "Continuity checks for knowledge base repositories"
	applicationLongDescriptionConstant      = "kbcheck verifies that edited articles bump their modified date and asks Travis CI to rebuild the published site after a merge."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	toolsConfigurationKeyConstant           = "tools"
	auditConfigurationKeyConstant           = toolsConfigurationKeyConstant + ".audit"
	notifyConfigurationKeyConstant          = toolsConfigurationKeyConstant + ".notify"
	environmentPrefixConstant               = "KBCHECK"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build %s command: %w"
)

// Version is reported by --version and may be overridden at link time.
var Version = "dev"

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds per-command configuration.
type ApplicationToolsConfiguration struct {
	Audit  audit.CommandConfiguration   `mapstructure:"audit"`
	Notify rebuild.CommandConfiguration `mapstructure:"notify"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	commandEvents         *ui.ConsoleCommandEventLogger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	return newApplication(
		utils.NewConfigurationLoader(configurationNameConstant, configurationTypeConstant, environmentPrefixConstant, utils.DefaultSearchPaths(applicationNameConstant)),
		utils.NewLoggerFactory(),
	)
}

func newApplication(configurationLoader *utils.ConfigurationLoader, loggerFactory *utils.LoggerFactory) *Application {
	embeddedConfiguration, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfiguration, embeddedConfigurationType)

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       loggerFactory,
		logger:              zap.NewNop(),
		commandEvents:       ui.NewConsoleCommandEventLogger(nil),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(
		&application.logLevelFlagValue,
		logLevelFlagNameConstant,
		"",
		flags.FormatChoiceUsage(string(utils.LogLevelWarn), supportedLogLevels(), logLevelFlagUsageConstant),
	)
	cobraCommand.PersistentFlags().StringVar(
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		"",
		flags.FormatChoiceUsage(string(utils.LogFormatStructured), supportedLogFormats(), logFormatFlagUsageConstant),
	)

	auditBuilder := audit.CommandBuilder{
		LoggerProvider: application.currentLogger,
		ConfigurationProvider: func() audit.CommandConfiguration {
			return application.configuration.Tools.Audit
		},
		CommandEventsObserver: deferredCommandEventObserver{application: application},
	}
	notifyBuilder := rebuild.CommandBuilder{
		LoggerProvider: application.currentLogger,
		ConfigurationProvider: func() rebuild.CommandConfiguration {
			return application.configuration.Tools.Notify
		},
	}

	for _, builder := range []interface {
		Build() (*cobra.Command, error)
	}{&auditBuilder, &notifyBuilder} {
		subcommand, buildError := builder.Build()
		if buildError != nil {
			cobraCommand.RunE = func(command *cobra.Command, arguments []string) error {
				return fmt.Errorf(commandBuildErrorTemplateConstant, applicationNameConstant, buildError)
			}
			continue
		}
		cobraCommand.AddCommand(subcommand)
	}

	application.rootCommand = cobraCommand
	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.syncLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) currentLogger() *zap.Logger {
	return application.logger
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logLevel, levelError := flags.NormalizeChoice(logLevelFlagNameConstant, application.configuration.Common.LogLevel, supportedLogLevels())
	if levelError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, levelError)
	}
	logFormat, formatError := flags.NormalizeChoice(logFormatFlagNameConstant, application.configuration.Common.LogFormat, supportedLogFormats())
	if formatError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, formatError)
	}
	application.configuration.Common.LogLevel = logLevel
	application.configuration.Common.LogFormat = logFormat

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(utils.LogLevel(logLevel), utils.LogFormat(logFormat))
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = loggerOutputs.DiagnosticLogger
	application.commandEvents = ui.NewConsoleCommandEventLogger(loggerOutputs.ConsoleLogger)

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, logLevel),
		zap.String(configurationLogFormatFieldConstant, logFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)
	return nil
}

func (application *Application) syncLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}
	return false
}

func supportedLogLevels() []string {
	return []string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)}
}

func supportedLogFormats() []string {
	return []string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)}
}

// deferredCommandEventObserver forwards to the console event logger created once configuration is loaded.
type deferredCommandEventObserver struct {
	application *Application
}

func (observer deferredCommandEventObserver) CommandStarted(command execshell.ShellCommand) {
	observer.application.commandEvents.CommandStarted(command)
}

func (observer deferredCommandEventObserver) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	observer.application.commandEvents.CommandCompleted(command, result)
}

func (observer deferredCommandEventObserver) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	observer.application.commandEvents.CommandExecutionFailed(command, failure)
}
