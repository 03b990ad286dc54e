package audit

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/kbcheck/internal/execshell"
	"github.com/temirov/kbcheck/internal/gitrepo"
	pathutils "github.com/temirov/kbcheck/internal/utils/path"
)

const (
	commandNameConstant           = "audit"
	commandShortDescription       = "Verify that modified articles update their modified date"
	commandLongDescription        = "audit compares the front matter of every modified tracked file in a commit range and fails when a file changed without updating its modified date field."
	flagRangeName                 = "range"
	flagRangeDescription          = "Commit range to audit in the form <start>...<end> (defaults to the configured environment variable)"
	flagRepositoryName            = "repository"
	flagRepositoryDescription     = "Path to the git repository to audit"
	rangeSourceFlagConstant       = "flag"
	rangeSourceEnvironment        = "environment"
	logFieldRangeSourceConstant   = "range_source"
	logFieldRangeVariableConstant = "range_variable"
	rangeSelectedMessageConstant  = "Selected commit range"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// EnvironmentLookup reads environment variables.
type EnvironmentLookup func(name string) (string, bool)

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	GitExecutor           gitrepo.GitExecutor
	Repository            RepositoryReader
	MetadataParser        MetadataParser
	Clock                 Clock
	EnvironmentLookup     EnvironmentLookup
	HomeExpander          *pathutils.HomeExpander
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the cobra command for the modified date audit.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandNameConstant,
		Short:         commandShortDescription,
		Long:          commandLongDescription,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.run,
	}

	command.Flags().String(flagRangeName, "", flagRangeDescription)
	command.Flags().String(flagRepositoryName, "", flagRepositoryDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	repositoryPath := configuration.RepositoryPath
	if command.Flags().Changed(flagRepositoryName) {
		flagValue, _ := command.Flags().GetString(flagRepositoryName)
		if trimmed := strings.TrimSpace(flagValue); len(trimmed) > 0 {
			repositoryPath = trimmed
		}
	}
	repositoryPath = builder.resolveHomeExpander().Expand(repositoryPath)

	rangeExpression := builder.resolveRangeExpression(command, configuration, logger)

	repository, repositoryError := builder.resolveRepository(logger, repositoryPath)
	if repositoryError != nil {
		return repositoryError
	}

	parser := builder.MetadataParser
	if parser == nil {
		parser = FrontMatterParser{}
	}

	service, serviceError := NewService(logger, repository, parser, command.OutOrStdout(), builder.Clock)
	if serviceError != nil {
		return serviceError
	}

	return service.Run(command.Context(), CommandOptions{
		RangeExpression:   rangeExpression,
		TrackedExtensions: configuration.TrackedExtensions,
		IgnoredFileNames:  configuration.IgnoredFiles,
		ModifiedField:     configuration.ModifiedField,
		OldRevisionSource: configuration.OldRevisionSource,
		DetectRenames:     configuration.DetectRenames,
	})
}

func (builder *CommandBuilder) resolveRangeExpression(command *cobra.Command, configuration CommandConfiguration, logger *zap.Logger) string {
	if command.Flags().Changed(flagRangeName) {
		flagValue, _ := command.Flags().GetString(flagRangeName)
		logger.Debug(rangeSelectedMessageConstant, zap.String(logFieldRangeSourceConstant, rangeSourceFlagConstant), zap.String(logFieldRangeConstant, flagValue))
		return flagValue
	}

	lookup := builder.EnvironmentLookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	environmentValue, _ := lookup(configuration.RangeVariable)
	logger.Debug(
		rangeSelectedMessageConstant,
		zap.String(logFieldRangeSourceConstant, rangeSourceEnvironment),
		zap.String(logFieldRangeVariableConstant, configuration.RangeVariable),
		zap.String(logFieldRangeConstant, environmentValue),
	)
	return environmentValue
}

func (builder *CommandBuilder) resolveRepository(logger *zap.Logger, repositoryPath string) (RepositoryReader, error) {
	if builder.Repository != nil {
		return builder.Repository, nil
	}

	executor := builder.GitExecutor
	if executor == nil {
		shellExecutor, executorError := execshell.NewShellExecutorWithObserver(logger, execshell.NewOSCommandRunner(), builder.CommandEventsObserver)
		if executorError != nil {
			return nil, executorError
		}
		executor = shellExecutor
	}

	repository, repositoryError := gitrepo.NewRepository(executor, repositoryPath)
	if repositoryError != nil {
		return nil, repositoryError
	}
	return repository, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveHomeExpander() *pathutils.HomeExpander {
	if builder.HomeExpander != nil {
		return builder.HomeExpander
	}
	return pathutils.NewHomeExpander()
}
