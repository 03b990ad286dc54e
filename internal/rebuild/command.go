package rebuild

import (
	"context"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/kbcheck/internal/credentials"
	"github.com/temirov/kbcheck/internal/travis"
)

const (
	commandNameConstant        = "notify"
	commandShortDescription    = "Request a downstream Travis CI rebuild"
	commandLongDescription     = "notify posts a single build request for the configured repository branch to the Travis CI API. The API token is read from the configured token source."
	flagTokenSourceName        = "token-source"
	flagTokenSourceDescription = "Token source in the form env:NAME or file:PATH"
	flagBranchName             = "branch"
	flagBranchDescription      = "Branch to rebuild"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// TokenResolver reads a token from a source.
type TokenResolver interface {
	Resolve(resolutionContext context.Context, source credentials.Source) (string, error)
}

// CommandBuilder assembles the notify cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	HTTPClient            travis.HTTPClient
	TokenResolver         TokenResolver
}

// Build constructs the cobra command for downstream rebuild notifications.
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

	command.Flags().String(flagTokenSourceName, "", flagTokenSourceDescription)
	command.Flags().String(flagBranchName, "", flagBranchDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	if value := changedStringFlag(command, flagTokenSourceName); len(value) > 0 {
		configuration.TokenSource = value
	}
	if value := changedStringFlag(command, flagBranchName); len(value) > 0 {
		configuration.Branch = value
	}

	source, sourceError := credentials.ParseSource(configuration.TokenSource)
	if sourceError != nil {
		return sourceError
	}

	resolver := builder.TokenResolver
	if resolver == nil {
		resolver = credentials.NewResolver(nil, nil)
	}
	token, tokenError := resolver.Resolve(command.Context(), source)
	if tokenError != nil {
		return tokenError
	}

	client := builder.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: configuration.TimeoutDuration()}
	}

	trigger, triggerError := travis.NewTriggerService(logger, client, travis.ServiceConfiguration{
		BaseURL:    configuration.BaseURL,
		Repository: configuration.Repository,
		APIVersion: configuration.APIVersion,
	})
	if triggerError != nil {
		return triggerError
	}

	service, serviceError := NewService(logger, trigger)
	if serviceError != nil {
		return serviceError
	}

	return service.Notify(command.Context(), NotifyOptions{
		Token:   token,
		Branch:  configuration.Branch,
		Message: configuration.Message,
	})
}

func changedStringFlag(command *cobra.Command, flagName string) string {
	if !command.Flags().Changed(flagName) {
		return ""
	}
	value, _ := command.Flags().GetString(flagName)
	return strings.TrimSpace(value)
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
		return DefaultCommandConfiguration().Sanitize()
	}
	return builder.ConfigurationProvider().Sanitize()
}
