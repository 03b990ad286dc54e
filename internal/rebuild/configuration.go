package rebuild

import (
	"strings"
	"time"
)

const (
	defaultBaseURLConstant     = "https://api.travis-ci.org"
	defaultRepositoryConstant  = "MyCryptoHQ/knowledge-base"
	defaultBranchConstant      = "master"
	defaultTokenSourceConstant = "env:TRAVIS_API_TOKEN"
	defaultAPIVersionConstant  = "3"
	defaultTimeoutConstant     = "30s"
)

// CommandConfiguration captures persistent settings for the notify command.
type CommandConfiguration struct {
	BaseURL     string `mapstructure:"base_url"`
	Repository  string `mapstructure:"repository"`
	Branch      string `mapstructure:"branch"`
	Message     string `mapstructure:"message"`
	TokenSource string `mapstructure:"token_source"`
	APIVersion  string `mapstructure:"api_version"`
	Timeout     string `mapstructure:"timeout"`
}

// DefaultCommandConfiguration returns baseline configuration values for the notify command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		BaseURL:     defaultBaseURLConstant,
		Repository:  defaultRepositoryConstant,
		Branch:      defaultBranchConstant,
		TokenSource: defaultTokenSourceConstant,
		APIVersion:  defaultAPIVersionConstant,
		Timeout:     defaultTimeoutConstant,
	}
}

// Sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	return CommandConfiguration{
		BaseURL:     strings.TrimRight(valueOrDefault(configuration.BaseURL, defaults.BaseURL), "/"),
		Repository:  valueOrDefault(configuration.Repository, defaults.Repository),
		Branch:      valueOrDefault(configuration.Branch, defaults.Branch),
		Message:     strings.TrimSpace(configuration.Message),
		TokenSource: valueOrDefault(configuration.TokenSource, defaults.TokenSource),
		APIVersion:  valueOrDefault(configuration.APIVersion, defaults.APIVersion),
		Timeout:     valueOrDefault(configuration.Timeout, defaults.Timeout),
	}
}

// TimeoutDuration parses the configured timeout. Unparseable or non-positive values fall back to the default.
func (configuration CommandConfiguration) TimeoutDuration() time.Duration {
	fallback, _ := time.ParseDuration(defaultTimeoutConstant)
	parsed, parseError := time.ParseDuration(strings.TrimSpace(configuration.Timeout))
	if parseError != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func valueOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallback
	}
	return trimmed
}
