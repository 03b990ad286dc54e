package cli

import (
	_ "embed"

	"github.com/temirov/kbcheck/internal/audit"
	"github.com/temirov/kbcheck/internal/rebuild"
	"github.com/temirov/kbcheck/internal/utils"
)

//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the embedded default configuration and its type.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), embeddedDefaultConfigurationContent...), configurationTypeConstant
}

// defaultConfigurationValues registers every configuration key with Viper so
// that KBCHECK_ environment variables can override keys absent from files.
func defaultConfigurationValues() map[string]any {
	auditDefaults := audit.DefaultCommandConfiguration()
	notifyDefaults := rebuild.DefaultCommandConfiguration()

	return map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),

		auditConfigurationKeyConstant + ".repository_path":     auditDefaults.RepositoryPath,
		auditConfigurationKeyConstant + ".range_variable":      auditDefaults.RangeVariable,
		auditConfigurationKeyConstant + ".tracked_extensions":  auditDefaults.TrackedExtensions,
		auditConfigurationKeyConstant + ".ignored_files":       auditDefaults.IgnoredFiles,
		auditConfigurationKeyConstant + ".modified_field":      auditDefaults.ModifiedField,
		auditConfigurationKeyConstant + ".old_revision_source": string(auditDefaults.OldRevisionSource),
		auditConfigurationKeyConstant + ".detect_renames":      auditDefaults.DetectRenames,

		notifyConfigurationKeyConstant + ".base_url":     notifyDefaults.BaseURL,
		notifyConfigurationKeyConstant + ".repository":   notifyDefaults.Repository,
		notifyConfigurationKeyConstant + ".branch":       notifyDefaults.Branch,
		notifyConfigurationKeyConstant + ".message":      notifyDefaults.Message,
		notifyConfigurationKeyConstant + ".token_source": notifyDefaults.TokenSource,
		notifyConfigurationKeyConstant + ".api_version":  notifyDefaults.APIVersion,
		notifyConfigurationKeyConstant + ".timeout":      notifyDefaults.Timeout,
	}
}
