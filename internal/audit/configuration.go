package audit

import "strings"

const (
	defaultRepositoryPathConstant = "."
	defaultRangeVariableConstant  = "TRAVIS_COMMIT_RANGE"
	defaultTrackedExtension       = ".md"
	defaultIgnoredFileName        = "README.md"
	defaultModifiedFieldConstant  = "date_modified"
)

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	RepositoryPath    string         `mapstructure:"repository_path"`
	RangeVariable     string         `mapstructure:"range_variable"`
	TrackedExtensions []string       `mapstructure:"tracked_extensions"`
	IgnoredFiles      []string       `mapstructure:"ignored_files"`
	ModifiedField     string         `mapstructure:"modified_field"`
	OldRevisionSource RevisionSource `mapstructure:"old_revision_source"`
	DetectRenames     bool           `mapstructure:"detect_renames"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RepositoryPath:    defaultRepositoryPathConstant,
		RangeVariable:     defaultRangeVariableConstant,
		TrackedExtensions: []string{defaultTrackedExtension},
		IgnoredFiles:      []string{defaultIgnoredFileName},
		ModifiedField:     defaultModifiedFieldConstant,
		OldRevisionSource: RevisionSourceStart,
		DetectRenames:     false,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.RepositoryPath = valueOrDefault(configuration.RepositoryPath, defaults.RepositoryPath)
	sanitized.RangeVariable = valueOrDefault(configuration.RangeVariable, defaults.RangeVariable)
	sanitized.ModifiedField = valueOrDefault(configuration.ModifiedField, defaults.ModifiedField)

	sanitized.TrackedExtensions = sanitizeExtensions(configuration.TrackedExtensions)
	if len(sanitized.TrackedExtensions) == 0 {
		sanitized.TrackedExtensions = defaults.TrackedExtensions
	}
	sanitized.IgnoredFiles = sanitizeEntries(configuration.IgnoredFiles)

	switch RevisionSource(strings.ToLower(strings.TrimSpace(string(configuration.OldRevisionSource)))) {
	case RevisionSourceEnd:
		sanitized.OldRevisionSource = RevisionSourceEnd
	default:
		sanitized.OldRevisionSource = RevisionSourceStart
	}

	return sanitized
}

func valueOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallback
	}
	return trimmed
}

func sanitizeEntries(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

func sanitizeExtensions(raw []string) []string {
	entries := sanitizeEntries(raw)
	for index := range entries {
		if !strings.HasPrefix(entries[index], ".") {
			entries[index] = "." + entries[index]
		}
	}
	return entries
}
