// Package flags formats and validates enumerated command-line flag values.
package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderTemplate = "<%s>"
	choiceSeparatorLiteral    = "|"
	choiceUsageTemplate       = "%s %s"
	choiceInvalidTemplate     = "invalid value %q for --%s: expected one of %s"
)

// ChoiceError reports a flag value outside its allowed set.
type ChoiceError struct {
	FlagName string
	Value    string
	Choices  []string
}

// Error lists the accepted values.
func (choiceError ChoiceError) Error() string {
	return fmt.Sprintf(choiceInvalidTemplate, choiceError.Value, choiceError.FlagName, strings.Join(choiceError.Choices, choiceSeparatorLiteral))
}

// FormatChoiceUsage prefixes description with a `<a|B|c>` placeholder where the default choice is capitalized.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	displayed := make([]string, 0, len(choices))
	for _, choice := range uniqueChoices(choices) {
		if strings.ToLower(choice) == normalizedDefault {
			choice = strings.ToUpper(choice)
		}
		displayed = append(displayed, choice)
	}

	placeholder := fmt.Sprintf(choicePlaceholderTemplate, strings.Join(displayed, choiceSeparatorLiteral))
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return placeholder
	}
	return fmt.Sprintf(choiceUsageTemplate, placeholder, trimmedDescription)
}

// NormalizeChoice returns the canonical spelling of value among choices, ignoring case and surrounding space.
func NormalizeChoice(flagName string, value string, choices []string) (string, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(value))
	for _, choice := range uniqueChoices(choices) {
		if strings.ToLower(choice) == normalizedValue {
			return choice, nil
		}
	}
	return "", ChoiceError{FlagName: flagName, Value: value, Choices: uniqueChoices(choices)}
}

func uniqueChoices(choices []string) []string {
	unique := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}
		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		unique = append(unique, trimmedChoice)
	}
	return unique
}
