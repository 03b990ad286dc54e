package audit

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	rangeFormatErrorTemplateConstant       = "commit range %q must have the form <start>...<end>"
	metadataErrorTemplateConstant          = "unable to read %s metadata of %s at %s: %v"
	violationHeaderTemplateConstant        = "Please update the '%s' field in the following file(s):"
	violationEntryTemplateConstant         = "\n - %s"
	repositoryNotConfiguredMessageConstant = "audit repository reader not configured"
	parserNotConfiguredMessageConstant     = "audit metadata parser not configured"
)

var (
	// ErrRepositoryNotConfigured indicates the service was built without a repository reader.
	ErrRepositoryNotConfigured = errors.New(repositoryNotConfiguredMessageConstant)
	// ErrMetadataParserNotConfigured indicates the service was built without a metadata parser.
	ErrMetadataParserNotConfigured = errors.New(parserNotConfiguredMessageConstant)
)

// RangeFormatError reports a commit range expression that cannot be split.
type RangeFormatError struct {
	Expression string
}

// Error describes the malformed expression.
func (rangeError RangeFormatError) Error() string {
	return fmt.Sprintf(rangeFormatErrorTemplateConstant, rangeError.Expression)
}

// MetadataError reports a file whose front matter does not yield the modified date.
type MetadataError struct {
	Field  string
	Path   string
	Commit string
	Cause  error
}

// Error describes the unreadable metadata.
func (metadataError MetadataError) Error() string {
	return fmt.Sprintf(metadataErrorTemplateConstant, metadataError.Field, metadataError.Path, metadataError.Commit, metadataError.Cause)
}

// Unwrap exposes the parser failure.
func (metadataError MetadataError) Unwrap() error {
	return metadataError.Cause
}

// ViolationError lists the files whose content changed without a new modified date.
type ViolationError struct {
	Field string
	Paths []string
}

// Error renders the violation report.
func (violationError ViolationError) Error() string {
	var builder strings.Builder
	builder.WriteString(violationError.header())
	for _, violationPath := range violationError.Paths {
		builder.WriteString(fmt.Sprintf(violationEntryTemplateConstant, violationPath))
	}
	return builder.String()
}

// WriteReport prints the violation report with a highlighted header when the terminal supports color.
func (violationError ViolationError) WriteReport(writer io.Writer) error {
	highlighter := color.New(color.FgRed, color.Bold)
	if _, writeError := highlighter.Fprint(writer, violationError.header()); writeError != nil {
		return writeError
	}
	for _, violationPath := range violationError.Paths {
		if _, writeError := fmt.Fprintf(writer, violationEntryTemplateConstant, violationPath); writeError != nil {
			return writeError
		}
	}
	_, writeError := fmt.Fprintln(writer)
	return writeError
}

func (violationError ViolationError) header() string {
	field := violationError.Field
	if len(field) == 0 {
		field = defaultModifiedFieldConstant
	}
	return fmt.Sprintf(violationHeaderTemplateConstant, field)
}
