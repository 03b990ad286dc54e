package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"

	pathutils "github.com/temirov/kbcheck/internal/utils/path"
)

const (
	tokenMissingTemplateConstant  = "token not found in %s"
	tokenFileReadTemplateConstant = "unable to read token file %s: %w"
)

// EnvironmentLookup obtains an environment variable value.
type EnvironmentLookup func(name string) (string, bool)

// FileReader reads the contents of a file path.
type FileReader func(path string) ([]byte, error)

// MissingTokenError reports a source that exists but yields no token.
type MissingTokenError struct {
	Source Source
}

// Error names the empty source.
func (missingError MissingTokenError) Error() string {
	return fmt.Sprintf(tokenMissingTemplateConstant, missingError.Source)
}

// Resolver reads tokens from environment variables and files.
type Resolver struct {
	environmentLookup EnvironmentLookup
	fileReader        FileReader
	homeExpander      *pathutils.HomeExpander
}

// NewResolver constructs a Resolver. Nil collaborators fall back to the operating system.
func NewResolver(environmentLookup EnvironmentLookup, fileReader FileReader) *Resolver {
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	if fileReader == nil {
		fileReader = os.ReadFile
	}
	return &Resolver{
		environmentLookup: environmentLookup,
		fileReader:        fileReader,
		homeExpander:      pathutils.NewHomeExpander(),
	}
}

// Resolve returns the trimmed token held by source. Blank tokens are reported as MissingTokenError.
func (resolver *Resolver) Resolve(resolutionContext context.Context, source Source) (string, error) {
	if contextError := resolutionContext.Err(); contextError != nil {
		return "", contextError
	}

	switch source.Kind {
	case SourceKindEnvironment:
		value, _ := resolver.environmentLookup(source.Reference)
		return requireToken(source, value)
	case SourceKindFile:
		filePath := resolver.homeExpander.Expand(source.Reference)
		content, readError := resolver.fileReader(filePath)
		if readError != nil {
			return "", fmt.Errorf(tokenFileReadTemplateConstant, filePath, readError)
		}
		return requireToken(source, string(content))
	default:
		return "", fmt.Errorf(unsupportedKindTemplateConstant, source.Kind)
	}
}

func requireToken(source Source, value string) (string, error) {
	token := strings.TrimSpace(value)
	if len(token) == 0 {
		return "", MissingTokenError{Source: source}
	}
	return token, nil
}
