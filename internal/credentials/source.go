package credentials

import (
	"errors"
	"fmt"
	"strings"
)

const (
	sourceSeparatorConstant          = ":"
	environmentKindValueConstant     = "env"
	fileKindValueConstant            = "file"
	sourceMissingMessageConstant     = "token source must be provided"
	referenceMissingTemplateConstant = "token source %q has no reference"
	unsupportedKindTemplateConstant  = "unsupported token source kind %q"
	sourceStringTemplateConstant     = "%s:%s"
)

// SourceKind enumerates where a token may be stored.
type SourceKind string

// Supported source kinds.
const (
	SourceKindEnvironment SourceKind = environmentKindValueConstant
	SourceKindFile        SourceKind = fileKindValueConstant
)

// ErrSourceMissing indicates an empty token source declaration.
var ErrSourceMissing = errors.New(sourceMissingMessageConstant)

// Source names the location of a token.
type Source struct {
	Kind      SourceKind
	Reference string
}

// String renders the source in its declarative form.
func (source Source) String() string {
	return fmt.Sprintf(sourceStringTemplateConstant, source.Kind, source.Reference)
}

// ParseSource interprets `env:NAME`, `file:PATH` or a bare environment variable name.
func ParseSource(declaration string) (Source, error) {
	trimmedDeclaration := strings.TrimSpace(declaration)
	if len(trimmedDeclaration) == 0 {
		return Source{}, ErrSourceMissing
	}

	kindText, reference, hasKind := strings.Cut(trimmedDeclaration, sourceSeparatorConstant)
	if !hasKind {
		return Source{Kind: SourceKindEnvironment, Reference: trimmedDeclaration}, nil
	}

	kind := SourceKind(strings.ToLower(strings.TrimSpace(kindText)))
	reference = strings.TrimSpace(reference)

	switch kind {
	case SourceKindEnvironment, SourceKindFile:
		if len(reference) == 0 {
			return Source{}, fmt.Errorf(referenceMissingTemplateConstant, trimmedDeclaration)
		}
		return Source{Kind: kind, Reference: reference}, nil
	default:
		return Source{}, fmt.Errorf(unsupportedKindTemplateConstant, kind)
	}
}
