package audit

import (
	"context"
	"time"

	"github.com/temirov/kbcheck/internal/frontmatter"
	"github.com/temirov/kbcheck/internal/gitrepo"
)

// RepositoryReader exposes the snapshot operations the audit consumes.
type RepositoryReader interface {
	ResolveCommit(executionContext context.Context, reference string) (string, error)
	DiffCommits(executionContext context.Context, startCommit string, endCommit string, options gitrepo.DiffOptions) ([]gitrepo.ChangeRecord, error)
	ReadFile(executionContext context.Context, commit string, filePath string) ([]byte, error)
}

// MetadataParser extracts a timestamp field from file content.
type MetadataParser interface {
	ModifiedDate(content []byte, field string) (time.Time, error)
}

// FrontMatterParser reads timestamps from YAML front matter.
type FrontMatterParser struct{}

// ModifiedDate parses the front matter of content and returns field as a UTC instant.
func (FrontMatterParser) ModifiedDate(content []byte, field string) (time.Time, error) {
	document, parseError := frontmatter.Parse(content)
	if parseError != nil {
		return time.Time{}, parseError
	}
	return document.Time(field)
}
