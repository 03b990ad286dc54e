package audit

import (
	"strings"
	"time"

	"github.com/temirov/kbcheck/internal/gitrepo"
)

const commitRangeSeparatorConstant = "..."

// RevisionSource selects which commit the old side of a change is read from.
// The zero value reads from the start commit, so an edited modified date is
// seen as a change. RevisionSourceEnd reads both sides from the end commit and
// reproduces the legacy Travis check: old and new dates are then always equal,
// so a modified file passes only when its date equals the current instant.
type RevisionSource string

// Supported revision sources.
const (
	RevisionSourceEnd   RevisionSource = "end"
	RevisionSourceStart RevisionSource = "start"
)

// CommitRange is the pair of revision expressions bounding the audited history.
type CommitRange struct {
	Start string
	End   string
}

// ParseCommitRange splits a `<start>...<end>` expression.
func ParseCommitRange(expression string) (CommitRange, error) {
	trimmedExpression := strings.TrimSpace(expression)
	start, end, found := strings.Cut(trimmedExpression, commitRangeSeparatorConstant)
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if !found || len(start) == 0 || len(end) == 0 || strings.Contains(end, commitRangeSeparatorConstant) {
		return CommitRange{}, RangeFormatError{Expression: expression}
	}
	return CommitRange{Start: start, End: end}, nil
}

// CommandOptions captures one audit invocation. An empty RangeExpression turns the run into a no-op.
type CommandOptions struct {
	RangeExpression   string
	TrackedExtensions []string
	IgnoredFileNames  []string
	ModifiedField     string
	OldRevisionSource RevisionSource
	DetectRenames     bool
}

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// MetadataComparison pairs a change with the modified-date read from each side of it.
type MetadataComparison struct {
	Change      gitrepo.ChangeRecord
	OldModified time.Time
	NewModified time.Time
}
