package audit

import (
	"path"
	"strings"

	"github.com/temirov/kbcheck/internal/gitrepo"
)

// ChangeFilter selects the changes that carry auditable metadata.
type ChangeFilter struct {
	TrackedExtensions []string
	IgnoredFileNames  []string
}

// FilterChanges keeps, in order, the changes that are not additions, whose new
// path has a tracked extension and whose file name is not ignored. Deletions are
// kept; loading their content at the end commit fails the audit.
func FilterChanges(changes []gitrepo.ChangeRecord, filter ChangeFilter) []gitrepo.ChangeRecord {
	retained := make([]gitrepo.ChangeRecord, 0, len(changes))
	for _, change := range changes {
		if change.Kind == gitrepo.ChangeKindAdded {
			continue
		}
		if !filter.tracksExtension(change.NewPath) {
			continue
		}
		if filter.ignoresFileName(change.NewPath) {
			continue
		}
		retained = append(retained, change)
	}
	return retained
}

func (filter ChangeFilter) tracksExtension(filePath string) bool {
	extension := strings.ToLower(path.Ext(filePath))
	if len(extension) == 0 {
		return false
	}
	for _, trackedExtension := range filter.TrackedExtensions {
		if strings.ToLower(trackedExtension) == extension {
			return true
		}
	}
	return false
}

func (filter ChangeFilter) ignoresFileName(filePath string) bool {
	fileName := path.Base(filePath)
	for _, ignoredFileName := range filter.IgnoredFileNames {
		if fileName == ignoredFileName {
			return true
		}
	}
	return false
}
