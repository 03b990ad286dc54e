package gitrepo

import (
	"fmt"
	"strings"
)

const (
	nameStatusSeparatorConstant         = "\x00"
	nameStatusTruncatedTemplateConstant = "name-status output truncated after %q"
	nameStatusUnknownTemplateConstant   = "unsupported change status %q for %s"
)

// ChangeKind classifies how a path changed between two commits.
type ChangeKind string

// Supported change kinds, named after git's name-status letters.
const (
	ChangeKindAdded       ChangeKind = "added"
	ChangeKindModified    ChangeKind = "modified"
	ChangeKindRenamed     ChangeKind = "renamed"
	ChangeKindCopied      ChangeKind = "copied"
	ChangeKindDeleted     ChangeKind = "deleted"
	ChangeKindTypeChanged ChangeKind = "type_changed"
)

var statusLetterKinds = map[byte]ChangeKind{
	'A': ChangeKindAdded,
	'M': ChangeKindModified,
	'R': ChangeKindRenamed,
	'C': ChangeKindCopied,
	'D': ChangeKindDeleted,
	'T': ChangeKindTypeChanged,
}

// ChangeRecord describes one changed path. OldPath equals NewPath unless the
// change is a rename or copy.
type ChangeRecord struct {
	Kind    ChangeKind
	OldPath string
	NewPath string
}

// NameStatusParseError reports output of `git diff --name-status -z` that could not be interpreted.
type NameStatusParseError struct {
	Message string
}

// Error describes the parse failure.
func (parseError NameStatusParseError) Error() string {
	return parseError.Message
}

// ParseNameStatus converts NUL-separated `git diff --name-status -z` output into change records, preserving order.
func ParseNameStatus(output string) ([]ChangeRecord, error) {
	tokens := strings.Split(output, nameStatusSeparatorConstant)
	records := make([]ChangeRecord, 0, len(tokens)/2)

	for index := 0; index < len(tokens); {
		status := strings.TrimSpace(tokens[index])
		if len(status) == 0 {
			index++
			continue
		}

		kind, known := statusLetterKinds[status[0]]
		if !known {
			path := ""
			if index+1 < len(tokens) {
				path = tokens[index+1]
			}
			return nil, NameStatusParseError{Message: fmt.Sprintf(nameStatusUnknownTemplateConstant, status, path)}
		}

		pathCount := 1
		if kind == ChangeKindRenamed || kind == ChangeKindCopied {
			pathCount = 2
		}
		if index+pathCount >= len(tokens) {
			return nil, NameStatusParseError{Message: fmt.Sprintf(nameStatusTruncatedTemplateConstant, status)}
		}

		record := ChangeRecord{Kind: kind, OldPath: tokens[index+1], NewPath: tokens[index+1]}
		if pathCount == 2 {
			record.NewPath = tokens[index+2]
		}
		records = append(records, record)
		index += pathCount + 1
	}

	return records, nil
}
