package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/kbcheck/internal/gitrepo"
)

func TestParseNameStatus(testInstance *testing.T) {
	testCases := []struct {
		name            string
		output          string
		expectedRecords []gitrepo.ChangeRecord
		expectError     bool
	}{
		{
			name:            "empty_output",
			output:          "",
			expectedRecords: []gitrepo.ChangeRecord{},
		},
		{
			name:   "mixed_changes_preserve_order",
			output: "M\x00docs/b.md\x00A\x00docs/new.md\x00D\x00docs/gone.md\x00M\x00docs/a.md\x00",
			expectedRecords: []gitrepo.ChangeRecord{
				{Kind: gitrepo.ChangeKindModified, OldPath: "docs/b.md", NewPath: "docs/b.md"},
				{Kind: gitrepo.ChangeKindAdded, OldPath: "docs/new.md", NewPath: "docs/new.md"},
				{Kind: gitrepo.ChangeKindDeleted, OldPath: "docs/gone.md", NewPath: "docs/gone.md"},
				{Kind: gitrepo.ChangeKindModified, OldPath: "docs/a.md", NewPath: "docs/a.md"},
			},
		},
		{
			name:   "rename_with_similarity_score",
			output: "R087\x00docs/old name.md\x00docs/new name.md\x00T\x00docs/link.md\x00",
			expectedRecords: []gitrepo.ChangeRecord{
				{Kind: gitrepo.ChangeKindRenamed, OldPath: "docs/old name.md", NewPath: "docs/new name.md"},
				{Kind: gitrepo.ChangeKindTypeChanged, OldPath: "docs/link.md", NewPath: "docs/link.md"},
			},
		},
		{
			name:        "truncated_rename",
			output:      "R100\x00docs/only-old.md",
			expectError: true,
		},
		{
			name:        "unknown_status",
			output:      "U\x00docs/conflict.md\x00",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			records, parseError := gitrepo.ParseNameStatus(testCase.output)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				require.IsType(testInstance, gitrepo.NameStatusParseError{}, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedRecords, records)
		})
	}
}
