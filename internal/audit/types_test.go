package audit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/kbcheck/internal/audit"
)

func TestParseCommitRange(testInstance *testing.T) {
	testCases := []struct {
		name          string
		expression    string
		expectedRange audit.CommitRange
		expectError   bool
	}{
		{name: "abbreviated_hashes", expression: "abc1234...def5678", expectedRange: audit.CommitRange{Start: "abc1234", End: "def5678"}},
		{name: "revision_expressions", expression: " origin/master...HEAD~1 ", expectedRange: audit.CommitRange{Start: "origin/master", End: "HEAD~1"}},
		{name: "double_dot", expression: "abc..def", expectError: true},
		{name: "missing_start", expression: "...def", expectError: true},
		{name: "missing_end", expression: "abc...", expectError: true},
		{name: "repeated_separator", expression: "a...b...c", expectError: true},
		{name: "single_reference", expression: "HEAD", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subTest *testing.T) {
			commitRange, parseError := audit.ParseCommitRange(testCase.expression)
			if testCase.expectError {
				var rangeError audit.RangeFormatError
				require.True(subTest, errors.As(parseError, &rangeError))
				require.Equal(subTest, testCase.expression, rangeError.Expression)
				return
			}
			require.NoError(subTest, parseError)
			require.Equal(subTest, testCase.expectedRange, commitRange)
		})
	}
}
