package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/temirov/kbcheck/internal/audit"
)

func TestReportError(testInstance *testing.T) {
	previousNoColor := color.NoColor
	color.NoColor = true
	testInstance.Cleanup(func() { color.NoColor = previousNoColor })

	testCases := []struct {
		name           string
		err            error
		expectedOutput string
	}{
		{
			name:           "nil_error",
			err:            nil,
			expectedOutput: "",
		},
		{
			name:           "plain_error",
			err:            errors.New("unable to resolve commit range"),
			expectedOutput: "unable to resolve commit range\n",
		},
		{
			name: "wrapped_violation",
			err:  fmt.Errorf("audit failed: %w", audit.ViolationError{Paths: []string{"docs/a.md", "docs/b.md"}}),
			expectedOutput: "Please update the 'date_modified' field in the following file(s):\n" +
				" - docs/a.md\n" +
				" - docs/b.md\n",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subTest *testing.T) {
			var output bytes.Buffer
			ReportError(&output, testCase.err)
			require.Equal(subTest, testCase.expectedOutput, output.String())
		})
	}
}
