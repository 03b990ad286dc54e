package audit_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/temirov/kbcheck/internal/audit"
)

func TestViolationErrorMessage(testInstance *testing.T) {
	violationError := audit.ViolationError{Field: "date_modified", Paths: []string{"a.md", "docs/b.md"}}
	require.Equal(
		testInstance,
		"Please update the 'date_modified' field in the following file(s):\n - a.md\n - docs/b.md",
		violationError.Error(),
	)

	defaultFieldError := audit.ViolationError{Paths: []string{"a.md"}}
	require.Equal(testInstance, "Please update the 'date_modified' field in the following file(s):\n - a.md", defaultFieldError.Error())
}

func TestViolationErrorWriteReport(testInstance *testing.T) {
	previousNoColor := color.NoColor
	color.NoColor = true
	testInstance.Cleanup(func() { color.NoColor = previousNoColor })

	violationError := audit.ViolationError{Field: "updated_at", Paths: []string{"a.md"}}
	var buffer bytes.Buffer
	require.NoError(testInstance, violationError.WriteReport(&buffer))
	require.Equal(testInstance, violationError.Error()+"\n", buffer.String())
}
