package cli

import (
	"errors"
	"fmt"
	"io"
)

const errorOutputTemplateConstant = "%v\n"

type reportWriter interface {
	WriteReport(writer io.Writer) error
}

// ReportError prints executionError for the process entry point. Errors that
// render their own report, such as audit violations, are written through it.
func ReportError(writer io.Writer, executionError error) {
	if executionError == nil {
		return
	}
	var reporter reportWriter
	if errors.As(executionError, &reporter) {
		if reportError := reporter.WriteReport(writer); reportError == nil {
			return
		}
	}
	fmt.Fprintf(writer, errorOutputTemplateConstant, executionError)
}
