package travis

import (
	"errors"
	"fmt"
	"strings"
)

const (
	tokenMissingMessageConstant          = "travis api token must be provided"
	repositoryMissingMessageConstant     = "travis repository slug must be provided"
	branchMissingMessageConstant         = "travis build branch must be provided"
	httpClientMissingMessageConstant     = "travis http client not configured"
	triggerErrorTemplateConstant         = "travis build request for %s failed: %v"
	unexpectedStatusTemplateConstant     = "travis responded with status %d"
	unexpectedStatusBodyTemplateConstant = "travis responded with status %d: %s"
)

var (
	// ErrTokenMissing indicates an empty API token.
	ErrTokenMissing = errors.New(tokenMissingMessageConstant)
	// ErrRepositoryMissing indicates an empty repository slug.
	ErrRepositoryMissing = errors.New(repositoryMissingMessageConstant)
	// ErrBranchMissing indicates an empty branch name.
	ErrBranchMissing = errors.New(branchMissingMessageConstant)
	// ErrHTTPClientMissing indicates the service was built without an HTTP client.
	ErrHTTPClientMissing = errors.New(httpClientMissingMessageConstant)
)

// TriggerError reports a build request that did not succeed.
type TriggerError struct {
	Repository string
	Cause      error
}

// Error describes the failed request.
func (triggerError TriggerError) Error() string {
	return fmt.Sprintf(triggerErrorTemplateConstant, triggerError.Repository, triggerError.Cause)
}

// Unwrap exposes the underlying cause.
func (triggerError TriggerError) Unwrap() error {
	return triggerError.Cause
}

// UnexpectedStatusError reports a non-2xx API response.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
}

// Error describes the response status.
func (statusError UnexpectedStatusError) Error() string {
	trimmedBody := strings.TrimSpace(statusError.Body)
	if len(trimmedBody) == 0 {
		return fmt.Sprintf(unexpectedStatusTemplateConstant, statusError.StatusCode)
	}
	return fmt.Sprintf(unexpectedStatusBodyTemplateConstant, statusError.StatusCode, trimmedBody)
}
