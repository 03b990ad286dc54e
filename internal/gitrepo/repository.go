package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/kbcheck/internal/execshell"
)

const (
	gitRevParseSubcommandConstant        = "rev-parse"
	gitVerifyFlagConstant                = "--verify"
	gitQuietFlagConstant                 = "--quiet"
	gitCommitPeelSuffixConstant          = "^{commit}"
	gitDiffSubcommandConstant            = "diff"
	gitNameStatusFlagConstant            = "--name-status"
	gitNoRenamesFlagConstant             = "--no-renames"
	gitFindRenamesFlagConstant           = "--find-renames"
	gitNullTerminatedFlagConstant        = "-z"
	gitNoColorFlagConstant               = "--no-color"
	gitShowSubcommandConstant            = "show"
	gitBlobReferenceTemplateConstant     = "%s:%s"
	executorNotConfiguredMessageConstant = "git executor not configured"
	emptyReferenceMessageConstant        = "revision expression is empty"
	resolutionErrorTemplateConstant      = "unable to resolve commit %q: %v"
	diffErrorTemplateConstant            = "unable to diff %s..%s: %w"
	fileReadErrorTemplateConstant        = "unable to read %s at %s: %v"
	unexpectedRevisionTemplateConstant   = "unexpected rev-parse output %q"
	defaultRepositoryPathConstant        = "."
)

// GitExecutor is the subset of execshell.ShellExecutor the repository needs.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ErrExecutorNotConfigured indicates the repository was built without a git executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ResolutionError reports a revision expression that does not name a commit.
type ResolutionError struct {
	Reference string
	Cause     error
}

// Error describes the unresolved reference.
func (resolutionError ResolutionError) Error() string {
	return fmt.Sprintf(resolutionErrorTemplateConstant, resolutionError.Reference, resolutionError.Cause)
}

// Unwrap exposes the underlying cause.
func (resolutionError ResolutionError) Unwrap() error {
	return resolutionError.Cause
}

// FileReadError reports a path that could not be read from a commit.
type FileReadError struct {
	Commit string
	Path   string
	Cause  error
}

// Error describes the failed read.
func (readError FileReadError) Error() string {
	return fmt.Sprintf(fileReadErrorTemplateConstant, readError.Path, readError.Commit, readError.Cause)
}

// Unwrap exposes the underlying cause.
func (readError FileReadError) Unwrap() error {
	return readError.Cause
}

// DiffOptions tunes how changes between two commits are listed.
type DiffOptions struct {
	DetectRenames bool
}

// Repository reads commits, diffs and blobs from a git working copy.
type Repository struct {
	executor       GitExecutor
	repositoryPath string
}

// NewRepository constructs a Repository rooted at repositoryPath.
func NewRepository(executor GitExecutor, repositoryPath string) (*Repository, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		trimmedPath = defaultRepositoryPathConstant
	}
	return &Repository{executor: executor, repositoryPath: trimmedPath}, nil
}

// Path returns the working directory git commands run in.
func (repository *Repository) Path() string {
	return repository.repositoryPath
}

// ResolveCommit resolves a hash or revision expression to a full commit identifier.
func (repository *Repository) ResolveCommit(executionContext context.Context, reference string) (string, error) {
	trimmedReference := strings.TrimSpace(reference)
	if len(trimmedReference) == 0 {
		return "", ResolutionError{Reference: reference, Cause: errors.New(emptyReferenceMessageConstant)}
	}

	result, executionError := repository.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitVerifyFlagConstant, gitQuietFlagConstant, trimmedReference + gitCommitPeelSuffixConstant},
		WorkingDirectory: repository.repositoryPath,
	})
	if executionError != nil {
		return "", ResolutionError{Reference: trimmedReference, Cause: executionError}
	}

	commitIdentifier := strings.TrimSpace(result.StandardOutput)
	if len(commitIdentifier) == 0 || strings.ContainsAny(commitIdentifier, " \n\t") {
		return "", ResolutionError{Reference: trimmedReference, Cause: fmt.Errorf(unexpectedRevisionTemplateConstant, result.StandardOutput)}
	}
	return commitIdentifier, nil
}

// DiffCommits lists the paths changed between startCommit and endCommit in git's output order.
func (repository *Repository) DiffCommits(executionContext context.Context, startCommit string, endCommit string, options DiffOptions) ([]ChangeRecord, error) {
	renameFlag := gitNoRenamesFlagConstant
	if options.DetectRenames {
		renameFlag = gitFindRenamesFlagConstant
	}

	result, executionError := repository.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDiffSubcommandConstant, gitNameStatusFlagConstant, renameFlag, gitNullTerminatedFlagConstant, gitNoColorFlagConstant, startCommit, endCommit},
		WorkingDirectory: repository.repositoryPath,
	})
	if executionError != nil {
		return nil, fmt.Errorf(diffErrorTemplateConstant, startCommit, endCommit, executionError)
	}

	records, parseError := ParseNameStatus(result.StandardOutput)
	if parseError != nil {
		return nil, fmt.Errorf(diffErrorTemplateConstant, startCommit, endCommit, parseError)
	}
	return records, nil
}

// ReadFile returns the contents of path as recorded in commit.
func (repository *Repository) ReadFile(executionContext context.Context, commit string, path string) ([]byte, error) {
	result, executionError := repository.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitShowSubcommandConstant, fmt.Sprintf(gitBlobReferenceTemplateConstant, commit, path)},
		WorkingDirectory: repository.repositoryPath,
	})
	if executionError != nil {
		return nil, FileReadError{Commit: commit, Path: path, Cause: executionError}
	}
	return []byte(result.StandardOutput), nil
}
