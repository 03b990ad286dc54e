package gitrepo_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/kbcheck/internal/execshell"
	"github.com/temirov/kbcheck/internal/gitrepo"
)

const (
	testRepositoryPathConstant = "/workspace/kb"
	testStartCommitConstant    = "1111111111111111111111111111111111111111"
	testEndCommitConstant      = "2222222222222222222222222222222222222222"
)

type stubGitExecutor struct {
	outputs         map[string]execshell.ExecutionResult
	failures        map[string]error
	recordedDetails []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	key := strings.Join(details.Arguments, " ")
	if failure, found := executor.failures[key]; found {
		return execshell.ExecutionResult{}, failure
	}
	if result, found := executor.outputs[key]; found {
		return result, nil
	}
	return execshell.ExecutionResult{}, fmt.Errorf("unexpected git command: %s", key)
}

func TestNewRepositoryRequiresExecutor(testInstance *testing.T) {
	repository, creationError := gitrepo.NewRepository(nil, testRepositoryPathConstant)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrExecutorNotConfigured)
	require.Nil(testInstance, repository)

	repository, creationError = gitrepo.NewRepository(&stubGitExecutor{}, "  ")
	require.NoError(testInstance, creationError)
	require.Equal(testInstance, ".", repository.Path())
}

func TestRepositoryResolveCommit(testInstance *testing.T) {
	revisionFailure := execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 1}}

	testCases := []struct {
		name           string
		reference      string
		outputs        map[string]execshell.ExecutionResult
		failures       map[string]error
		expectedCommit string
		expectError    bool
	}{
		{
			name:      "resolves_abbreviated_hash",
			reference: "abc1234",
			outputs: map[string]execshell.ExecutionResult{
				"rev-parse --verify --quiet abc1234^{commit}": {StandardOutput: testEndCommitConstant + "\n"},
			},
			expectedCommit: testEndCommitConstant,
		},
		{
			name:      "unknown_reference",
			reference: "deadbeef",
			failures: map[string]error{
				"rev-parse --verify --quiet deadbeef^{commit}": revisionFailure,
			},
			expectError: true,
		},
		{
			name:        "empty_reference",
			reference:   "",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{outputs: testCase.outputs, failures: testCase.failures}
			repository, creationError := gitrepo.NewRepository(executor, testRepositoryPathConstant)
			require.NoError(testInstance, creationError)

			commit, resolveError := repository.ResolveCommit(context.Background(), testCase.reference)
			if testCase.expectError {
				var resolutionError gitrepo.ResolutionError
				require.True(testInstance, errors.As(resolveError, &resolutionError))
				return
			}
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedCommit, commit)
			require.Equal(testInstance, testRepositoryPathConstant, executor.recordedDetails[0].WorkingDirectory)
		})
	}
}

func TestRepositoryDiffCommits(testInstance *testing.T) {
	testCases := []struct {
		name            string
		options         gitrepo.DiffOptions
		expectedCommand string
	}{
		{
			name:            "renames_disabled",
			options:         gitrepo.DiffOptions{},
			expectedCommand: "diff --name-status --no-renames -z --no-color " + testStartCommitConstant + " " + testEndCommitConstant,
		},
		{
			name:            "renames_enabled",
			options:         gitrepo.DiffOptions{DetectRenames: true},
			expectedCommand: "diff --name-status --find-renames -z --no-color " + testStartCommitConstant + " " + testEndCommitConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{outputs: map[string]execshell.ExecutionResult{
				testCase.expectedCommand: {StandardOutput: "M\x00docs/a.md\x00"},
			}}
			repository, creationError := gitrepo.NewRepository(executor, testRepositoryPathConstant)
			require.NoError(testInstance, creationError)

			records, diffError := repository.DiffCommits(context.Background(), testStartCommitConstant, testEndCommitConstant, testCase.options)
			require.NoError(testInstance, diffError)
			require.Equal(testInstance, []gitrepo.ChangeRecord{{Kind: gitrepo.ChangeKindModified, OldPath: "docs/a.md", NewPath: "docs/a.md"}}, records)
		})
	}
}

func TestRepositoryReadFile(testInstance *testing.T) {
	missingPathFailure := execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 128}}
	executor := &stubGitExecutor{
		outputs: map[string]execshell.ExecutionResult{
			"show " + testEndCommitConstant + ":docs/a.md": {StandardOutput: "---\ntitle: A\n---\nbody\n"},
		},
		failures: map[string]error{
			"show " + testEndCommitConstant + ":docs/missing.md": missingPathFailure,
		},
	}
	repository, creationError := gitrepo.NewRepository(executor, testRepositoryPathConstant)
	require.NoError(testInstance, creationError)

	contents, readError := repository.ReadFile(context.Background(), testEndCommitConstant, "docs/a.md")
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "---\ntitle: A\n---\nbody\n", string(contents))

	_, missingError := repository.ReadFile(context.Background(), testEndCommitConstant, "docs/missing.md")
	var fileReadError gitrepo.FileReadError
	require.True(testInstance, errors.As(missingError, &fileReadError))
	require.Equal(testInstance, "docs/missing.md", fileReadError.Path)
	var commandFailure execshell.CommandFailedError
	require.True(testInstance, errors.As(missingError, &commandFailure))
	require.Equal(testInstance, 128, commandFailure.Result.ExitCode)
}
