package testsupport

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/tools/txtar"

	"github.com/temirov/kbcheck/internal/execshell"
)

const (
	deleteDirectivePrefixConstant = "delete "
	defaultCommitMessageConstant  = "fixture commit"
	commitRangeTemplateConstant   = "%s...%s"
	fixtureIdentityNameConstant   = "Fixture Author"
	fixtureIdentityEmailConstant  = "fixture@example.com"
	fixtureCommitDateConstant     = "2019-03-01T00:00:00Z"
)

// GitRepository is a throwaway repository whose commits were built from txtar archives.
type GitRepository struct {
	Path     string
	Commits  []string
	executor *execshell.ShellExecutor
}

// NewGitRepository initializes a repository in a temporary directory and
// commits each archive in order. The test is skipped when git is unavailable.
func NewGitRepository(testInstance testing.TB, archives ...string) *GitRepository {
	testInstance.Helper()

	if _, lookupError := exec.LookPath(string(execshell.CommandGit)); lookupError != nil {
		testInstance.Skipf("git executable not available: %v", lookupError)
	}

	executor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	if executorError != nil {
		testInstance.Fatalf("unable to create shell executor: %v", executorError)
	}

	repository := &GitRepository{Path: testInstance.TempDir(), executor: executor}
	repository.git(testInstance, "init", "--quiet")
	for _, archive := range archives {
		repository.Commit(testInstance, archive)
	}
	return repository
}

// Executor returns the shell executor bound to the fixture's git identity.
func (repository *GitRepository) Executor() *execshell.ShellExecutor {
	return repository.executor
}

// Commit applies archive to the working tree and records a commit.
func (repository *GitRepository) Commit(testInstance testing.TB, archive string) string {
	testInstance.Helper()

	parsed := txtar.Parse([]byte(archive))
	message, deletions := parseDirectives(string(parsed.Comment))

	for _, deletedPath := range deletions {
		repository.git(testInstance, "rm", "--quiet", "--", deletedPath)
	}
	for _, file := range parsed.Files {
		absolutePath := filepath.Join(repository.Path, filepath.FromSlash(file.Name))
		if mkdirError := os.MkdirAll(filepath.Dir(absolutePath), 0o755); mkdirError != nil {
			testInstance.Fatalf("unable to create %s: %v", filepath.Dir(absolutePath), mkdirError)
		}
		if writeError := os.WriteFile(absolutePath, file.Data, 0o644); writeError != nil {
			testInstance.Fatalf("unable to write %s: %v", absolutePath, writeError)
		}
	}

	repository.git(testInstance, "add", "--all")
	repository.git(testInstance, "-c", "commit.gpgsign=false", "commit", "--quiet", "--allow-empty", "-m", message)
	commit := strings.TrimSpace(repository.git(testInstance, "rev-parse", "HEAD"))
	repository.Commits = append(repository.Commits, commit)
	return commit
}

// Range renders the `<start>...<end>` expression for two commit indexes.
func (repository *GitRepository) Range(startIndex int, endIndex int) string {
	return fmt.Sprintf(commitRangeTemplateConstant, repository.Commits[startIndex], repository.Commits[endIndex])
}

func (repository *GitRepository) git(testInstance testing.TB, arguments ...string) string {
	testInstance.Helper()
	result, executionError := repository.executor.ExecuteGit(context.Background(), execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repository.Path,
		EnvironmentVariables: map[string]string{
			"GIT_AUTHOR_NAME":     fixtureIdentityNameConstant,
			"GIT_AUTHOR_EMAIL":    fixtureIdentityEmailConstant,
			"GIT_AUTHOR_DATE":     fixtureCommitDateConstant,
			"GIT_COMMITTER_NAME":  fixtureIdentityNameConstant,
			"GIT_COMMITTER_EMAIL": fixtureIdentityEmailConstant,
			"GIT_COMMITTER_DATE":  fixtureCommitDateConstant,
			"GIT_CONFIG_NOSYSTEM": "1",
			"GIT_CONFIG_GLOBAL":   os.DevNull,
		},
	})
	if executionError != nil {
		testInstance.Fatalf("git %s failed: %v", strings.Join(arguments, " "), executionError)
	}
	return result.StandardOutput
}

func parseDirectives(comment string) (string, []string) {
	messageLines := make([]string, 0)
	deletions := make([]string, 0)
	scanner := bufio.NewScanner(strings.NewReader(comment))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if strings.HasPrefix(line, deleteDirectivePrefixConstant) {
			deletions = append(deletions, strings.TrimSpace(strings.TrimPrefix(line, deleteDirectivePrefixConstant)))
			continue
		}
		messageLines = append(messageLines, line)
	}
	if len(messageLines) == 0 {
		return defaultCommitMessageConstant, deletions
	}
	return strings.Join(messageLines, "\n"), deletions
}
