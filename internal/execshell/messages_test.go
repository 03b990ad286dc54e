package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesGitCommands(t *testing.T) {
	testCases := []struct {
		name     string
		command  ShellCommand
		build    func(formatter CommandMessageFormatter, command ShellCommand) string
		expected string
	}{
		{
			name: "rev_parse_start",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments:        []string{"rev-parse", "--verify", "--quiet", "abc123^{commit}"},
				WorkingDirectory: "/workspace/kb",
			}},
			build: func(formatter CommandMessageFormatter, command ShellCommand) string {
				return formatter.BuildStartedMessage(command)
			},
			expected: "Resolving abc123 in /workspace/kb",
		},
		{
			name: "rev_parse_failure",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments: []string{"rev-parse", "--verify", "--quiet", "missing^{commit}"},
			}},
			build: func(formatter CommandMessageFormatter, command ShellCommand) string {
				return formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1})
			},
			expected: "Failed to resolve missing in current directory (exit code 1)",
		},
		{
			name: "diff_start",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments:        []string{"diff", "--name-status", "--no-renames", "-z", "aaa", "bbb"},
				WorkingDirectory: "/workspace/kb",
			}},
			build: func(formatter CommandMessageFormatter, command ShellCommand) string {
				return formatter.BuildStartedMessage(command)
			},
			expected: "Comparing aaa with bbb in /workspace/kb",
		},
		{
			name: "show_execution_failure",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments:        []string{"show", "bbb:docs/article.md"},
				WorkingDirectory: "/workspace/kb",
			}},
			build: func(formatter CommandMessageFormatter, command ShellCommand) string {
				return formatter.BuildExecutionFailureMessage(command, errors.New("signal: killed"))
			},
			expected: "Unable to read docs/article.md at bbb in /workspace/kb: signal: killed",
		},
		{
			name: "rev_parse_success",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments:        []string{"rev-parse", "--verify", "--quiet", "HEAD~1^{commit}"},
				WorkingDirectory: "/workspace/kb",
			}},
			build: func(formatter CommandMessageFormatter, command ShellCommand) string {
				return formatter.BuildSuccessMessage(command, ExecutionResult{StandardOutput: "2222222\n"})
			},
			expected: "HEAD~1 in /workspace/kb resolved to 2222222",
		},
		{
			name: "generic_success",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments: []string{"status", "--porcelain"},
			}},
			build: func(formatter CommandMessageFormatter, command ShellCommand) string {
				return formatter.BuildSuccessMessage(command, ExecutionResult{})
			},
			expected: "Completed git status --porcelain",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, testCase.build(CommandMessageFormatter{}, testCase.command))
		})
	}
}
