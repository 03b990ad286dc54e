package pathutils_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/kbcheck/internal/utils/path"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name         string
		provider     pathutils.HomeDirectoryProvider
		candidate    string
		expectedPath string
	}{
		{name: "bare_tilde", provider: staticHome("/home/writer"), candidate: "~", expectedPath: "/home/writer"},
		{name: "tilde_prefix", provider: staticHome("/home/writer"), candidate: "~/kb/articles", expectedPath: filepath.Join("/home/writer", "kb/articles")},
		{name: "other_user_unchanged", provider: staticHome("/home/writer"), candidate: "~editor/kb", expectedPath: "~editor/kb"},
		{name: "absolute_unchanged", provider: staticHome("/home/writer"), candidate: "/srv/kb", expectedPath: "/srv/kb"},
		{name: "relative_unchanged", provider: staticHome("/home/writer"), candidate: ".", expectedPath: "."},
		{
			name:         "lookup_failure_unchanged",
			provider:     func() (string, error) { return "", errors.New("no home") },
			candidate:    "~/kb",
			expectedPath: "~/kb",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subTest *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(testCase.provider)
			require.Equal(subTest, testCase.expectedPath, expander.Expand(testCase.candidate))
		})
	}
}

func TestHomeExpanderNilReceiver(testInstance *testing.T) {
	var expander *pathutils.HomeExpander
	require.Equal(testInstance, "~/kb", expander.Expand("~/kb"))
}

func staticHome(directory string) pathutils.HomeDirectoryProvider {
	return func() (string, error) {
		return directory, nil
	}
}
