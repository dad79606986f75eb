package execshell_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghissues/internal/execshell"
)

const (
	testShellExecutableConstant  = "sh"
	testShellCommandFlagConstant = "-c"
)

func TestOSCommandRunnerReportsExitCodeAndOutput(testInstance *testing.T) {
	if runtime.GOOS == "windows" {
		testInstance.Skip("requires a POSIX shell")
	}

	testCases := []struct {
		name             string
		script           string
		environment      map[string]string
		standardInput    []byte
		expectedOutput   string
		expectedError    string
		expectedExitCode int
	}{
		{
			name:           "success",
			script:         "printf 'hello'",
			expectedOutput: "hello",
		},
		{
			name:             "non_zero_exit",
			script:           "printf 'boom' 1>&2; exit 3",
			expectedError:    "boom",
			expectedExitCode: 3,
		},
		{
			name:           "environment_override",
			script:         "printf '%s' \"$GHISSUES_TEST_VALUE\"",
			environment:    map[string]string{"GHISSUES_TEST_VALUE": "configured"},
			expectedOutput: "configured",
		},
		{
			name:           "standard_input",
			script:         "cat",
			standardInput:  []byte("piped"),
			expectedOutput: "piped",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			runner := execshell.NewOSCommandRunner()
			result, runError := runner.Run(context.Background(), execshell.ShellCommand{
				Name: execshell.CommandName(testShellExecutableConstant),
				Details: execshell.CommandDetails{
					Arguments:            []string{testShellCommandFlagConstant, testCase.script},
					EnvironmentVariables: testCase.environment,
					StandardInput:        testCase.standardInput,
				},
			})
			require.NoError(testInstance, runError)
			require.Equal(testInstance, testCase.expectedExitCode, result.ExitCode)
			require.Equal(testInstance, testCase.expectedOutput, result.StandardOutput)
			require.Equal(testInstance, testCase.expectedError, result.StandardError)
		})
	}
}

func TestOSCommandRunnerReportsMissingExecutable(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()
	_, runError := runner.Run(context.Background(), execshell.ShellCommand{Name: execshell.CommandName("ghissues-missing-executable")})
	require.Error(testInstance, runError)
}
