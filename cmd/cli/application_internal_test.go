package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/require"

	"github.com/temirov/ghissues/internal/issues"
)

const (
	testInvocationLogEnvironmentName = "GHISSUES_TEST_INVOCATION_LOG"
	testRepositoryFailureEnvironment = "GHISSUES_TEST_REPO_VIEW_FAILS"
	testInvocationLogFileName        = "invocations.log"
	testFakeGitHubScript             = `#!/bin/sh
if [ "$1" = "repo" ]; then
  if [ -n "$` + testRepositoryFailureEnvironment + `" ]; then
    echo "no git remotes found" >&2
    exit 1
  fi
  echo "octocat/hello-world"
  exit 0
fi
echo "$*" >> "$` + testInvocationLogEnvironmentName + `"
case "$*" in
  *"--title Three"*)
    echo "could not add to milestone" >&2
    exit 4
    ;;
esac
echo "https://github.com/octocat/hello-world/issues/$(wc -l < "$` + testInvocationLogEnvironmentName + `" | tr -d ' ')"
`
	testTwoRowCSVContent  = "Title,Body,Labels,Milestone\nFix bug,Steps,\"bug, ui , \",\nAdd export,,feature, v2 \n"
	testFiveRowCSVContent = "Title,Body\nOne,b\nTwo,b\nThree,b\nFour,b\nFive,b\n"
	testQuietLogLevelFlag = "--log-level=error"
)

type applicationTestEnvironment struct {
	workingDirectory string
	invocationLog    string
}

func prepareApplicationEnvironment(testInstance *testing.T) applicationTestEnvironment {
	testInstance.Helper()
	if runtime.GOOS == "windows" {
		testInstance.Skip("fake gh executable requires a POSIX shell")
	}

	binaryDirectory := testInstance.TempDir()
	scriptPath := filepath.Join(binaryDirectory, "gh")
	require.NoError(testInstance, os.WriteFile(scriptPath, []byte(testFakeGitHubScript), 0o755))
	testInstance.Setenv("PATH", binaryDirectory+string(os.PathListSeparator)+os.Getenv("PATH"))

	workingDirectory := testInstance.TempDir()
	testInstance.Chdir(workingDirectory)
	testInstance.Setenv("HOME", testInstance.TempDir())
	testInstance.Setenv("XDG_CONFIG_HOME", testInstance.TempDir())

	invocationLog := filepath.Join(binaryDirectory, testInvocationLogFileName)
	testInstance.Setenv(testInvocationLogEnvironmentName, invocationLog)
	testInstance.Setenv(testRepositoryFailureEnvironment, "")

	return applicationTestEnvironment{workingDirectory: workingDirectory, invocationLog: invocationLog}
}

func (environment applicationTestEnvironment) writeFile(testInstance *testing.T, name string, content string) string {
	testInstance.Helper()
	filePath := filepath.Join(environment.workingDirectory, name)
	require.NoError(testInstance, os.WriteFile(filePath, []byte(content), 0o600))
	return filePath
}

func (environment applicationTestEnvironment) invocations(testInstance *testing.T) []string {
	testInstance.Helper()
	content, readError := os.ReadFile(environment.invocationLog)
	if os.IsNotExist(readError) {
		return nil
	}
	require.NoError(testInstance, readError)
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

func executeApplication(testInstance *testing.T, arguments ...string) (string, error) {
	testInstance.Helper()
	application := NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(&bytes.Buffer{})
	application.rootCommand.SetArgs(append([]string{testQuietLogLevelFlag}, arguments...))
	executionError := application.Execute()
	return outputBuffer.String(), executionError
}

func TestApplicationSubmitsEveryRow(testInstance *testing.T) {
	environment := prepareApplicationEnvironment(testInstance)
	csvPath := environment.writeFile(testInstance, "backlog.csv", testTwoRowCSVContent)

	output, executionError := executeApplication(testInstance, csvPath)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, 0, ResolveExitCode(executionError))

	require.Equal(testInstance, []string{
		"issue create --title Fix bug --body Steps --label bug --label ui",
		"issue create --title Add export --body  --label feature --milestone v2",
	}, environment.invocations(testInstance))

	expectedOutput := ">> gh issue create --title Fix bug --body Steps --label bug --label ui\n" +
		"https://github.com/octocat/hello-world/issues/1\n" +
		">> gh issue create --title Add export --body  --label feature --milestone v2\n" +
		"https://github.com/octocat/hello-world/issues/2\n"
	require.Equal(testInstance, expectedOutput, output)
}

func TestApplicationDefaultsToIssuesCSV(testInstance *testing.T) {
	environment := prepareApplicationEnvironment(testInstance)
	environment.writeFile(testInstance, "issues.csv", testTwoRowCSVContent)

	_, executionError := executeApplication(testInstance)
	require.NoError(testInstance, executionError)
	require.Len(testInstance, environment.invocations(testInstance), 2)
}

func TestApplicationHaltsAndPropagatesExitCode(testInstance *testing.T) {
	environment := prepareApplicationEnvironment(testInstance)
	csvPath := environment.writeFile(testInstance, "issues.csv", testFiveRowCSVContent)

	output, executionError := executeApplication(testInstance, csvPath)

	var submissionError issues.RowSubmissionError
	require.ErrorAs(testInstance, executionError, &submissionError)
	require.Equal(testInstance, 3, submissionError.RowNumber)
	require.Equal(testInstance, 4, ResolveExitCode(executionError))
	require.Contains(testInstance, executionError.Error(), "could not add to milestone")

	require.Len(testInstance, environment.invocations(testInstance), 3)
	require.NotContains(testInstance, output, "Four")
	require.NotContains(testInstance, output, "Five")
}

func TestApplicationResolutionFailureStopsBeforeRows(testInstance *testing.T) {
	environment := prepareApplicationEnvironment(testInstance)
	csvPath := environment.writeFile(testInstance, "issues.csv", testTwoRowCSVContent)
	testInstance.Setenv(testRepositoryFailureEnvironment, "1")

	output, executionError := executeApplication(testInstance, csvPath)

	var resolutionError issues.StartupResolutionError
	require.ErrorAs(testInstance, executionError, &resolutionError)
	require.Equal(testInstance, 1, ResolveExitCode(executionError))
	require.Empty(testInstance, environment.invocations(testInstance))
	require.Empty(testInstance, output)
}

func TestApplicationMissingFileFails(testInstance *testing.T) {
	environment := prepareApplicationEnvironment(testInstance)

	_, executionError := executeApplication(testInstance, "absent.csv")

	var accessError issues.FileAccessError
	require.ErrorAs(testInstance, executionError, &accessError)
	require.Equal(testInstance, "absent.csv", accessError.Path)
	require.Equal(testInstance, 1, ResolveExitCode(executionError))
	require.Empty(testInstance, environment.invocations(testInstance))
}

func TestApplicationDryRunSources(testInstance *testing.T) {
	testCases := []struct {
		name  string
		setup func(*testing.T, applicationTestEnvironment) []string
	}{
		{
			name: "flag",
			setup: func(testInstance *testing.T, environment applicationTestEnvironment) []string {
				return []string{"--dry-run"}
			},
		},
		{
			name: "environment",
			setup: func(testInstance *testing.T, environment applicationTestEnvironment) []string {
				testInstance.Setenv("GHISSUES_TOOLS_ISSUES_DRY_RUN", "true")
				return nil
			},
		},
		{
			name: "configuration_file",
			setup: func(testInstance *testing.T, environment applicationTestEnvironment) []string {
				configurationPath := environment.writeFile(testInstance, "custom.yaml", "tools:\n  issues:\n    dry_run: true\n")
				return []string{"--config", configurationPath}
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			environment := prepareApplicationEnvironment(testInstance)
			environment.writeFile(testInstance, "issues.csv", testFiveRowCSVContent)

			output, executionError := executeApplication(testInstance, testCase.setup(testInstance, environment)...)
			require.NoError(testInstance, executionError)
			require.Empty(testInstance, environment.invocations(testInstance))
			require.Equal(testInstance, 5, strings.Count(output, ">> gh issue create"))
		})
	}
}

func TestApplicationResolvesRepositoryFromLocalRemote(testInstance *testing.T) {
	environment := prepareApplicationEnvironment(testInstance)
	testInstance.Setenv(testRepositoryFailureEnvironment, "1")

	repository, initError := git.PlainInit(environment.workingDirectory, false)
	require.NoError(testInstance, initError)
	_, remoteError := repository.CreateRemote(&config.RemoteConfig{Name: "upstream", URLs: []string{"git@github.com:octocat/hello-world.git"}})
	require.NoError(testInstance, remoteError)

	environment.writeFile(testInstance, "config.yaml", "tools:\n  issues:\n    repository_source: git\n    remote_name: upstream\n")
	environment.writeFile(testInstance, "issues.csv", testTwoRowCSVContent)

	_, executionError := executeApplication(testInstance)
	require.NoError(testInstance, executionError)
	require.Len(testInstance, environment.invocations(testInstance), 2)
}

func TestApplicationRejectsInvalidLogLevel(testInstance *testing.T) {
	environment := prepareApplicationEnvironment(testInstance)
	environment.writeFile(testInstance, "issues.csv", testTwoRowCSVContent)

	application := NewApplication()
	application.rootCommand.SetOut(&bytes.Buffer{})
	application.rootCommand.SetArgs([]string{"--log-level", "verbose"})

	executionError := application.Execute()
	require.ErrorContains(testInstance, executionError, "unsupported log level")
	require.Empty(testInstance, environment.invocations(testInstance))
}

func TestApplicationReadsUserConfigurationDirectory(testInstance *testing.T) {
	environment := prepareApplicationEnvironment(testInstance)
	environment.writeFile(testInstance, "issues.csv", testTwoRowCSVContent)

	userConfigurationDirectory, userConfigurationError := os.UserConfigDir()
	require.NoError(testInstance, userConfigurationError)
	applicationConfigurationDirectory := filepath.Join(userConfigurationDirectory, applicationNameConstant)
	require.NoError(testInstance, os.MkdirAll(applicationConfigurationDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(applicationConfigurationDirectory, "config.yaml"), []byte("tools:\n  issues:\n    dry_run: true\n"), 0o600))

	output, executionError := executeApplication(testInstance)
	require.NoError(testInstance, executionError)
	require.Empty(testInstance, environment.invocations(testInstance))
	require.Equal(testInstance, 2, strings.Count(output, ">> gh issue create"))
}

func TestInitializeConfigurationAttachesRunIdentifier(testInstance *testing.T) {
	prepareApplicationEnvironment(testInstance)

	application := NewApplication()
	initializationError := application.initializeConfiguration(application.rootCommand)
	require.NoError(testInstance, initializationError)

	runIdentifier, runIdentifierAvailable := application.commandContextAccessor.RunIdentifier(application.rootCommand.Context())
	require.True(testInstance, runIdentifierAvailable)
	require.Len(testInstance, runIdentifier, 36)

	require.Equal(testInstance, "issues.csv", application.configuration.Tools.Issues.CSVPath)
	require.Equal(testInstance, "gh", application.configuration.Tools.Issues.RepositorySource)
	require.False(testInstance, application.humanReadableLoggingEnabled())
}
