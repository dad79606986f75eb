package issues

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ghissues/internal/execshell"
	"github.com/temirov/ghissues/internal/githubcli"
	"github.com/temirov/ghissues/internal/gitrepo"
	"github.com/temirov/ghissues/internal/ui"
	"github.com/temirov/ghissues/internal/utils"
	"github.com/temirov/ghissues/internal/utils/flags"
)

const (
	commandUseConstant                    = "ghissues [csv-path]"
	commandShortDescriptionConstant       = "Create GitHub issues from the rows of a CSV file"
	commandLongDescriptionConstant        = "ghissues reads a CSV file with Title, Body, Labels, and Milestone columns and runs gh issue create once per row, in file order, stopping at the first failure."
	commandExecutionErrorTemplateConstant = "issue submission failed: %w"
	logFieldRunIdentifierConstant         = "run_id"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the issue submission configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the Cobra command that submits issues.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	Executor                     githubcli.GitHubCommandExecutor
	RepositoryResolver           RepositoryResolver
	WorkingDirectory             string
}

// Build constructs the submission command. It accepts at most one positional CSV path.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	flags.BindExecutionFlags(command, flags.ExecutionDefaults{}, flags.DefaultExecutionFlagDefinitions())

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	options, optionsError := builder.parseOptions(command, arguments, configuration)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	if runIdentifier, runIdentifierAvailable := utils.NewCommandContextAccessor().RunIdentifier(command.Context()); runIdentifierAvailable {
		logger = logger.With(zap.String(logFieldRunIdentifierConstant, runIdentifier))
	}

	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	client, clientError := githubcli.NewClient(executor)
	if clientError != nil {
		return clientError
	}

	resolver := builder.resolveRepositoryResolver(options.RepositorySource, configuration.RemoteName, client)

	submitter, submitterError := NewSubmitter(logger, resolver, client, command.OutOrStdout())
	if submitterError != nil {
		return submitterError
	}

	if _, submissionError := submitter.Submit(command.Context(), options); submissionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, submissionError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string, configuration Configuration) (SubmissionOptions, error) {
	csvPath := configuration.CSVPath
	if len(arguments) > 0 {
		if trimmedArgument := strings.TrimSpace(arguments[0]); len(trimmedArgument) > 0 {
			csvPath = trimmedArgument
		}
	}

	dryRun, dryRunError := flags.ResolveBoolFlag(command, flags.DryRunFlagName, configuration.DryRun)
	if dryRunError != nil {
		return SubmissionOptions{}, dryRunError
	}

	repositorySource, sourceError := ParseRepositorySource(configuration.RepositorySource)
	if sourceError != nil {
		return SubmissionOptions{}, sourceError
	}

	return SubmissionOptions{CSVPath: csvPath, DryRun: dryRun, RepositorySource: repositorySource}, nil
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

// resolveExecutor renders command events through the console observer when human-readable
// logging is enabled and through structured executor logs otherwise.
func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (githubcli.GitHubCommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	executorLogger := logger
	var eventObserver execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		executorLogger = zap.NewNop()
		eventObserver = ui.NewConsoleCommandEventLogger(logger)
	}

	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(executorLogger, commandRunner, eventObserver)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveRepositoryResolver(source RepositorySource, remoteName string, client *githubcli.Client) RepositoryResolver {
	if builder.RepositoryResolver != nil {
		return builder.RepositoryResolver
	}
	if source == RepositorySourceGit {
		return gitrepo.NewLocalRemoteResolver(builder.WorkingDirectory, remoteName)
	}
	return client
}
