package githubcli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/ghissues/internal/execshell"
	"github.com/temirov/ghissues/internal/gitrepo"
)

const (
	githubExecutableNameConstant            = "gh"
	repoSubcommandConstant                  = "repo"
	viewSubcommandConstant                  = "view"
	issueSubcommandConstant                 = "issue"
	createSubcommandConstant                = "create"
	jsonFlagConstant                        = "--json"
	queryFlagConstant                       = "-q"
	titleFlagConstant                       = "--title"
	bodyFlagConstant                        = "--body"
	labelFlagConstant                       = "--label"
	milestoneFlagConstant                   = "--milestone"
	nameWithOwnerFieldConstant              = "nameWithOwner"
	nameWithOwnerQueryConstant              = ".nameWithOwner"
	commandLineSeparatorConstant            = " "
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	resolveRepositoryOperationNameConstant  = OperationName("ResolveCurrentRepository")
	createIssueOperationNameConstant        = OperationName("CreateIssue")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// IssueRequest describes a single issue to create in the current repository.
type IssueRequest struct {
	Title     string
	Body      string
	Labels    []string
	Milestone string
}

// CreatedIssue reports what gh printed after creating an issue.
type CreatedIssue struct {
	URL string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates gh produced output the client could not interpret.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying parse error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ResolveRepository identifies the repository gh targets from the working directory
// using gh repo view --json nameWithOwner -q .nameWithOwner.
func (client *Client) ResolveRepository(executionContext context.Context) (gitrepo.RepositoryIdentifier, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			jsonFlagConstant,
			nameWithOwnerFieldConstant,
			queryFlagConstant,
			nameWithOwnerQueryConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return gitrepo.RepositoryIdentifier{}, OperationError{Operation: resolveRepositoryOperationNameConstant, Cause: executionError}
	}

	identifier, parseError := gitrepo.ParseRepositoryIdentifier(executionResult.StandardOutput)
	if parseError != nil {
		return gitrepo.RepositoryIdentifier{}, ResponseDecodingError{Operation: resolveRepositoryOperationNameConstant, Cause: parseError}
	}

	return identifier, nil
}

// CreateIssue creates one issue in the repository gh targets by default.
// The title is passed through unchanged; gh decides whether it is acceptable.
func (client *Client) CreateIssue(executionContext context.Context, request IssueRequest) (CreatedIssue, error) {
	commandDetails := execshell.CommandDetails{Arguments: IssueCreationArguments(request)}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return CreatedIssue{}, OperationError{Operation: createIssueOperationNameConstant, Cause: executionError}
	}

	return CreatedIssue{URL: strings.TrimSpace(executionResult.StandardOutput)}, nil
}

// IssueCreationArguments builds the gh arguments for request, excluding the executable name.
// Labels are emitted in order, one --label per entry; --milestone is omitted when empty.
func IssueCreationArguments(request IssueRequest) []string {
	arguments := []string{
		issueSubcommandConstant,
		createSubcommandConstant,
		titleFlagConstant,
		request.Title,
		bodyFlagConstant,
		request.Body,
	}
	for _, label := range request.Labels {
		arguments = append(arguments, labelFlagConstant, label)
	}
	if len(request.Milestone) > 0 {
		arguments = append(arguments, milestoneFlagConstant, request.Milestone)
	}
	return arguments
}

// FormatCommandLine renders a gh invocation as a space-joined line for display.
// Arguments are not quoted.
func FormatCommandLine(arguments []string) string {
	commandParts := append([]string{githubExecutableNameConstant}, arguments...)
	return strings.Join(commandParts, commandLineSeparatorConstant)
}
