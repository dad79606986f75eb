package issues

import (
	"errors"
	"fmt"

	"github.com/temirov/ghissues/internal/execshell"
)

const (
	startupResolutionErrorTemplateConstant     = "unable to resolve repository using %s: %v"
	fileAccessErrorTemplateConstant            = "%s: %s"
	fileAccessErrorWithLineTemplateConstant    = "%s:%d: %s"
	fileAccessErrorCauseSuffixTemplateConstant = "%s: %v"
	rowSubmissionErrorTemplateConstant         = "row %d (%q) was not submitted: %v"
	defaultFailureExitCodeConstant             = 1
)

// StartupResolutionError reports that the target repository could not be determined before any row was read.
type StartupResolutionError struct {
	Source RepositorySource
	Cause  error
}

// Error describes the resolution failure.
func (resolutionError StartupResolutionError) Error() string {
	return fmt.Sprintf(startupResolutionErrorTemplateConstant, resolutionError.Source, resolutionError.Cause)
}

// Unwrap exposes the resolver error.
func (resolutionError StartupResolutionError) Unwrap() error {
	return resolutionError.Cause
}

// FileAccessError reports that the CSV file could not be opened or parsed.
// Line is zero when the failure is not tied to a specific line.
type FileAccessError struct {
	Path    string
	Line    int
	Message string
	Cause   error
}

// Error describes the file failure with its location.
func (accessError FileAccessError) Error() string {
	message := accessError.Message
	if accessError.Cause != nil {
		message = fmt.Sprintf(fileAccessErrorCauseSuffixTemplateConstant, message, accessError.Cause)
	}
	if accessError.Line > 0 {
		return fmt.Sprintf(fileAccessErrorWithLineTemplateConstant, accessError.Path, accessError.Line, message)
	}
	return fmt.Sprintf(fileAccessErrorTemplateConstant, accessError.Path, message)
}

// Unwrap exposes the underlying I/O or parse error.
func (accessError FileAccessError) Unwrap() error {
	return accessError.Cause
}

// RowSubmissionError reports a row whose issue could not be created.
type RowSubmissionError struct {
	RowNumber int
	Title     string
	Cause     error
}

// Error describes the failed row.
func (submissionError RowSubmissionError) Error() string {
	return fmt.Sprintf(rowSubmissionErrorTemplateConstant, submissionError.RowNumber, submissionError.Title, submissionError.Cause)
}

// Unwrap exposes the command failure.
func (submissionError RowSubmissionError) Unwrap() error {
	return submissionError.Cause
}

// ExitCode returns the exit status gh reported for the row, or 1 when no usable status is available.
func (submissionError RowSubmissionError) ExitCode() int {
	var commandFailure execshell.CommandFailedError
	if errors.As(submissionError.Cause, &commandFailure) && commandFailure.ExitCode() > 0 {
		return commandFailure.ExitCode()
	}
	return defaultFailureExitCodeConstant
}
