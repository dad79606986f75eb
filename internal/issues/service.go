package issues

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ghissues/internal/githubcli"
	"github.com/temirov/ghissues/internal/gitrepo"
)

const (
	commandLinePrefixConstant            = ">> "
	outputLineTemplateConstant           = "%s\n"
	openFileMessageConstant              = "unable to open file"
	loggerNotConfiguredMessageConstant   = "issue submitter logger not configured"
	resolverNotConfiguredMessageConstant = "issue submitter repository resolver not configured"
	creatorNotConfiguredMessageConstant  = "issue submitter issue creator not configured"
	repositoryResolvedMessageConstant    = "repository resolved"
	rowSkippedMessageConstant            = "dry run: issue not created"
	issueCreatedMessageConstant          = "issue created"
	issuesSubmittedMessageConstant       = "issues submitted"
	logFieldRepositoryConstant           = "repository"
	logFieldRepositorySourceConstant     = "repository_source"
	logFieldCSVPathConstant              = "csv_path"
	logFieldRowNumberConstant            = "row"
	logFieldLineConstant                 = "line"
	logFieldTitleConstant                = "title"
	logFieldIssueURLConstant             = "issue_url"
	logFieldRowCountConstant             = "row_count"
	logFieldDryRunConstant               = "dry_run"
	outputWriteErrorTemplateConstant     = "unable to write output: %w"
)

var (
	// ErrLoggerNotConfigured indicates the submitter was created without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrResolverNotConfigured indicates the submitter was created without a repository resolver.
	ErrResolverNotConfigured = errors.New(resolverNotConfiguredMessageConstant)
	// ErrCreatorNotConfigured indicates the submitter was created without an issue creator.
	ErrCreatorNotConfigured = errors.New(creatorNotConfiguredMessageConstant)
)

// RepositoryResolver determines the repository issues are created in.
type RepositoryResolver interface {
	ResolveRepository(executionContext context.Context) (gitrepo.RepositoryIdentifier, error)
}

// IssueCreator creates a single issue and reports what the tracker returned.
type IssueCreator interface {
	CreateIssue(executionContext context.Context, request githubcli.IssueRequest) (githubcli.CreatedIssue, error)
}

// SubmissionOptions controls a single run over one CSV file.
type SubmissionOptions struct {
	CSVPath          string
	DryRun           bool
	RepositorySource RepositorySource
}

// SubmissionSummary describes a completed run.
type SubmissionSummary struct {
	Repository    gitrepo.RepositoryIdentifier
	ProcessedRows int
	CreatedIssues []githubcli.CreatedIssue
}

// Submitter resolves the target repository once and then creates one issue per CSV row.
type Submitter struct {
	logger   *zap.Logger
	resolver RepositoryResolver
	creator  IssueCreator
	output   io.Writer
}

// NewSubmitter constructs a Submitter that prints command lines and created issue URLs to output.
func NewSubmitter(logger *zap.Logger, resolver RepositoryResolver, creator IssueCreator, output io.Writer) (*Submitter, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if resolver == nil {
		return nil, ErrResolverNotConfigured
	}
	if creator == nil {
		return nil, ErrCreatorNotConfigured
	}
	if output == nil {
		output = io.Discard
	}
	return &Submitter{logger: logger, resolver: resolver, creator: creator, output: output}, nil
}

// Submit processes every row of the CSV file in order, halting at the first row that fails.
// Each command line is printed before it runs; in dry-run mode nothing is executed.
func (submitter *Submitter) Submit(executionContext context.Context, options SubmissionOptions) (SubmissionSummary, error) {
	summary := SubmissionSummary{CreatedIssues: make([]githubcli.CreatedIssue, 0)}

	repository, resolutionError := submitter.resolver.ResolveRepository(executionContext)
	if resolutionError != nil {
		return summary, StartupResolutionError{Source: options.RepositorySource, Cause: resolutionError}
	}
	summary.Repository = repository
	submitter.logger.Info(
		repositoryResolvedMessageConstant,
		zap.String(logFieldRepositoryConstant, repository.String()),
		zap.String(logFieldRepositorySourceConstant, string(options.RepositorySource)),
	)

	csvFile, openError := os.Open(options.CSVPath)
	if openError != nil {
		return summary, FileAccessError{Path: options.CSVPath, Message: openFileMessageConstant, Cause: openError}
	}
	defer csvFile.Close()

	issueReader, readerError := NewIssueReader(csvFile, options.CSVPath)
	if readerError != nil {
		return summary, readerError
	}

	for {
		record, recordError := issueReader.Next()
		if errors.Is(recordError, io.EOF) {
			break
		}
		if recordError != nil {
			return summary, recordError
		}

		createdIssue, submissionError := submitter.submitRecord(executionContext, record, options.DryRun)
		if submissionError != nil {
			return summary, submissionError
		}
		summary.ProcessedRows++
		if !options.DryRun {
			summary.CreatedIssues = append(summary.CreatedIssues, createdIssue)
		}
	}

	submitter.logger.Info(
		issuesSubmittedMessageConstant,
		zap.String(logFieldRepositoryConstant, repository.String()),
		zap.String(logFieldCSVPathConstant, options.CSVPath),
		zap.Int(logFieldRowCountConstant, summary.ProcessedRows),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
	)

	return summary, nil
}

func (submitter *Submitter) submitRecord(executionContext context.Context, record IssueRecord, dryRun bool) (githubcli.CreatedIssue, error) {
	request := record.Request()
	commandLine := commandLinePrefixConstant + githubcli.FormatCommandLine(githubcli.IssueCreationArguments(request))
	if writeError := submitter.writeLine(commandLine); writeError != nil {
		return githubcli.CreatedIssue{}, writeError
	}

	rowFields := []zap.Field{
		zap.Int(logFieldRowNumberConstant, record.RowNumber),
		zap.Int(logFieldLineConstant, record.Line),
		zap.String(logFieldTitleConstant, record.Title),
	}

	if dryRun {
		submitter.logger.Debug(rowSkippedMessageConstant, rowFields...)
		return githubcli.CreatedIssue{}, nil
	}

	createdIssue, creationError := submitter.creator.CreateIssue(executionContext, request)
	if creationError != nil {
		return githubcli.CreatedIssue{}, RowSubmissionError{RowNumber: record.RowNumber, Title: record.Title, Cause: creationError}
	}

	submitter.logger.Debug(issueCreatedMessageConstant, append(rowFields, zap.String(logFieldIssueURLConstant, createdIssue.URL))...)
	if len(strings.TrimSpace(createdIssue.URL)) > 0 {
		if writeError := submitter.writeLine(createdIssue.URL); writeError != nil {
			return createdIssue, writeError
		}
	}

	return createdIssue, nil
}

func (submitter *Submitter) writeLine(line string) error {
	if _, writeError := fmt.Fprintf(submitter.output, outputLineTemplateConstant, line); writeError != nil {
		return fmt.Errorf(outputWriteErrorTemplateConstant, writeError)
	}
	return nil
}
