package gitrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
)

const (
	defaultRemoteNameConstant          = "origin"
	defaultRepositoryPathConstant      = "."
	remoteWithoutURLMessageConstant    = "remote has no configured url"
	localRemoteErrorTemplateConstant   = "unable to read remote %s in %s: %v"
	localRemoteMessageTemplateConstant = "unable to read remote %s in %s: %s"
)

// LocalRemoteError reports failures reading a remote from local Git metadata.
type LocalRemoteError struct {
	RepositoryPath string
	RemoteName     string
	Message        string
	Cause          error
}

// Error describes the failure.
func (remoteError LocalRemoteError) Error() string {
	if remoteError.Cause != nil {
		return fmt.Sprintf(localRemoteErrorTemplateConstant, remoteError.RemoteName, remoteError.RepositoryPath, remoteError.Cause)
	}
	return fmt.Sprintf(localRemoteMessageTemplateConstant, remoteError.RemoteName, remoteError.RepositoryPath, remoteError.Message)
}

// Unwrap exposes the underlying go-git or parse error.
func (remoteError LocalRemoteError) Unwrap() error {
	return remoteError.Cause
}

// LocalRemoteResolver derives the repository identifier from a remote configured in the enclosing Git repository.
type LocalRemoteResolver struct {
	repositoryPath string
	remoteName     string
}

// NewLocalRemoteResolver constructs a resolver rooted at repositoryPath reading remoteName.
// Empty arguments fall back to the current directory and origin.
func NewLocalRemoteResolver(repositoryPath string, remoteName string) *LocalRemoteResolver {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		trimmedRepositoryPath = defaultRepositoryPathConstant
	}
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) == 0 {
		trimmedRemoteName = defaultRemoteNameConstant
	}
	return &LocalRemoteResolver{repositoryPath: trimmedRepositoryPath, remoteName: trimmedRemoteName}
}

// ResolveRepository opens the repository, reads the first URL of the configured remote, and parses it.
func (resolver *LocalRemoteResolver) ResolveRepository(executionContext context.Context) (RepositoryIdentifier, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return RepositoryIdentifier{}, contextError
	}

	repository, openError := git.PlainOpenWithOptions(resolver.repositoryPath, &git.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		return RepositoryIdentifier{}, resolver.wrap(openError)
	}

	remote, remoteError := repository.Remote(resolver.remoteName)
	if remoteError != nil {
		return RepositoryIdentifier{}, resolver.wrap(remoteError)
	}

	remoteURLs := remote.Config().URLs
	if len(remoteURLs) == 0 {
		return RepositoryIdentifier{}, LocalRemoteError{RepositoryPath: resolver.repositoryPath, RemoteName: resolver.remoteName, Message: remoteWithoutURLMessageConstant}
	}

	remoteURL, parseError := ParseRemoteURL(remoteURLs[0])
	if parseError != nil {
		return RepositoryIdentifier{}, resolver.wrap(parseError)
	}

	return remoteURL.Identifier(), nil
}

func (resolver *LocalRemoteResolver) wrap(cause error) error {
	return LocalRemoteError{RepositoryPath: resolver.repositoryPath, RemoteName: resolver.remoteName, Cause: cause}
}
