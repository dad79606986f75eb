// Package gitrepo resolves GitHub repository identifiers from Git metadata.
//
// It parses remote URLs and owner/name identifiers, and exposes
// LocalRemoteResolver, which reads a configured remote from the enclosing
// repository with go-git instead of invoking an external tool.
package gitrepo
