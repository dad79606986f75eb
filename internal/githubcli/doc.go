// Package githubcli wraps the GitHub CLI for ghissues.
//
// It layers typed request and response structures over gh subcommands,
// exposes the interfaces consumed by the issues package, and integrates with
// execshell so interactions with GitHub can be mocked during testing.
package githubcli
