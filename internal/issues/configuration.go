package issues

import (
	"fmt"
	"strings"
)

const (
	defaultCSVPathConstant                      = "issues.csv"
	defaultRemoteNameConstant                   = "origin"
	repositorySourceGitHubStringConstant        = "gh"
	repositorySourceGitStringConstant           = "git"
	configurationKeySeparatorConstant           = "."
	csvPathConfigurationKeyConstant             = "csv_path"
	dryRunConfigurationKeyConstant              = "dry_run"
	repositorySourceConfigurationKeyConstant    = "repository_source"
	remoteNameConfigurationKeyConstant          = "remote_name"
	unsupportedRepositorySourceTemplateConstant = "unsupported repository source %q (expected %q or %q)"
)

// RepositorySource selects how the target repository is determined at startup.
type RepositorySource string

// Supported repository sources.
const (
	RepositorySourceGitHub RepositorySource = RepositorySource(repositorySourceGitHubStringConstant)
	RepositorySourceGit    RepositorySource = RepositorySource(repositorySourceGitStringConstant)
)

// Configuration captures persisted settings for issue submission.
type Configuration struct {
	CSVPath          string `mapstructure:"csv_path"`
	DryRun           bool   `mapstructure:"dry_run"`
	RepositorySource string `mapstructure:"repository_source"`
	RemoteName       string `mapstructure:"remote_name"`
}

// DefaultConfiguration provides baseline settings for issue submission.
func DefaultConfiguration() Configuration {
	return Configuration{
		CSVPath:          defaultCSVPathConstant,
		DryRun:           false,
		RepositorySource: repositorySourceGitHubStringConstant,
		RemoteName:       defaultRemoteNameConstant,
	}
}

// DefaultConfigurationValues exposes the defaults as viper keys nested under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		joinConfigurationKey(prefix, csvPathConfigurationKeyConstant):          defaults.CSVPath,
		joinConfigurationKey(prefix, dryRunConfigurationKeyConstant):           defaults.DryRun,
		joinConfigurationKey(prefix, repositorySourceConfigurationKeyConstant): defaults.RepositorySource,
		joinConfigurationKey(prefix, remoteNameConfigurationKeyConstant):       defaults.RemoteName,
	}
}

// ParseRepositorySource validates a configured repository source name, case-insensitively.
// An empty value selects the GitHub CLI.
func ParseRepositorySource(value string) (RepositorySource, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", repositorySourceGitHubStringConstant:
		return RepositorySourceGitHub, nil
	case repositorySourceGitStringConstant:
		return RepositorySourceGit, nil
	default:
		return "", fmt.Errorf(unsupportedRepositorySourceTemplateConstant, value, RepositorySourceGitHub, RepositorySourceGit)
	}
}

// sanitize trims values and restores defaults for blank path and remote settings.
func (configuration Configuration) sanitize() Configuration {
	sanitized := configuration
	sanitized.CSVPath = strings.TrimSpace(configuration.CSVPath)
	if len(sanitized.CSVPath) == 0 {
		sanitized.CSVPath = defaultCSVPathConstant
	}
	sanitized.RepositorySource = strings.TrimSpace(configuration.RepositorySource)
	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(sanitized.RemoteName) == 0 {
		sanitized.RemoteName = defaultRemoteNameConstant
	}
	return sanitized
}

func joinConfigurationKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
