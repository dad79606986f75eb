// Package utils exposes reusable helpers consumed by the ghissues commands.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging for the CLI, along
// with the command context accessor that carries the run identifier.
package utils
