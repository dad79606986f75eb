// Package ui provides helpers for formatting human-readable console output.
//
// The helpers translate command lifecycle events into concise messages so
// that feedback about gh invocations stays readable when the console log
// format is selected, while structured telemetry keeps flowing through zap.
package ui
