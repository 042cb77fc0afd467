/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/

// Package integrity validates installed assets against the files actually on
// disk and repairs the fixable subset of what it finds. Validation is
// read-only; repair mutates definition files under an atomic-replace
// discipline and is the only part of the application that writes user files.
package integrity

import (
	"github.com/fightkeep/fightkeep/internal/content"
)

// Severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type fixKind int

const (
	fixNone fixKind = iota
	fixRewriteRef
	fixRenameFolder
)

// fixContext carries what the repair engine needs to locate and rewrite the
// exact reference an issue points at. Only present when the issue is fixable.
type fixContext struct {
	kind fixKind

	// fixRewriteRef
	defPath  string
	section  string
	key      string
	oldValue string
	newValue string

	// fixRenameFolder
	descriptor content.AssetDescriptor
}

// ValidationIssue is one finding against one asset.
type ValidationIssue struct {
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Fixable    bool     `json:"fixable"`

	fix fixContext
}

// ValidationResult aggregates the issues found for one asset. Counts are
// derived from Issues on demand so they can never drift out of sync.
type ValidationResult struct {
	ContentName string            `json:"content_name"`
	ContentType content.Kind      `json:"content_type"`
	Issues      []ValidationIssue `json:"issues"`
}

// ErrorCount returns the number of error-severity issues.
func (r ValidationResult) ErrorCount() int {
	return r.countBySeverity(SeverityError)
}

// WarningCount returns the number of warning-severity issues.
func (r ValidationResult) WarningCount() int {
	return r.countBySeverity(SeverityWarning)
}

// FixableCount returns the number of issues the repair engine can resolve.
func (r ValidationResult) FixableCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Fixable {
			n++
		}
	}
	return n
}

func (r ValidationResult) countBySeverity(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}
