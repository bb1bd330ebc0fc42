// Package classify derives structured outcomes from raw arduino-cli output.
//
// The wrapped tool's text format is owned by the tool and drifts between
// versions, so everything here is best-effort pattern matching: a handful of
// extracted facts, never a full parse.
package classify

import (
	"regexp"
	"strings"

	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
)

// artifactPattern matches the tool's success summary: a "Sketch uses ..."
// line immediately followed by the produced binary's path, recognizable by
// its embedded .ino. extension (e.g. blink.ino.hex).
var artifactPattern = regexp.MustCompile(`Sketch uses .*\n(.*\.ino\..*)\n`)

// failureRule is one entry of the ordered classification table.
type failureRule struct {
	category domain.ErrorCategory
	match    func(text string) bool
}

// failureRules is evaluated in order, first match wins. The ordering is
// deliberate: when several substrings co-occur the earlier rule is the more
// actionable diagnosis. A missing library usually also produces board-ish
// noise, so the dependency check runs before the board check.
var failureRules = []failureRule{
	{
		category: domain.CategoryUndefinedReference,
		match: func(text string) bool {
			return strings.Contains(text, "undefined reference")
		},
	},
	{
		category: domain.CategoryMissingDependency,
		match: func(text string) bool {
			if strings.Contains(text, "No such file or directory") {
				return true
			}
			lower := strings.ToLower(text)
			return strings.Contains(lower, "library") && strings.Contains(lower, "not found")
		},
	},
	{
		category: domain.CategoryUnsupportedBoard,
		match: func(text string) bool {
			lower := strings.ToLower(text)
			if !strings.Contains(lower, "board") {
				return false
			}
			return strings.Contains(lower, "unknown") || strings.Contains(lower, "not found")
		},
	},
}

// Classifier implements ports.Classifier with table-driven matching.
type Classifier struct{}

var _ ports.Classifier = (*Classifier)(nil)

// New creates a new Classifier.
func New() *Classifier {
	return &Classifier{}
}

// Classify derives a ClassifiedOutcome from a command result. It is a pure
// function of its inputs and never fails: unmatched failure text degrades to
// the default syntax category, and a success without a recognizable artifact
// line simply leaves ArtifactPath empty.
func (c *Classifier) Classify(result domain.CommandResult, op domain.Operation) domain.ClassifiedOutcome {
	if result.Success {
		outcome := domain.ClassifiedOutcome{Success: true, Category: domain.CategoryNone}
		if op.IsCompile() {
			if m := artifactPattern.FindStringSubmatch(result.Stdout); m != nil {
				outcome.ArtifactPath = strings.TrimSpace(m[1])
			}
		}
		return outcome
	}

	text := result.ErrorText()
	for _, rule := range failureRules {
		if rule.match(text) {
			return domain.ClassifiedOutcome{Category: rule.category}
		}
	}
	return domain.ClassifiedOutcome{Category: domain.CategorySyntax}
}

var (
	includePattern = regexp.MustCompile(`(?m)^.*fatal error: ([^\s:]+): No such file or directory`)
	symbolPattern  = regexp.MustCompile("undefined reference to `([^']+)'")
	errorLine      = regexp.MustCompile(`(?m)^.*error: (.+)$`)
)

// Diagnose produces human-readable explanations for failure text. It is a
// secondary routine used for error reporting; the outcome's category comes
// from Classify alone.
func (c *Classifier) Diagnose(text string) []domain.Diagnosis {
	var diags []domain.Diagnosis

	for _, m := range includePattern.FindAllStringSubmatch(text, -1) {
		diags = append(diags, domain.Diagnosis{
			Kind:   domain.DiagnosisMissingInclude,
			Detail: m[1],
			Suggestion: "header " + m[1] + " was not found: install the library providing it " +
				"with 'arduino-cli lib install', or fix the #include path",
		})
	}

	for _, m := range symbolPattern.FindAllStringSubmatch(text, -1) {
		diags = append(diags, domain.Diagnosis{
			Kind:   domain.DiagnosisUndefinedReference,
			Detail: m[1],
			Suggestion: "symbol " + m[1] + " is declared but never defined: " +
				"check for a missing function body or an uninstalled library",
		})
	}

	if len(diags) == 0 {
		if m := errorLine.FindStringSubmatch(text); m != nil {
			diags = append(diags, domain.Diagnosis{
				Kind:       domain.DiagnosisSyntax,
				Detail:     strings.TrimSpace(m[1]),
				Suggestion: "fix the reported syntax error and recompile",
			})
		}
	}

	return diags
}
