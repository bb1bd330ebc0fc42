package domain

// ErrorCategory is the best-effort diagnosis assigned to a failed invocation.
type ErrorCategory string

const (
	// CategoryNone means the invocation succeeded.
	CategoryNone ErrorCategory = "none"
	// CategorySyntax is the default category for unrecognized failures.
	CategorySyntax ErrorCategory = "syntax_error"
	// CategoryUndefinedReference indicates a link-stage undefined symbol.
	CategoryUndefinedReference ErrorCategory = "undefined_reference"
	// CategoryMissingDependency indicates a missing file or library.
	CategoryMissingDependency ErrorCategory = "missing_dependency"
	// CategoryUnsupportedBoard indicates an unknown or uninstalled board.
	CategoryUnsupportedBoard ErrorCategory = "unsupported_board"
)

// ClassifiedOutcome is derived deterministically from a CommandResult.
// Classification is a pure function: it never fails and has no side effects.
type ClassifiedOutcome struct {
	Success bool
	// Category is CategoryNone on success, otherwise the first matching
	// category in the classifier's fixed precedence order.
	Category ErrorCategory
	// ArtifactPath is the binary location reported in the tool's success
	// output. Empty when the output did not name one; callers fall back to
	// scanning the build directory for a known binary extension.
	ArtifactPath string
}

// DiagnosisKind identifies the failure shape recognized by the secondary
// diagnostic routine. It exists for error explanation, not classification.
type DiagnosisKind string

const (
	// DiagnosisMissingInclude is an unresolved #include.
	DiagnosisMissingInclude DiagnosisKind = "missing_include"
	// DiagnosisUndefinedReference is an unresolved symbol at link time.
	DiagnosisUndefinedReference DiagnosisKind = "undefined_reference"
	// DiagnosisSyntax is a compile-stage syntax error.
	DiagnosisSyntax DiagnosisKind = "syntax"
)

// Diagnosis is a human-oriented explanation of a failure.
type Diagnosis struct {
	Kind DiagnosisKind
	// Detail names the extracted header or symbol when one was found.
	Detail string
	// Suggestion is a remediation hint suitable for display.
	Suggestion string
}
