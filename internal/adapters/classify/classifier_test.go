package classify_test

import (
	"testing"

	"github.com/perilune/inocli/internal/adapters/classify"
	"github.com/perilune/inocli/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestClassify_ArtifactExtraction(t *testing.T) {
	c := classify.New()

	res := domain.CommandResult{
		Success: true,
		Stdout:  "Sketch uses 1024 bytes (3%) of program storage space.\nfoo.ino.hex\n",
	}

	out := c.Classify(res, domain.OpCompile)
	require.True(t, out.Success)
	require.Equal(t, domain.CategoryNone, out.Category)
	require.Equal(t, "foo.ino.hex", out.ArtifactPath)
}

func TestClassify_SuccessWithoutArtifactLine(t *testing.T) {
	c := classify.New()

	res := domain.CommandResult{Success: true, Stdout: "Compilation complete.\n"}

	out := c.Classify(res, domain.OpCompile)
	require.True(t, out.Success)
	// Absence of the pattern is not an error; the caller scans the build
	// directory instead.
	require.Empty(t, out.ArtifactPath)
}

func TestClassify_FailureCategories(t *testing.T) {
	cases := []struct {
		name   string
		stderr string
		want   domain.ErrorCategory
	}{
		{
			name:   "undefined reference",
			stderr: "blink.ino: undefined reference to `foo'\ncollect2: error: ld returned 1",
			want:   domain.CategoryUndefinedReference,
		},
		{
			name:   "missing file",
			stderr: "fatal error: Servo.h: No such file or directory",
			want:   domain.CategoryMissingDependency,
		},
		{
			name:   "missing library",
			stderr: "Error: Library 'FastLED' not found",
			want:   domain.CategoryMissingDependency,
		},
		{
			name:   "unknown board",
			stderr: "Error: board arduino:avr:nope is unknown",
			want:   domain.CategoryUnsupportedBoard,
		},
		{
			name:   "board not found",
			stderr: "Error during build: Board spec not found",
			want:   domain.CategoryUnsupportedBoard,
		},
		{
			name:   "default",
			stderr: "blink.ino:3:1: error: expected ';' before '}' token",
			want:   domain.CategorySyntax,
		},
		{
			name:   "empty stderr falls back to stdout",
			stderr: "",
			want:   domain.CategorySyntax,
		},
	}

	c := classify.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := domain.CommandResult{Success: false, Stderr: tc.stderr, Stdout: "something went wrong"}
			out := c.Classify(res, domain.OpCompile)
			require.False(t, out.Success)
			require.Equal(t, tc.want, out.Category)
		})
	}
}

func TestClassify_PrecedenceDependencyBeforeBoard(t *testing.T) {
	c := classify.New()

	// Both signatures present: the dependency diagnosis is the more
	// actionable one and must win.
	res := domain.CommandResult{
		Success: false,
		Stderr:  "fatal error: Board.h: No such file or directory\nboard settings unknown",
	}

	out := c.Classify(res, domain.OpCompile)
	require.Equal(t, domain.CategoryMissingDependency, out.Category)
}

func TestClassify_PrecedenceUndefinedReferenceFirst(t *testing.T) {
	c := classify.New()

	res := domain.CommandResult{
		Success: false,
		Stderr:  "undefined reference to `setup'\nlibrary core not found",
	}

	out := c.Classify(res, domain.OpCompile)
	require.Equal(t, domain.CategoryUndefinedReference, out.Category)
}

func TestDiagnose_MissingInclude(t *testing.T) {
	c := classify.New()

	diags := c.Diagnose("blink.ino:1:10: fatal error: Servo.h: No such file or directory")
	require.Len(t, diags, 1)
	require.Equal(t, domain.DiagnosisMissingInclude, diags[0].Kind)
	require.Equal(t, "Servo.h", diags[0].Detail)
	require.Contains(t, diags[0].Suggestion, "Servo.h")
}

func TestDiagnose_UndefinedReference(t *testing.T) {
	c := classify.New()

	diags := c.Diagnose("sketch.ino: undefined reference to `loop'")
	require.Len(t, diags, 1)
	require.Equal(t, domain.DiagnosisUndefinedReference, diags[0].Kind)
	require.Equal(t, "loop", diags[0].Detail)
}

func TestDiagnose_SyntaxFallback(t *testing.T) {
	c := classify.New()

	diags := c.Diagnose("blink.ino:3:1: error: expected ';' before '}' token")
	require.Len(t, diags, 1)
	require.Equal(t, domain.DiagnosisSyntax, diags[0].Kind)
	require.Contains(t, diags[0].Detail, "expected ';'")
}

func TestDiagnose_NoMatch(t *testing.T) {
	c := classify.New()
	require.Empty(t, c.Diagnose("everything is fine"))
}
