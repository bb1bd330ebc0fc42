package ports

import "github.com/perilune/inocli/internal/core/domain"

// Classifier turns raw tool output into a structured outcome. Implementations
// must be pure: same input, same outcome, no side effects.
//
//go:generate mockgen -source=classifier.go -destination=mocks/mock_classifier.go -package=mocks
type Classifier interface {
	// Classify derives success/failure, an error category and a best-effort
	// artifact path from a command result.
	Classify(result domain.CommandResult, op domain.Operation) domain.ClassifiedOutcome

	// Diagnose inspects failure text and produces human-readable
	// explanations. It is independent of Classify and does not affect the
	// assigned category.
	Diagnose(text string) []domain.Diagnosis
}
