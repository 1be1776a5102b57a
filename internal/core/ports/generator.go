package ports

import "go.trai.ch/inso/internal/core/domain"

// Generator turns resolved suites into an executable test file.
//
//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type Generator interface {
	// Generate must be deterministic: identical suites in identical order yield identical bytes.
	Generate(suites []domain.SuitePayload) (domain.TestFile, error)
}
