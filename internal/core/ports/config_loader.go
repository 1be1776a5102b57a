package ports

import "go.trai.ch/inso/internal/core/domain"

// ConfigLoader defines the interface for loading the run configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the config file at path. When path is a directory, the nearest
	// config file at or above it is used, or the default configuration if none exists.
	Load(path string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to find the directory holding the config file.
	DiscoverRoot(cwd string) (string, error)
}
