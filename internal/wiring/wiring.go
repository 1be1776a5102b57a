// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/inso/internal/adapters/config"
	_ "go.trai.ch/inso/internal/adapters/console"
	_ "go.trai.ch/inso/internal/adapters/datastore"
	_ "go.trai.ch/inso/internal/adapters/generator"
	_ "go.trai.ch/inso/internal/adapters/logger"
	_ "go.trai.ch/inso/internal/adapters/prompt"
	_ "go.trai.ch/inso/internal/adapters/sender"
	_ "go.trai.ch/inso/internal/adapters/shell"
	// Register app and engine nodes.
	_ "go.trai.ch/inso/internal/app"
	_ "go.trai.ch/inso/internal/engine/dispatcher"
	_ "go.trai.ch/inso/internal/engine/resolver"
)
