// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires ScopeHub into WAFFLE's lifecycle: config load and
// validation, the MongoDB connection, index setup, session-store
// initialization, and the JSON router. cmd/scopehub passes this to
// app.Run and WAFFLE drives the stages in order.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "scopehub",
	LoadConfig:     LoadConfig,
	ValidateConfig: ValidateConfig,
	ConnectDB:      ConnectDB,
	EnsureSchema:   EnsureSchema,
	Startup:        Startup,
	BuildHandler:   BuildHandler,
	Shutdown:       Shutdown,
}
