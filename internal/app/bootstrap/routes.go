// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accessapifeature "github.com/scopehq/scopehub/internal/app/features/accessapi"
	healthfeature "github.com/scopehq/scopehub/internal/app/features/health"
	"github.com/scopehq/scopehub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// ScopeHub is a JSON API: the router carries the session middleware so
// handlers can read the signed-in user, a health endpoint for load
// balancers, and the access-resolution API.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Access resolution and legacy org permission grants
	accessHandler := accessapifeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/access", accessapifeature.Routes(accessHandler))

	return r, nil
}
