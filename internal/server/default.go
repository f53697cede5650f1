package server

import (
	"strings"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/helios-hq/helios/pkg/application"
	"github.com/helios-hq/helios/pkg/configuration"
	"github.com/helios-hq/helios/pkg/constants"
	"github.com/helios-hq/helios/pkg/middleware"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default assembles the standard middleware stack and the HTTP server. The
// logging middleware creates the root span for each request.
func Default(options *DefaultOptions) (*HTTPServer, error) {
	app := options.Application

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),

		middleware.TracedMiddleware("database"),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(splitOrigins(options.Configuration.AllowedOrigins)...),

		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
	}

	app.RegisterMiddleware(middlewares...)

	return NewHTTPServer(app), nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
