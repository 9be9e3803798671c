package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/guillermoBallester/hzmeta/internal/core/service"
)

func (s *Server) setupRoutes(metadata *service.MetadataService, mcpSrv *mcpserver.MCPServer) {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(requestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/health", s.handleHealth())

	if mcpSrv != nil {
		r.Handle("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv))
	}

	r.Route("/v1", func(api chi.Router) {
		if s.cfg.CORSOrigin != "" {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins:   []string{s.cfg.CORSOrigin},
				AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
				AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
				ExposedHeaders:   []string{requestIDHeader},
				AllowCredentials: false,
				MaxAge:           300,
			}))
		}
		if s.limiter != nil {
			api.Use(s.limiter.Middleware)
		}
		api.Get("/catalogs", s.handleRowSet(staticLister(metadata.ListCatalogs)))
		api.Get("/schemas", s.handleRowSet(staticLister(metadata.ListSchemas)))
		api.Get("/table-types", s.handleRowSet(staticLister(metadata.ListTableTypes)))
		api.Get("/type-info", s.handleRowSet(staticLister(metadata.ListTypeInfo)))
		api.Get("/tables", s.handleRowSet(tablesLister(metadata)))
		api.Get("/columns", s.handleRowSet(columnsLister(metadata)))
		api.Get("/info", s.handleInfo(metadata))
	})

	s.router = r
}
