// internal/api/server.go
//
// HTTP surface assembly.
//
// Context
// -------
// One chi router serves three surfaces:
//
//   • /api/…    – the admin panel's collection CRUD plus site life-cycle.
//   • /metrics  – Prometheus.
//   • /…        – the public front: main platform pages on reserved
//     segments and the root, storefront payloads on tenant slugs.  The
//     tenant middleware resolves once per request; handlers read the
//     settled Resolution from the request context.
//
// The server renders JSON only; page layout and styling belong to the
// storefront renderer, which consumes these payloads.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/voyago/internal/middleware"
	"github.com/yanizio/voyago/internal/requestinfo"
	"github.com/yanizio/voyago/internal/site"
	"github.com/yanizio/voyago/internal/store"
	"github.com/yanizio/voyago/internal/tenant"
	"github.com/yanizio/voyago/internal/theme"
)

// Server bundles the handler dependencies.  Construct with New.
type Server struct {
	store    store.Store
	resolver *tenant.Resolver
	sites    *site.Repository
	themes   *theme.Manager
	current  *tenant.Current
	log      *zap.SugaredLogger
}

// New wires the server.  All dependencies are required.
func New(
	st store.Store,
	resolver *tenant.Resolver,
	sites *site.Repository,
	themes *theme.Manager,
	current *tenant.Current,
	log *zap.SugaredLogger,
) *Server {
	return &Server{
		store:    st,
		resolver: resolver,
		sites:    sites,
		themes:   themes,
		current:  current,
		log:      log,
	}
}

// Router assembles the full middleware chain and route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestinfo.Logger(s.log))
	r.Use(middleware.Security)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Site life-cycle routes sit above the generic collection routes
		// so registration always passes through the repository's
		// slug-uniqueness and forced-field rules.
		r.Post("/sites", s.handleCreateSite)
		r.Patch("/sites/{id}", s.handleUpdateSite)

		r.Get("/{collection}", s.handleList)
		r.Post("/{collection}", s.handleInsert)
		r.Get("/{collection}/schema", s.handleSchema)
		r.Patch("/{collection}/{id}", s.handleUpdate)
		r.Delete("/{collection}/{id}", s.handleDelete)
	})

	r.Group(func(r chi.Router) {
		r.Use(tenant.Middleware(s.resolver, s.current, s.log))
		r.Get("/", s.handleFront)
		r.Get("/*", s.handleFront)
	})

	return r
}
