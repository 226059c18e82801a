// Package kernel assembles the HTTP handler: global middleware stack,
// metrics endpoint and route registration.
package kernel

import (
	"net/http"
	"time"

	"github.com/souqdz/souq/app/routes"
	"github.com/souqdz/souq/pkg/cache"
	"github.com/souqdz/souq/pkg/metrics"
	"github.com/souqdz/souq/pkg/middleware"
	"github.com/souqdz/souq/pkg/orm"
	"github.com/souqdz/souq/pkg/reqid"
	"github.com/souqdz/souq/pkg/router"
	"github.com/souqdz/souq/pkg/session"
	"github.com/souqdz/souq/pkg/ws"
)

// HTTPKernel owns the router and the live-feed hub.
type HTTPKernel struct {
	router *router.Router
	hub    *ws.Hub
}

// NewHTTPKernel builds the full middleware stack and mounts every route.
func NewHTTPKernel(hub *ws.Hub) *HTTPKernel {
	// Bridge the redis cache into the ORM read-through helper without an
	// import cycle between the two packages.
	orm.CacheStore = &ormCache{}

	r := router.New()

	// Global middleware, outermost first:
	// metrics wraps everything so latency numbers include the whole stack,
	// recovery runs before anything that could panic, request IDs land in
	// the context before the logger reads them.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus endpoint, outside the named-route registry.
	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r, hub)

	return &HTTPKernel{router: r, hub: hub}
}

// Handler returns the assembled http.Handler.
func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Router exposes the router for route listing.
func (k *HTTPKernel) Router() *router.Router {
	return k.router
}

// ormCache adapts pkg/cache to the orm.Cacher interface.
type ormCache struct{}

func (c *ormCache) Get(key string, dest interface{}) bool {
	return cache.Get(key, dest)
}

func (c *ormCache) Set(key string, value interface{}, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}
