package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithMiddleware attaches middleware to the versioned API group. Middleware
// that must see every request, including unversioned ones, belongs on the
// engine instead.
func WithMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	api.Use(r.middleware...)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}
