package router

import "strings"

// Kind identifies which handler serves a request
type Kind int

const (
	KindNotFound Kind = iota
	KindCreate
	KindGet
	KindList
	KindUpdate
	KindDelete
)

// String returns the handler name, used in logs
func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindGet:
		return "get"
	case KindList:
		return "list"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "not_found"
	}
}

// Route binds a method and a path prefix to a handler kind
type Route struct {
	Method     string
	PathPrefix string
	Kind       Kind
}

// Router evaluates routes in declaration order; the first match wins.
type Router struct {
	routes []Route
}

// New creates a router over the given routes
func New(routes ...Route) *Router {
	return &Router{routes: routes}
}

// UserRoutes is the route table of the service. "GET /users/" has to come
// before "GET /users" because both prefixes match "GET /users/1".
func UserRoutes() []Route {
	return []Route{
		{Method: "POST", PathPrefix: "/users", Kind: KindCreate},
		{Method: "GET", PathPrefix: "/users/", Kind: KindGet},
		{Method: "GET", PathPrefix: "/users", Kind: KindList},
		{Method: "PUT", PathPrefix: "/users/", Kind: KindUpdate},
		{Method: "DELETE", PathPrefix: "/users/", Kind: KindDelete},
	}
}

// NewUserRouter returns the router for the user service
func NewUserRouter() *Router {
	return New(UserRoutes()...)
}

// Match returns the kind of the first route whose method equals the request
// method token and whose prefix starts the remainder of the request.
func (r *Router) Match(raw string) Kind {
	method, target, ok := strings.Cut(raw, " ")
	if !ok {
		return KindNotFound
	}

	for _, route := range r.routes {
		if route.Method == method && strings.HasPrefix(target, route.PathPrefix) {
			return route.Kind
		}
	}
	return KindNotFound
}
