package router

import (
	"net/http"
	"path"
	"strings"

	"github.com/julienschmidt/httprouter"
)

type Middleware = func(http.Handler) http.Handler

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}

	// WithGroup registra as rotas sob um prefixo comum, como /v1
	WithGroup = func(prefix string, routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(Prefixed(prefix, routes...)...)
		}
	}

	// WithFallbacks troca as respostas em texto do httprouter para rota inexistente e método não suportado
	WithFallbacks = func(notFound, methodNotAllowed http.Handler) ConfigRouter {
		return func(router *Router) {
			router.router.NotFound = notFound
			router.router.MethodNotAllowed = methodNotAllowed
		}
	}
)

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []Middleware // Lista de middlewares específicos para esta rota
}

type Router struct {
	router *httprouter.Router
}

type ConfigRouter func(router *Router)

func New(configs ...ConfigRouter) Router {
	router := &Router{
		router: httprouter.New(),
	}

	for _, config := range configs {
		config(router)
	}

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Prefixed devolve cópias das rotas com o prefixo aplicado ao caminho
func Prefixed(prefix string, routes ...Route) []Route {
	prefix = "/" + strings.Trim(prefix, "/")
	prefixed := make([]Route, 0, len(routes))
	for _, route := range routes {
		route.Path = path.Join(prefix, route.Path)
		prefixed = append(prefixed, route)
	}
	return prefixed
}

// AddRoutes adiciona rotas ao router com seus middlewares específicos
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		var handler http.Handler = route.Handler

		// Aplicar middlewares específicos da rota, do último para o primeiro
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
	}
}
