package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func tag(name string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Ordem", name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestPrefixed(t *testing.T) {
	routes := Prefixed("v1/", Route{Path: "/sales/:id"}, Route{Path: "cron/status"})

	assert.Equal(t, "/v1/sales/:id", routes[0].Path)
	assert.Equal(t, "/v1/cron/status", routes[1].Path)
}

func TestRouter_GrupoComMiddlewaresNaOrdem(t *testing.T) {
	rt := New(
		WithGroup("/v1", Route{
			Path:   "/sales/:id",
			Method: http.MethodGet,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(httprouter.ParamsFromContext(r.Context()).ByName("id")))
			}),
			Middlewares: []Middleware{tag("primeiro"), tag("segundo")},
		}),
	)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sales/s-1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s-1", rec.Body.String())
	assert.Equal(t, []string{"primeiro", "segundo"}, rec.Header().Values("X-Ordem"))
}

func TestRouter_Fallbacks(t *testing.T) {
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(w.Header().Get("Allow")))
	})

	rt := New(
		WithRoutes(Route{Path: "/healthcheck", Method: http.MethodGet, Handler: http.NotFoundHandler()}),
		WithFallbacks(notFound, methodNotAllowed),
	)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nao-existe", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/healthcheck", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), http.MethodGet)
}
