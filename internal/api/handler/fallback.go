package handler

import (
	"fmt"
	"net/http"

	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

func RouteNotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrRouteNotFound, fmt.Sprintf("Rota %s não encontrada", r.URL.Path), nil)
	})
}

// MethodNotAllowed recebe o cabeçalho Allow já preenchido pelo httprouter
func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed,
			fmt.Sprintf("Método %s não suportado em %s", r.Method, r.URL.Path),
			map[string]string{"allow": w.Header().Get("Allow")})
	})
}
