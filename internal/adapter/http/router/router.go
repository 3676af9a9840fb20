package router

import "net/http"

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	authController RouteRegistrar,
	holderController RouteRegistrar,
	accountController RouteRegistrar,
	transferController RouteRegistrar,
	statementController RouteRegistrar,
	cardController RouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	registrars := []RouteRegistrar{
		authController,
		holderController,
		accountController,
		transferController,
		statementController,
		cardController,
	}
	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(mux, authMiddleware)
		}
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}
