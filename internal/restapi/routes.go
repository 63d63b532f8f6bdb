package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers every API endpoint on the router. All endpoints
// require a valid API key.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodPost, "/api/transfer", validateAPIKey(api, api.transferHandler))
	router.Handler(http.MethodGet, "/api/tables", validateAPIKey(api, api.tablesHandler))
	router.Handler(http.MethodGet, "/api/tables/:name", validateAPIKey(api, api.tableInfoHandler))
	router.Handler(http.MethodGet, "/api/health", validateAPIKey(api, api.healthHandler))
}

// Handler assembles the router and the full middleware chain: security
// headers, request logging, rate limiting and response compression.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	if api.rateLimiter != nil {
		handler = api.rateLimiter(handler)
	}
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = securityHeaders(handler)

	return handler
}
