package http

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var openAPISpec []byte

// OpenAPISpec returns the OpenAPI 3 description of the server.
func OpenAPISpec() []byte {
	return openAPISpec
}

var loadRouter = sync.OnceValues(func() (routers.Router, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	// NewRouter validates the document.
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return router, nil
})

// validateRequest rejects requests that do not match openapi.yaml before
// they reach a handler. Handlers still check what the document cannot
// express, such as the shape of n or the bit limit.
func (s *Server) validateRequest(router routers.Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}
			route, params, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			err = openapi3filter.ValidateRequest(r.Context(), &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: params,
				Route:      route,
				Options: &openapi3filter.Options{
					SkipSettingDefaults: true,
					AuthenticationFunc:  openapi3filter.NoopAuthenticationFunc,
				},
			})
			if err != nil {
				s.fail(w, fmt.Errorf("%v: %w", err, domain.ErrInvalidArgument))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openAPISpec)
}
