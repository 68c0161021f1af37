package http

import (
	"errors"
	"fmt"
	"net/http"

	"checkout/internal/adapters/in/http/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequestValidator checks requests against the OpenAPI contract before they
// reach a handler. Authentication is done by the JWT middleware, so security
// requirements are accepted here as is.
func RequestValidator(swagger *openapi3.T, skipper middleware.Skipper) (echo.MiddlewareFunc, error) {
	// Match on paths only, whatever host the service is reached through.
	swagger.Servers = nil

	router, err := gorillamux.NewRouter(swagger)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				if errors.Is(findErr, routers.ErrMethodNotAllowed) {
					return echo.ErrMethodNotAllowed
				}
				return echo.ErrNotFound
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return c.JSON(http.StatusBadRequest, api.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(validateErr),
				})
			}

			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return fmt.Sprintf("invalid parameter %s: %s", reqErr.Parameter.Name, reqErr.Reason)
		}
		if reqErr.RequestBody != nil {
			return "invalid request body: " + reqErr.Error()
		}
	}
	return err.Error()
}
