package http

import (
	"net/http"
	"strings"

	"ordering/internal/core/domain/model/kernel"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	roleAdmin = "admin"
	callerKey = "caller"
)

// callerMiddleware reads the identity the gateway put in the request
// headers. Requests without a valid user id are rejected with 401.
func callerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := kernel.UUIDFromString(c.Request().Header.Get(HeaderUserID))
		if err != nil {
			return writeJSONError(c, http.StatusUnauthorized, "missing or invalid "+HeaderUserID+" header")
		}

		privileged := strings.EqualFold(c.Request().Header.Get(HeaderUserRole), roleAdmin)
		caller, err := kernel.NewCaller(userID, privileged)
		if err != nil {
			return writeJSONError(c, http.StatusUnauthorized, err.Error())
		}

		c.Set(callerKey, caller)
		return next(c)
	}
}

func callerFrom(c echo.Context) kernel.Caller {
	caller, _ := c.Get(callerKey).(kernel.Caller)
	return caller
}

// requestValidator checks every request that matches a documented
// operation against the OpenAPI document.
func requestValidator(router routers.Router) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return writeJSONError(c, http.StatusBadRequest, firstLine(err.Error()))
			}
			return next(c)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
