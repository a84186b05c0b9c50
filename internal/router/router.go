package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/kindlot/charity-auction/internal/handler"    // import the handlers that implement business logic
	"github.com/kindlot/charity-auction/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations under /v1/auth do not require an existing session; each
	// handler is responsible for generating or exchanging tokens itself.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked and
	// a new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Refresh-access issues a new access token without rotating the
	// refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a JSON body containing a `refresh_token` and revokes
	// that session, or, when called with a bearer token and no body, revokes
	// every session of the authenticated user.
	g.POST("/logout", a.Logout)
	// Email verification is a GET so the link in the verification mail can
	// be opened directly.  The code travels as a query parameter.
	g.GET("/verify-email", a.VerifyEmail)

	// Protected endpoints live under /v1 and run the JWTAuth middleware
	// before the handler.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
