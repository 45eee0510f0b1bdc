// Package router wires handlers onto the Echo instance. Registration is
// split by audience: public browse, auth, customer-scoped and the
// back-office group.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/avercroft/car-rental-api/internal/handler"
    "github.com/avercroft/car-rental-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Rotates the refresh token.
    g.POST("/refresh", a.Refresh)
    // Issues a new access token without rotating the refresh token.
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout does not require JWT middleware: it accepts either a bearer
    // token (revoke all sessions) or a refresh_token body (revoke one).
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated storefront browse
// endpoints: the car catalogue and branch locations. cache, when
// non-nil, is the Redis response-cache middleware applied to these
// read-heavy routes.
func RegisterPublic(e *echo.Echo, h *handler.CarHandler, cache echo.MiddlewareFunc) {
    g := e.Group("/v1")
    if cache != nil {
        g.Use(cache)
    }
    g.GET("/cars", h.ListCars)
    g.GET("/cars/:id", h.GetCar)
    g.GET("/locations", h.ListLocations)
}
