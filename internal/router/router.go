package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/ration-slot-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/ration-slot-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Route group under /v1/auth for operations that do not require an
	// existing session.  Administrators sign in with phone + password,
	// ration-card holders with card number + OTP.
	g := e.Group("/v1/auth")
	// Admin login at /v1/auth/admin/login.
	g.POST("/admin/login", a.AdminLogin)
	// Card holder login at /v1/auth/user/login.
	g.POST("/user/login", a.UserLogin)
	// Rotate a refresh token and issue a new pair.
	g.POST("/refresh", a.Refresh)
	// Issue a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Log out with a refresh token in the body or a bearer token in the
	// Authorization header.  No JWT middleware so an expired session can
	// still terminate itself.
	g.POST("/logout", a.Logout)

	// Group for routes that require a valid access token.  All handlers
	// registered on this group execute the JWTAuth middleware first.
	auth := e.Group("/v1")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Both principal types may ask who they are.
	auth.Use(middleware.RequireRole("ADMIN", "USER"))
	// Return the authenticated principal's id and role.
	auth.GET("/me", a.Me)

	// Alias at the top level so clients can call either /v1/auth/logout or
	// /v1/logout with a valid refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The catalog handler returns the active issue dates and the
// slot grid for a date.  These routes carry the optional Redis response
// cache and rate limiter, since they take the bulk of the traffic while
// holders wait for a cycle to open.
func RegisterPublic(e *echo.Echo, p *handler.CatalogHandler, mw ...echo.MiddlewareFunc) {
	// Expose the list of active issue dates.
	e.GET("/v1/issue-dates", p.ListIssueDates, mw...)
	// List the slot grid for one issue date.
	e.GET("/v1/issue-dates/:date/slots", p.ListSlots, mw...)
}

// RegisterUser registers endpoints for authenticated ration-card holders:
// booking a slot and reading bookings back.  The USER role is required.
func RegisterUser(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("USER"))
	// Allocate a slot to the current holder.
	g.POST("/slots/:id/book", b.Book, mw...)
	// Fetch one booking by id (owner only).
	g.GET("/bookings/:id", b.GetBooking)
	// Fetch the holder's booking in the active cycle.
	g.GET("/my-booking", b.MyBooking)
}

// RegisterAdmin registers catalog maintenance endpoints for administrators:
// generating the slot grid, deleting issue dates and listing bookings.
// The ADMIN role is required on every route.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))
	// Open a date range and materialize the daily slot grid.
	g.POST("/slots/generate", a.GenerateSlots)
	// Remove one issue date with its slots and bookings.
	g.DELETE("/issue-dates/:date", a.DeleteIssueDate)
	// Clear every issue date inside a range.
	g.POST("/slots/clear", a.ClearSlots)
	// List all bookings for the dashboard.
	g.GET("/bookings", a.ListBookings)
}
