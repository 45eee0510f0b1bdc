package router

import (
    "github.com/labstack/echo/v4"

    "github.com/avercroft/car-rental-api/internal/handler"
    "github.com/avercroft/car-rental-api/internal/middleware"
)

// RegisterCustomer registers the customer-scoped endpoints under /v1:
// the booking wizard and the caller's own profile and rental history.
// All routes require a valid access token.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, p *handler.ProfileHandler, jwtSecret string) {
    g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

    // Booking wizard. One session per (customer, car); each endpoint is
    // one transition of the workflow.
    g.POST("/cars/:id/booking", b.Open)
    g.DELETE("/cars/:id/booking", b.Close)
    g.PUT("/cars/:id/booking/dates", b.SelectDates)
    g.PUT("/cars/:id/booking/details", b.SaveDetails)
    g.PUT("/cars/:id/booking/payment", b.EnterPayment)
    g.GET("/cars/:id/booking/summary", b.Summary)
    g.POST("/cars/:id/booking/submit", b.Submit)

    // Own account.
    g.GET("/profile", p.Get)
    g.PUT("/profile", p.Update)
    g.DELETE("/profile", p.Delete)
    g.GET("/profile/rentals", p.Rentals)
}
