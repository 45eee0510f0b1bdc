package router

import (
    "github.com/labstack/echo/v4"

    "github.com/avercroft/car-rental-api/internal/handler"
    "github.com/avercroft/car-rental-api/internal/middleware"
    "github.com/avercroft/car-rental-api/internal/repository"
)

// RegisterAdmin registers the back-office endpoints under /v1/admin.
// The admin flag is checked against the customers table on every
// request, so demotions apply without waiting for token expiry.
func RegisterAdmin(e *echo.Echo, cars *handler.CarHandler, adm *handler.AdminHandler, customers *repository.CustomerRepo, jwtSecret string) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireAdmin(customers),
    )

    // Fleet management.
    g.POST("/cars", cars.CreateCar)
    g.PUT("/cars/:id", cars.UpdateCar)
    g.DELETE("/cars/:id", cars.DeleteCar)
    g.POST("/locations", cars.CreateLocation)
    g.POST("/cars/:id/maintenance", cars.CreateMaintenance)
    g.GET("/cars/:id/maintenance", cars.ListMaintenance)

    // Rentals tab.
    g.GET("/rentals", adm.ListRentals)
    g.PATCH("/rentals/:id", adm.UpdateRental)

    // Customers tab.
    g.GET("/customers", adm.ListCustomers)
    g.PUT("/customers/:id", adm.UpdateCustomer)
    g.PATCH("/customers/:id/admin", adm.SetAdmin)
    g.DELETE("/customers/:id", adm.DeleteCustomer)
}
