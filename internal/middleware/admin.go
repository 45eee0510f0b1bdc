package middleware

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/avercroft/car-rental-api/internal/repository"
)

// RequireAdmin returns a middleware that allows the request through only
// when the authenticated user's customer record carries the admin flag.
// The flag is read from the database on every request rather than from a
// token claim, so revoking admin access takes effect immediately. It
// assumes JWTAuth has already stored the user ID in the context.
func RequireAdmin(customers *repository.CustomerRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            id, ok := c.Get("user_id").(string)
            if !ok || id == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            cust, err := customers.GetByID(c.Request().Context(), id)
            if err != nil {
                if errors.Is(err, repository.ErrCustomerNotFound) {
                    return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
                }
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
            }
            if !cust.Admin {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
