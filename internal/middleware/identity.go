package middleware

// identity.go defines helper functions shared across middleware files.
// currentUserID pulls the authenticated user ID that JWTAuth stored in
// the Echo context; anonymous requests resolve to "anon" so rate-limit
// keys still partition sensibly.

import (
    "github.com/labstack/echo/v4"
)

// currentUserID extracts the user identifier from the request context.
// It returns "anon" when no user is authenticated.
func currentUserID(c echo.Context) string {
    if v := c.Get("user_id"); v != nil {
        if s, ok := v.(string); ok && s != "" {
            return s
        }
    }
    return "anon"
}
