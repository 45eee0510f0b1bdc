// Package handler contains the HTTP endpoints. Handlers bind and
// validate request bodies, call into repositories and services, and map
// domain errors onto HTTP status codes.
package handler

import (
    "time"

    "github.com/labstack/echo/v4"
)

// customerID returns the authenticated user's ID placed in the context
// by the JWT middleware, or "" for anonymous requests.
func customerID(c echo.Context) string {
    if v, ok := c.Get("user_id").(string); ok {
        return v
    }
    return ""
}

// parseDate accepts either a bare date (2006-01-02) or a full RFC 3339
// timestamp. Bare dates resolve to midnight UTC.
func parseDate(s string) (time.Time, error) {
    if t, err := time.Parse("2006-01-02", s); err == nil {
        return t.UTC(), nil
    }
    t, err := time.Parse(time.RFC3339, s)
    if err != nil {
        return time.Time{}, err
    }
    return t.UTC(), nil
}
