package handler

import (
    "net/http"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
type RequestValidator struct {
    validate *validator.Validate
}

// NewRequestValidator builds the validator used by the Echo instance.
func NewRequestValidator() *RequestValidator {
    return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Violations surface as 400s with
// the validator's message so clients see which constraint failed.
func (v *RequestValidator) Validate(i interface{}) error {
    if err := v.validate.Struct(i); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, err.Error())
    }
    return nil
}
