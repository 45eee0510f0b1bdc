package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/avercroft/car-rental-api/internal/repository"
    "github.com/avercroft/car-rental-api/internal/service"
)

// AdminHandler serves the back-office rental and customer tabs. Every
// route behind it is wrapped by the admin middleware.
type AdminHandler struct {
    Rentals   *repository.RentalRepo
    Customers *repository.CustomerRepo
    RentalSvc *service.RentalService
    Accounts  *service.AccountService
}

func NewAdminHandler(re *repository.RentalRepo, cu *repository.CustomerRepo, rs *service.RentalService, acc *service.AccountService) *AdminHandler {
    return &AdminHandler{Rentals: re, Customers: cu, RentalSvc: rs, Accounts: acc}
}

type rentalUpdateReq struct {
    StartDate *string `json:"start_date"`
    EndDate   *string `json:"end_date"`
    Status    *string `json:"status" validate:"omitempty,oneof=active completed cancelled"`
}

type setAdminReq struct {
    Admin bool `json:"admin"`
}

// ListRentals returns every rental joined with its car and customer.
func (h *AdminHandler) ListRentals(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    details, err := h.Rentals.ListDetails(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"rentals": details})
}

// UpdateRental edits a rental's dates and/or status. Completing or
// cancelling an active rental frees the car in the same transaction.
func (h *AdminHandler) UpdateRental(c echo.Context) error {
    var req rentalUpdateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return err
    }

    var upd service.RentalUpdate
    if req.StartDate != nil {
        t, err := parseDate(*req.StartDate)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
        }
        upd.StartDate = &t
    }
    if req.EndDate != nil {
        t, err := parseDate(*req.EndDate)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date"})
        }
        upd.EndDate = &t
    }
    upd.Status = req.Status

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    rec, err := h.RentalSvc.Update(ctx, c.Param("id"), upd)
    if err != nil {
        if errors.Is(err, repository.ErrRentalNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "rental not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update rental failed"})
    }
    return c.JSON(http.StatusOK, rentalResp{
        ID: rec.ID, CarID: rec.CarID, StartDate: rec.StartDate, EndDate: rec.EndDate,
        Status: rec.Status, CreatedAt: rec.CreatedAt,
    })
}

// ListCustomers returns every profile for the customers tab.
func (h *AdminHandler) ListCustomers(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    customers, err := h.Customers.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]profileResp, 0, len(customers))
    for i := range customers {
        out = append(out, toProfileResp(&customers[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"customers": out})
}

// UpdateCustomer rewrites a customer's profile fields on their behalf.
func (h *AdminHandler) UpdateCustomer(c echo.Context) error {
    var req repository.ProfileFields
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id := c.Param("id")
    if err := h.Customers.Upsert(ctx, id, req); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update customer failed"})
    }
    cu, err := h.Customers.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toProfileResp(cu))
}

// SetAdmin grants or revokes back-office access.
func (h *AdminHandler) SetAdmin(c echo.Context) error {
    var req setAdminReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Customers.SetAdmin(ctx, c.Param("id"), req.Admin); err != nil {
        if errors.Is(err, repository.ErrCustomerNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update customer failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "admin": req.Admin})
}

// DeleteCustomer removes a profile with the same cascade-cancel rules
// as self-service deletion: active rentals cancelled, cars freed, login
// identity untouched.
func (h *AdminHandler) DeleteCustomer(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    if err := h.Accounts.DeleteCustomer(ctx, c.Param("id")); err != nil {
        if errors.Is(err, repository.ErrCustomerNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete customer failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
