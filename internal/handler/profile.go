package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/avercroft/car-rental-api/internal/model"
    "github.com/avercroft/car-rental-api/internal/repository"
    "github.com/avercroft/car-rental-api/internal/service"
)

// ProfileHandler serves the customer's own account: profile read/write,
// rental history and account deletion.
type ProfileHandler struct {
    Customers  *repository.CustomerRepo
    RentalRepo *repository.RentalRepo
    Accounts  *service.AccountService
}

func NewProfileHandler(cu *repository.CustomerRepo, re *repository.RentalRepo, acc *service.AccountService) *ProfileHandler {
    return &ProfileHandler{Customers: cu, RentalRepo: re, Accounts: acc}
}

type profileResp struct {
    ID            string  `json:"id"`
    FirstName     *string `json:"first_name"`
    LastName      *string `json:"last_name"`
    LicenceNumber *string `json:"licence_number"`
    AddressLine1  *string `json:"address_line1"`
    AddressLine2  *string `json:"address_line2"`
    City          *string `json:"city"`
    County        *string `json:"county"`
    Postcode      *string `json:"postcode"`
    DateOfBirth   *string `json:"date_of_birth"`
    Admin         bool    `json:"admin"`
}

func toProfileResp(cu *model.Customer) profileResp {
    return profileResp{
        ID:            cu.ID,
        FirstName:     cu.FirstName,
        LastName:      cu.LastName,
        LicenceNumber: cu.LicenceNumber,
        AddressLine1:  cu.AddressLine1,
        AddressLine2:  cu.AddressLine2,
        City:          cu.City,
        County:        cu.County,
        Postcode:      cu.Postcode,
        DateOfBirth:   cu.DateOfBirth,
        Admin:         cu.Admin,
    }
}

type rentalResp struct {
    ID        string    `json:"id"`
    CarID     string    `json:"car_id"`
    StartDate time.Time `json:"start_date"`
    EndDate   time.Time `json:"end_date"`
    Status    string    `json:"status"`
    CreatedAt time.Time `json:"created_at"`
}

// Get returns the caller's profile.
func (h *ProfileHandler) Get(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cu, err := h.Customers.GetByID(ctx, customerID(c))
    if err != nil {
        if errors.Is(err, repository.ErrCustomerNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toProfileResp(cu))
}

// Update writes the editable profile fields. Blank fields are stored as
// NULL so a partially filled profile keeps blocking the booking details
// skip.
func (h *ProfileHandler) Update(c echo.Context) error {
    var req repository.ProfileFields
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    uid := customerID(c)
    if err := h.Customers.Upsert(ctx, uid, req); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
    }
    cu, err := h.Customers.GetByID(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toProfileResp(cu))
}

// Delete removes the caller's profile, cancelling active rentals and
// freeing their cars first. The login identity survives deletion.
func (h *ProfileHandler) Delete(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    if err := h.Accounts.DeleteCustomer(ctx, customerID(c)); err != nil {
        if errors.Is(err, repository.ErrCustomerNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete account failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// Rentals returns the caller's rental history, newest first.
func (h *ProfileHandler) Rentals(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    recs, err := h.RentalRepo.ListByCustomer(ctx, customerID(c))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]rentalResp, 0, len(recs))
    for _, r := range recs {
        out = append(out, rentalResp{
            ID: r.ID, CarID: r.CarID, StartDate: r.StartDate, EndDate: r.EndDate,
            Status: r.Status, CreatedAt: r.CreatedAt,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"rentals": out})
}
