package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/avercroft/car-rental-api/internal/booking"
    "github.com/avercroft/car-rental-api/internal/queue"
    "github.com/avercroft/car-rental-api/internal/repository"
    "github.com/avercroft/car-rental-api/internal/service"
)

// BookingHandler exposes the booking wizard over HTTP. Each endpoint
// maps onto one engine transition; domain errors translate to statuses
// (no session 404, wrong step or losing a race 409, bad input 400).
type BookingHandler struct {
    Engine *booking.Engine
    Cars   *repository.CarRepo
}

func NewBookingHandler(engine *booking.Engine, cars *repository.CarRepo) *BookingHandler {
    return &BookingHandler{Engine: engine, Cars: cars}
}

type selectDatesReq struct {
    Tier      string `json:"tier" validate:"required"`
    StartDate string `json:"start_date" validate:"required"`
    EndDate   string `json:"end_date" validate:"required"`
}

// Open starts (or restarts) the wizard for a car.
func (h *BookingHandler) Open(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    view, err := h.Engine.Open(ctx, customerID(c), c.Param("id"))
    if err != nil {
        if errors.Is(err, repository.ErrCarNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusCreated, view)
}

// Close abandons the wizard. Selections are not preserved.
func (h *BookingHandler) Close(c echo.Context) error {
    h.Engine.Close(customerID(c), c.Param("id"))
    return c.NoContent(http.StatusNoContent)
}

// SelectDates records tier and period and prices the rental.
func (h *BookingHandler) SelectDates(c echo.Context) error {
    var req selectDatesReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return err
    }
    start, err := parseDate(req.StartDate)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
    }
    end, err := parseDate(req.EndDate)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date"})
    }

    view, err := h.Engine.SelectDates(customerID(c), c.Param("id"), req.Tier, start, end)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, view)
}

// SaveDetails validates and persists the profile form. Validation
// failures return the field-keyed error map the storefront renders
// under each input.
func (h *BookingHandler) SaveDetails(c echo.Context) error {
    var form booking.ProfileForm
    if err := c.Bind(&form); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    view, fieldErrs, err := h.Engine.SaveDetails(ctx, customerID(c), c.Param("id"), form)
    if err != nil {
        if errors.Is(err, booking.ErrProfileInvalid) {
            return c.JSON(http.StatusBadRequest, echo.Map{"errors": fieldErrs})
        }
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, view)
}

// EnterPayment validates the card form. All four fields are checked so
// every failure is reported together.
func (h *BookingHandler) EnterPayment(c echo.Context) error {
    var form booking.CardForm
    if err := c.Bind(&form); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    view, fieldErrs, err := h.Engine.EnterPayment(customerID(c), c.Param("id"), form)
    if err != nil {
        if errors.Is(err, booking.ErrCardInvalid) {
            return c.JSON(http.StatusBadRequest, echo.Map{"errors": fieldErrs})
        }
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, view)
}

// Summary returns the confirmation view.
func (h *BookingHandler) Summary(c echo.Context) error {
    view, err := h.Engine.Summary(customerID(c), c.Param("id"))
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, view)
}

// Submit persists the booking and publishes a confirmation event. The
// publish is best effort: a broker outage never fails a paid booking.
func (h *BookingHandler) Submit(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    rentalID, b, err := h.Engine.Submit(ctx, customerID(c), c.Param("id"))
    if err != nil {
        if errors.Is(err, repository.ErrCarUnavailable) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "car is no longer available"})
        }
        return bookingError(c, err)
    }

    ev := queue.RentalConfirmedEvent{
        RentalID:       rentalID,
        CustomerID:     b.CustomerID,
        CarID:          b.CarID,
        StartDate:      b.StartDate.Format("2006-01-02"),
        EndDate:        b.EndDate.Format("2006-01-02"),
        Days:           booking.RentalDays(b.StartDate, b.EndDate),
        Tier:           b.Tier,
        InsurancePence: b.InsurancePence,
        TotalPence:     b.TotalPence,
        ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
    }
    if car, err := h.Cars.GetByID(ctx, b.CarID); err == nil {
        ev.Make = car.Make
        ev.Model = car.Model
    }
    _ = service.PublishRentalConfirmed(ctx, ev)

    return c.JSON(http.StatusCreated, echo.Map{"rental_id": rentalID})
}

// bookingError maps engine errors onto HTTP statuses.
func bookingError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, booking.ErrNoSession):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "no open booking session"})
    case errors.Is(err, booking.ErrWrongStep), errors.Is(err, booking.ErrSubmitting):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    case errors.Is(err, booking.ErrInvalidTier), errors.Is(err, booking.ErrInvalidPeriod):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
    }
}
