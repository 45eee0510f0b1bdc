package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/avercroft/car-rental-api/internal/model"
    "github.com/avercroft/car-rental-api/internal/repository"
)

// CarHandler serves the public catalogue plus the back-office fleet
// endpoints (car CRUD, locations and the maintenance log).
type CarHandler struct {
    Cars        *repository.CarRepo
    Locations   *repository.LocationRepo
    Maintenance *repository.MaintenanceRepo
}

func NewCarHandler(cars *repository.CarRepo, locs *repository.LocationRepo, maint *repository.MaintenanceRepo) *CarHandler {
    return &CarHandler{Cars: cars, Locations: locs, Maintenance: maint}
}

// ----- DTOs -----

type carResp struct {
    ID           string `json:"id"`
    LocationID   string `json:"location_id"`
    Make         string `json:"make"`
    Model        string `json:"model"`
    Year         uint16 `json:"year"`
    LicensePlate string `json:"license_plate"`
    Colour       string `json:"colour"`
    RatePence    int64  `json:"rate_pence"`
    Status       string `json:"status"`
}

func toCarResp(c *model.Car) carResp {
    return carResp{
        ID:           c.ID,
        LocationID:   c.LocationID,
        Make:         c.Make,
        Model:        c.Model,
        Year:         c.Year,
        LicensePlate: c.LicensePlate,
        Colour:       c.Colour,
        RatePence:    c.RatePence,
        Status:       c.Status,
    }
}

type carReq struct {
    LocationID   string `json:"location_id" validate:"required"`
    Make         string `json:"make" validate:"required"`
    Model        string `json:"model" validate:"required"`
    Year         uint16 `json:"year" validate:"required"`
    LicensePlate string `json:"license_plate" validate:"required"`
    Colour       string `json:"colour"`
    RatePence    int64  `json:"rate_pence" validate:"required,gt=0"`
    Status       string `json:"status" validate:"omitempty,oneof=available rented maintenance"`
}

type locationResp struct {
    ID           string `json:"id"`
    Name         string `json:"name"`
    AddressLine1 string `json:"address_line1"`
    AddressLine2 string `json:"address_line2"`
    City         string `json:"city"`
    County       string `json:"county"`
    Postcode     string `json:"postcode"`
    PhoneNumber  string `json:"phone_number"`
}

type locationReq struct {
    Name         string `json:"name" validate:"required"`
    AddressLine1 string `json:"address_line1" validate:"required"`
    AddressLine2 string `json:"address_line2"`
    City         string `json:"city" validate:"required"`
    County       string `json:"county"`
    Postcode     string `json:"postcode" validate:"required"`
    PhoneNumber  string `json:"phone_number"`
}

type maintenanceReq struct {
    Date        string `json:"date" validate:"required"`
    Description string `json:"description" validate:"required"`
    CostPence   int64  `json:"cost_pence" validate:"gte=0"`
    Type        string `json:"type" validate:"required"`
}

type maintenanceResp struct {
    ID          uint64    `json:"id"`
    CarID       string    `json:"car_id"`
    Date        time.Time `json:"date"`
    Description string    `json:"description"`
    CostPence   int64     `json:"cost_pence"`
    Type        string    `json:"type"`
}

// ----- public catalogue -----

// ListCars returns the fleet, optionally filtered by ?status= and
// ?location_id=. The storefront calls it with status=available.
func (h *CarHandler) ListCars(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cars, err := h.Cars.List(ctx, c.QueryParam("status"), c.QueryParam("location_id"))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]carResp, 0, len(cars))
    for i := range cars {
        out = append(out, toCarResp(&cars[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"cars": out})
}

// GetCar returns one car by id.
func (h *CarHandler) GetCar(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    car, err := h.Cars.GetByID(ctx, c.Param("id"))
    if err != nil {
        if errors.Is(err, repository.ErrCarNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toCarResp(car))
}

// ListLocations returns all branches.
func (h *CarHandler) ListLocations(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    locs, err := h.Locations.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]locationResp, 0, len(locs))
    for _, l := range locs {
        out = append(out, locationResp{
            ID: l.ID, Name: l.Name, AddressLine1: l.AddressLine1, AddressLine2: l.AddressLine2,
            City: l.City, County: l.County, Postcode: l.Postcode, PhoneNumber: l.PhoneNumber,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"locations": out})
}

// ----- back office -----

// CreateCar adds a car to the fleet. New cars default to available.
func (h *CarHandler) CreateCar(c echo.Context) error {
    var req carReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return err
    }
    status := req.Status
    if status == "" {
        status = model.CarAvailable
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Locations.GetByID(ctx, req.LocationID); err != nil {
        if errors.Is(err, repository.ErrLocationNotFound) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown location"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    car := &model.Car{
        ID:           uuid.NewString(),
        LocationID:   req.LocationID,
        Make:         req.Make,
        Model:        req.Model,
        Year:         req.Year,
        LicensePlate: req.LicensePlate,
        Colour:       req.Colour,
        RatePence:    req.RatePence,
        Status:       status,
    }
    if err := h.Cars.Create(ctx, car); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create car failed"})
    }
    return c.JSON(http.StatusCreated, toCarResp(car))
}

// UpdateCar rewrites a car's editable fields, including its status.
// Moving a car in or out of maintenance happens here.
func (h *CarHandler) UpdateCar(c echo.Context) error {
    var req carReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return err
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    car, err := h.Cars.GetByID(ctx, c.Param("id"))
    if err != nil {
        if errors.Is(err, repository.ErrCarNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    car.LocationID = req.LocationID
    car.Make = req.Make
    car.Model = req.Model
    car.Year = req.Year
    car.LicensePlate = req.LicensePlate
    car.Colour = req.Colour
    car.RatePence = req.RatePence
    if req.Status != "" {
        car.Status = req.Status
    }
    if err := h.Cars.Update(ctx, car); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update car failed"})
    }
    return c.JSON(http.StatusOK, toCarResp(car))
}

// DeleteCar removes a car. Cars referenced by rental history cannot be
// deleted and return a 409.
func (h *CarHandler) DeleteCar(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    err := h.Cars.Delete(ctx, c.Param("id"))
    switch {
    case err == nil:
        return c.NoContent(http.StatusNoContent)
    case errors.Is(err, repository.ErrCarNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "car has rental history"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete car failed"})
    }
}

// CreateLocation adds a branch.
func (h *CarHandler) CreateLocation(c echo.Context) error {
    var req locationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return err
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    loc := &model.Location{
        ID:           uuid.NewString(),
        Name:         req.Name,
        AddressLine1: req.AddressLine1,
        AddressLine2: req.AddressLine2,
        City:         req.City,
        County:       req.County,
        Postcode:     req.Postcode,
        PhoneNumber:  req.PhoneNumber,
    }
    if err := h.Locations.Create(ctx, loc); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create location failed"})
    }
    return c.JSON(http.StatusCreated, locationResp{
        ID: loc.ID, Name: loc.Name, AddressLine1: loc.AddressLine1, AddressLine2: loc.AddressLine2,
        City: loc.City, County: loc.County, Postcode: loc.Postcode, PhoneNumber: loc.PhoneNumber,
    })
}

// CreateMaintenance appends a maintenance log entry for a car. The car
// status is not changed here; use UpdateCar for that.
func (h *CarHandler) CreateMaintenance(c echo.Context) error {
    var req maintenanceReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return err
    }
    date, err := parseDate(req.Date)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    carID := c.Param("id")
    if _, err := h.Cars.GetByID(ctx, carID); err != nil {
        if errors.Is(err, repository.ErrCarNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    rec := &model.MaintenanceEntry{
        CarID:       carID,
        Date:        date,
        Description: req.Description,
        CostPence:   req.CostPence,
        Type:        req.Type,
    }
    if err := h.Maintenance.Create(ctx, rec); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create maintenance failed"})
    }
    return c.JSON(http.StatusCreated, maintenanceResp{
        ID: rec.ID, CarID: rec.CarID, Date: rec.Date,
        Description: rec.Description, CostPence: rec.CostPence, Type: rec.Type,
    })
}

// ListMaintenance returns a car's maintenance history, newest first.
func (h *CarHandler) ListMaintenance(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    entries, err := h.Maintenance.ListByCar(ctx, c.Param("id"))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]maintenanceResp, 0, len(entries))
    for _, m := range entries {
        out = append(out, maintenanceResp{
            ID: m.ID, CarID: m.CarID, Date: m.Date,
            Description: m.Description, CostPence: m.CostPence, Type: m.Type,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"maintenance": out})
}
