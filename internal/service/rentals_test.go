package service_test

import (
    "context"
    "database/sql"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/avercroft/car-rental-api/internal/model"
    "github.com/avercroft/car-rental-api/internal/repository"
    "github.com/avercroft/car-rental-api/internal/service"
)

func activeRental() *model.Rental {
    return &model.Rental{
        ID:         "r1",
        CarID:      "c1",
        CustomerID: "cust-1",
        StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
        EndDate:    time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
        Status:     model.RentalActive,
    }
}

func strptr(s string) *string { return &s }

func TestCompletingRentalFreesCar(t *testing.T) {
    rentals := &rentalStoreMock{
        getForUpdFn: func(ctx context.Context, tx *sql.Tx, id string) (*model.Rental, error) {
            return activeRental(), nil
        },
        updateFn: func(ctx context.Context, tx *sql.Tx, id string, start, end time.Time, status string) error {
            require.Equal(t, "r1", id)
            require.Equal(t, model.RentalCompleted, status)
            return nil
        },
    }
    freed := ""
    cars := &carStoreMock{
        updateStatusFn: func(ctx context.Context, tx *sql.Tx, carID, status string) error {
            require.Equal(t, model.CarAvailable, status)
            freed = carID
            return nil
        },
    }

    svc := service.NewRentalService(&fakeRunner{}, rentals, cars)
    rec, err := svc.Update(context.Background(), "r1",
        service.RentalUpdate{Status: strptr(model.RentalCompleted)})
    require.NoError(t, err)
    require.Equal(t, model.RentalCompleted, rec.Status)
    require.Equal(t, "c1", freed)
}

func TestCancellingRentalFreesCar(t *testing.T) {
    rentals := &rentalStoreMock{
        getForUpdFn: func(ctx context.Context, tx *sql.Tx, id string) (*model.Rental, error) {
            return activeRental(), nil
        },
    }
    freed := false
    cars := &carStoreMock{
        updateStatusFn: func(ctx context.Context, tx *sql.Tx, carID, status string) error {
            freed = true
            return nil
        },
    }

    svc := service.NewRentalService(&fakeRunner{}, rentals, cars)
    _, err := svc.Update(context.Background(), "r1",
        service.RentalUpdate{Status: strptr(model.RentalCancelled)})
    require.NoError(t, err)
    require.True(t, freed)
}

func TestDateOnlyEditDoesNotTouchCar(t *testing.T) {
    rentals := &rentalStoreMock{
        getForUpdFn: func(ctx context.Context, tx *sql.Tx, id string) (*model.Rental, error) {
            return activeRental(), nil
        },
        updateFn: func(ctx context.Context, tx *sql.Tx, id string, start, end time.Time, status string) error {
            require.Equal(t, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), end)
            require.Equal(t, model.RentalActive, status)
            return nil
        },
    }
    cars := &carStoreMock{
        updateStatusFn: func(ctx context.Context, tx *sql.Tx, carID, status string) error {
            t.Fatal("car status must not change on a date-only edit")
            return nil
        },
    }

    svc := service.NewRentalService(&fakeRunner{}, rentals, cars)
    newEnd := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
    rec, err := svc.Update(context.Background(), "r1", service.RentalUpdate{EndDate: &newEnd})
    require.NoError(t, err)
    require.Equal(t, newEnd, rec.EndDate)
}

func TestRestatingTerminalStatusDoesNotFreeCarAgain(t *testing.T) {
    done := activeRental()
    done.Status = model.RentalCompleted
    rentals := &rentalStoreMock{
        getForUpdFn: func(ctx context.Context, tx *sql.Tx, id string) (*model.Rental, error) {
            return done, nil
        },
    }
    cars := &carStoreMock{
        updateStatusFn: func(ctx context.Context, tx *sql.Tx, carID, status string) error {
            t.Fatal("completed -> completed must not touch the car")
            return nil
        },
    }

    svc := service.NewRentalService(&fakeRunner{}, rentals, cars)
    _, err := svc.Update(context.Background(), "r1",
        service.RentalUpdate{Status: strptr(model.RentalCompleted)})
    require.NoError(t, err)
}

func TestUpdateMissingRental(t *testing.T) {
    rentals := &rentalStoreMock{
        getForUpdFn: func(ctx context.Context, tx *sql.Tx, id string) (*model.Rental, error) {
            return nil, repository.ErrRentalNotFound
        },
    }
    svc := service.NewRentalService(&fakeRunner{}, rentals, &carStoreMock{})
    _, err := svc.Update(context.Background(), "missing",
        service.RentalUpdate{Status: strptr(model.RentalCancelled)})
    require.ErrorIs(t, err, repository.ErrRentalNotFound)
}
