package service_test

import (
    "context"
    "database/sql"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/avercroft/car-rental-api/internal/model"
    "github.com/avercroft/car-rental-api/internal/repository"
    "github.com/avercroft/car-rental-api/internal/service"
)

// fakeRunner satisfies TxRunner without a database: the callback runs
// with a nil tx, which the store mocks ignore.
type fakeRunner struct{ err error }

func (f *fakeRunner) InTx(ctx context.Context, fn func(*sql.Tx) error) error {
    if f.err != nil {
        return f.err
    }
    return fn(nil)
}

type rentalStoreMock struct {
    listActiveFn  func(ctx context.Context, tx *sql.Tx, customerID string) ([]repository.ActiveRentalRef, error)
    batchStatusFn func(ctx context.Context, tx *sql.Tx, rentalIDs []string, status string) error
    getForUpdFn   func(ctx context.Context, tx *sql.Tx, id string) (*model.Rental, error)
    updateFn      func(ctx context.Context, tx *sql.Tx, id string, start, end time.Time, status string) error
}

var _ service.RentalStore = (*rentalStoreMock)(nil)

func (m *rentalStoreMock) ListActiveByCustomerTx(ctx context.Context, tx *sql.Tx, customerID string) ([]repository.ActiveRentalRef, error) {
    if m.listActiveFn == nil {
        return nil, nil
    }
    return m.listActiveFn(ctx, tx, customerID)
}
func (m *rentalStoreMock) BatchUpdateStatusTx(ctx context.Context, tx *sql.Tx, rentalIDs []string, status string) error {
    if m.batchStatusFn == nil {
        return nil
    }
    return m.batchStatusFn(ctx, tx, rentalIDs, status)
}
func (m *rentalStoreMock) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Rental, error) {
    return m.getForUpdFn(ctx, tx, id)
}
func (m *rentalStoreMock) UpdateTx(ctx context.Context, tx *sql.Tx, id string, start, end time.Time, status string) error {
    if m.updateFn == nil {
        return nil
    }
    return m.updateFn(ctx, tx, id, start, end, status)
}

type carStoreMock struct {
    updateStatusFn func(ctx context.Context, tx *sql.Tx, carID, status string) error
    batchStatusFn  func(ctx context.Context, tx *sql.Tx, carIDs []string, status string) error
}

var _ service.CarStore = (*carStoreMock)(nil)

func (m *carStoreMock) UpdateStatusTx(ctx context.Context, tx *sql.Tx, carID, status string) error {
    if m.updateStatusFn == nil {
        return nil
    }
    return m.updateStatusFn(ctx, tx, carID, status)
}
func (m *carStoreMock) BatchUpdateStatusTx(ctx context.Context, tx *sql.Tx, carIDs []string, status string) error {
    if m.batchStatusFn == nil {
        return nil
    }
    return m.batchStatusFn(ctx, tx, carIDs, status)
}

type customerStoreMock struct {
    deleteFn func(ctx context.Context, tx *sql.Tx, id string) error
}

var _ service.CustomerStore = (*customerStoreMock)(nil)

func (m *customerStoreMock) DeleteTx(ctx context.Context, tx *sql.Tx, id string) error {
    if m.deleteFn == nil {
        return nil
    }
    return m.deleteFn(ctx, tx, id)
}

func TestDeleteCustomerCascade(t *testing.T) {
    var ops []string
    rentals := &rentalStoreMock{
        listActiveFn: func(ctx context.Context, tx *sql.Tx, customerID string) ([]repository.ActiveRentalRef, error) {
            require.Equal(t, "cust-1", customerID)
            return []repository.ActiveRentalRef{
                {RentalID: "r1", CarID: "c1"},
                {RentalID: "r2", CarID: "c2"},
            }, nil
        },
        batchStatusFn: func(ctx context.Context, tx *sql.Tx, rentalIDs []string, status string) error {
            require.Equal(t, []string{"r1", "r2"}, rentalIDs)
            require.Equal(t, model.RentalCancelled, status)
            ops = append(ops, "cancel-rentals")
            return nil
        },
    }
    cars := &carStoreMock{
        batchStatusFn: func(ctx context.Context, tx *sql.Tx, carIDs []string, status string) error {
            require.Equal(t, []string{"c1", "c2"}, carIDs)
            require.Equal(t, model.CarAvailable, status)
            ops = append(ops, "free-cars")
            return nil
        },
    }
    customers := &customerStoreMock{
        deleteFn: func(ctx context.Context, tx *sql.Tx, id string) error {
            require.Equal(t, "cust-1", id)
            ops = append(ops, "delete-profile")
            return nil
        },
    }

    svc := service.NewAccountService(&fakeRunner{}, customers, rentals, cars)
    require.NoError(t, svc.DeleteCustomer(context.Background(), "cust-1"))
    require.Equal(t, []string{"cancel-rentals", "free-cars", "delete-profile"}, ops)
}

func TestDeleteCustomerWithoutActiveRentals(t *testing.T) {
    batchCalled := false
    rentals := &rentalStoreMock{
        batchStatusFn: func(ctx context.Context, tx *sql.Tx, rentalIDs []string, status string) error {
            batchCalled = true
            return nil
        },
    }
    deleted := false
    customers := &customerStoreMock{
        deleteFn: func(ctx context.Context, tx *sql.Tx, id string) error {
            deleted = true
            return nil
        },
    }

    svc := service.NewAccountService(&fakeRunner{}, customers, rentals, &carStoreMock{})
    require.NoError(t, svc.DeleteCustomer(context.Background(), "cust-1"))
    require.False(t, batchCalled)
    require.True(t, deleted)
}

func TestDeleteCustomerAbortsBeforeProfileOnFailure(t *testing.T) {
    boom := errors.New("deadlock")
    rentals := &rentalStoreMock{
        listActiveFn: func(ctx context.Context, tx *sql.Tx, customerID string) ([]repository.ActiveRentalRef, error) {
            return []repository.ActiveRentalRef{{RentalID: "r1", CarID: "c1"}}, nil
        },
        batchStatusFn: func(ctx context.Context, tx *sql.Tx, rentalIDs []string, status string) error {
            return boom
        },
    }
    deleted := false
    customers := &customerStoreMock{
        deleteFn: func(ctx context.Context, tx *sql.Tx, id string) error {
            deleted = true
            return nil
        },
    }

    svc := service.NewAccountService(&fakeRunner{}, customers, rentals, &carStoreMock{})
    require.ErrorIs(t, svc.DeleteCustomer(context.Background(), "cust-1"), boom)
    require.False(t, deleted)
}

func TestDeleteCustomerPropagatesNotFound(t *testing.T) {
    customers := &customerStoreMock{
        deleteFn: func(ctx context.Context, tx *sql.Tx, id string) error {
            return repository.ErrCustomerNotFound
        },
    }
    svc := service.NewAccountService(&fakeRunner{}, customers, &rentalStoreMock{}, &carStoreMock{})
    err := svc.DeleteCustomer(context.Background(), "missing")
    require.ErrorIs(t, err, repository.ErrCustomerNotFound)
}
