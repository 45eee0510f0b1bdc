package booking

import (
    "context"
    "database/sql"
    "time"

    "github.com/google/uuid"

    "github.com/avercroft/car-rental-api/internal/model"
    "github.com/avercroft/car-rental-api/internal/repository"
)

// SQLStore implements Store over the MySQL repositories. The submit
// bundle runs in a single transaction so a failure at any of the four
// writes leaves no partial booking behind.
type SQLStore struct {
    DB        *sql.DB
    Cars      *repository.CarRepo
    Customers *repository.CustomerRepo
    Rentals   *repository.RentalRepo
    Insurance *repository.InsuranceRepo
    Payments  *repository.PaymentRepo
}

// NewSQLStore wires a SQLStore. All dependencies must be non-nil.
func NewSQLStore(db *sql.DB, cars *repository.CarRepo, customers *repository.CustomerRepo,
    rentals *repository.RentalRepo, insurance *repository.InsuranceRepo, payments *repository.PaymentRepo) *SQLStore {
    if db == nil || cars == nil || customers == nil || rentals == nil || insurance == nil || payments == nil {
        panic("nil dependency passed to NewSQLStore")
    }
    return &SQLStore{DB: db, Cars: cars, Customers: customers,
        Rentals: rentals, Insurance: insurance, Payments: payments}
}

// GetCar loads the car being booked.
func (s *SQLStore) GetCar(ctx context.Context, carID string) (*model.Car, error) {
    return s.Cars.GetByID(ctx, carID)
}

// FetchProfile loads the customer's profile row.
func (s *SQLStore) FetchProfile(ctx context.Context, customerID string) (*model.Customer, error) {
    return s.Customers.GetByID(ctx, customerID)
}

// UpsertProfile writes the details-step fields, keyed by the caller's
// identity.
func (s *SQLStore) UpsertProfile(ctx context.Context, customerID string, form ProfileForm) error {
    return s.Customers.Upsert(ctx, customerID, repository.ProfileFields{
        FirstName:     form.FirstName,
        LastName:      form.LastName,
        LicenceNumber: form.LicenceNumber,
        AddressLine1:  form.AddressLine1,
        AddressLine2:  form.AddressLine2,
        City:          form.City,
        County:        form.County,
        Postcode:      form.Postcode,
        DateOfBirth:   form.DateOfBirth,
    })
}

// CreateBooking persists the rental, its insurance and payment rows and
// flips the car to rented, all inside one transaction. The car update
// is guarded on status=available; losing that race rolls everything
// back with repository.ErrCarUnavailable, so two concurrent submits for
// one car cannot both succeed.
func (s *SQLStore) CreateBooking(ctx context.Context, b *Booking) (string, error) {
    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil {
        return "", err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    rental := &model.Rental{
        ID:         uuid.NewString(),
        CarID:      b.CarID,
        CustomerID: b.CustomerID,
        StartDate:  b.StartDate,
        EndDate:    b.EndDate,
        Status:     model.RentalActive,
    }
    if err := s.Rentals.CreateTx(ctx, tx, rental); err != nil {
        return "", err
    }

    ins := &model.Insurance{
        ID:        uuid.NewString(),
        RentalID:  rental.ID,
        Type:      b.Tier,
        CostPence: b.InsurancePence,
        StartDate: b.StartDate,
        EndDate:   b.EndDate,
    }
    if err := s.Insurance.CreateTx(ctx, tx, ins); err != nil {
        return "", err
    }

    pay := &model.Payment{
        ID:          uuid.NewString(),
        RentalID:    rental.ID,
        AmountPence: b.TotalPence,
        Date:        time.Now().UTC(),
        Method:      "card",
        Status:      "completed",
    }
    if err := s.Payments.CreateTx(ctx, tx, pay); err != nil {
        return "", err
    }

    if err := s.Cars.MarkRentedTx(ctx, tx, b.CarID); err != nil {
        return "", err
    }

    if err := tx.Commit(); err != nil {
        return "", err
    }
    committed = true
    return rental.ID, nil
}
