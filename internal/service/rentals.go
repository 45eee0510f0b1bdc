package service

import (
    "context"
    "database/sql"
    "time"

    "github.com/avercroft/car-rental-api/internal/model"
)

// RentalUpdate carries an administrative edit. Nil fields keep their
// prior value.
type RentalUpdate struct {
    StartDate *time.Time
    EndDate   *time.Time
    Status    *string
}

// RentalService applies administrative rental edits and the follow-up
// car release: moving a rental away from its prior status to completed
// or cancelled frees the referenced car. Date-only edits never touch
// the car.
type RentalService struct {
    tx      TxRunner
    rentals RentalStore
    cars    CarStore
}

// NewRentalService wires a RentalService.
func NewRentalService(tx TxRunner, rentals RentalStore, cars CarStore) *RentalService {
    if tx == nil || rentals == nil || cars == nil {
        panic("nil dependency passed to NewRentalService")
    }
    return &RentalService{tx: tx, rentals: rentals, cars: cars}
}

// freesCar reports whether a status edit releases the car.
func freesCar(prior, next string) bool {
    if prior == next {
        return false
    }
    return next == model.RentalCompleted || next == model.RentalCancelled
}

// Update applies the edit inside one transaction and returns the
// updated rental.
func (s *RentalService) Update(ctx context.Context, rentalID string, upd RentalUpdate) (*model.Rental, error) {
    var out *model.Rental
    err := s.tx.InTx(ctx, func(tx *sql.Tx) error {
        rec, err := s.rentals.GetForUpdateTx(ctx, tx, rentalID)
        if err != nil {
            return err
        }
        prior := rec.Status
        if upd.StartDate != nil {
            rec.StartDate = upd.StartDate.UTC()
        }
        if upd.EndDate != nil {
            rec.EndDate = upd.EndDate.UTC()
        }
        if upd.Status != nil {
            rec.Status = *upd.Status
        }
        if err := s.rentals.UpdateTx(ctx, tx, rec.ID, rec.StartDate, rec.EndDate, rec.Status); err != nil {
            return err
        }
        if freesCar(prior, rec.Status) {
            if err := s.cars.UpdateStatusTx(ctx, tx, rec.CarID, model.CarAvailable); err != nil {
                return err
            }
        }
        out = rec
        return nil
    })
    if err != nil {
        return nil, err
    }
    return out, nil
}
