// Package service holds the cross-entity procedures that keep cars,
// rentals and customers consistent: the cascade-cancel run before a
// profile is deleted, and the car release that follows administrative
// rental edits.
package service

import (
    "context"
    "database/sql"
    "time"

    "github.com/avercroft/car-rental-api/internal/model"
    "github.com/avercroft/car-rental-api/internal/repository"
)

// RentalStore is the slice of the rental repository the services use.
type RentalStore interface {
    ListActiveByCustomerTx(ctx context.Context, tx *sql.Tx, customerID string) ([]repository.ActiveRentalRef, error)
    BatchUpdateStatusTx(ctx context.Context, tx *sql.Tx, rentalIDs []string, status string) error
    GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Rental, error)
    UpdateTx(ctx context.Context, tx *sql.Tx, id string, start, end time.Time, status string) error
}

// CarStore is the slice of the car repository the services use.
type CarStore interface {
    UpdateStatusTx(ctx context.Context, tx *sql.Tx, carID, status string) error
    BatchUpdateStatusTx(ctx context.Context, tx *sql.Tx, carIDs []string, status string) error
}

// CustomerStore is the slice of the customer repository the account
// service uses.
type CustomerStore interface {
    DeleteTx(ctx context.Context, tx *sql.Tx, id string) error
}

// AccountService deletes customer profiles with the cascade-cancel
// invariant: no car may be left marked rented once its renter's profile
// is gone.
type AccountService struct {
    tx        TxRunner
    customers CustomerStore
    rentals   RentalStore
    cars      CarStore
}

// NewAccountService wires an AccountService.
func NewAccountService(tx TxRunner, customers CustomerStore, rentals RentalStore, cars CarStore) *AccountService {
    if tx == nil || customers == nil || rentals == nil || cars == nil {
        panic("nil dependency passed to NewAccountService")
    }
    return &AccountService{tx: tx, customers: customers, rentals: rentals, cars: cars}
}

// DeleteCustomer cancels the customer's active rentals, frees the
// associated cars and removes the profile row, in that order and in one
// transaction. The identity record in users is never deleted; the login
// outlives the profile. Any failure aborts before the profile row is
// touched, leaving the pre-deletion state intact.
func (s *AccountService) DeleteCustomer(ctx context.Context, customerID string) error {
    return s.tx.InTx(ctx, func(tx *sql.Tx) error {
        refs, err := s.rentals.ListActiveByCustomerTx(ctx, tx, customerID)
        if err != nil {
            return err
        }
        if len(refs) > 0 {
            rentalIDs := make([]string, 0, len(refs))
            carIDs := make([]string, 0, len(refs))
            for _, ref := range refs {
                rentalIDs = append(rentalIDs, ref.RentalID)
                carIDs = append(carIDs, ref.CarID)
            }
            if err := s.rentals.BatchUpdateStatusTx(ctx, tx, rentalIDs, model.RentalCancelled); err != nil {
                return err
            }
            if err := s.cars.BatchUpdateStatusTx(ctx, tx, carIDs, model.CarAvailable); err != nil {
                return err
            }
        }
        return s.customers.DeleteTx(ctx, tx, customerID)
    })
}
