package repository

import (
    "context"
    "database/sql"

    "github.com/avercroft/car-rental-api/internal/model"
)

// PaymentRepo writes payment rows. Like insurance, payments are created
// once at booking submit and never mutated in this design.
type PaymentRepo struct {
    db *sql.DB
}

// NewPaymentRepo returns a PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// CreateTx inserts a payment row inside an existing transaction.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *model.Payment) error {
    const q = `INSERT INTO payments (id, rental_id, amount_pence, date, method, status)
               VALUES (?, ?, ?, ?, ?, ?)`
    _, err := tx.ExecContext(ctx, q, rec.ID, rec.RentalID, rec.AmountPence,
        rec.Date.UTC(), rec.Method, rec.Status)
    return err
}

// GetByRental returns the payment attached to a rental.
func (r *PaymentRepo) GetByRental(ctx context.Context, rentalID string) (*model.Payment, error) {
    var rec model.Payment
    err := r.db.QueryRowContext(ctx,
        `SELECT id, rental_id, amount_pence, date, method, status, created_at
         FROM payments WHERE rental_id = ?`, rentalID).
        Scan(&rec.ID, &rec.RentalID, &rec.AmountPence, &rec.Date,
            &rec.Method, &rec.Status, &rec.CreatedAt)
    if err != nil {
        return nil, err
    }
    return &rec, nil
}
