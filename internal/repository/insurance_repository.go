package repository

import (
    "context"
    "database/sql"

    "github.com/avercroft/car-rental-api/internal/model"
)

// InsuranceRepo writes insurance rows. Rows are created once at booking
// submit and never mutated, so only the transactional insert and a
// lookup are exposed.
type InsuranceRepo struct {
    db *sql.DB
}

// NewInsuranceRepo returns an InsuranceRepo bound to the given database.
func NewInsuranceRepo(db *sql.DB) *InsuranceRepo { return &InsuranceRepo{db: db} }

// CreateTx inserts an insurance row inside an existing transaction.
func (r *InsuranceRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *model.Insurance) error {
    const q = `INSERT INTO insurance (id, rental_id, type, cost_pence, start_date, end_date)
               VALUES (?, ?, ?, ?, ?, ?)`
    _, err := tx.ExecContext(ctx, q, rec.ID, rec.RentalID, rec.Type,
        rec.CostPence, rec.StartDate.UTC(), rec.EndDate.UTC())
    return err
}

// GetByRental returns the insurance attached to a rental.
func (r *InsuranceRepo) GetByRental(ctx context.Context, rentalID string) (*model.Insurance, error) {
    var rec model.Insurance
    err := r.db.QueryRowContext(ctx,
        `SELECT id, rental_id, type, cost_pence, start_date, end_date, created_at
         FROM insurance WHERE rental_id = ?`, rentalID).
        Scan(&rec.ID, &rec.RentalID, &rec.Type, &rec.CostPence,
            &rec.StartDate, &rec.EndDate, &rec.CreatedAt)
    if err != nil {
        return nil, err
    }
    return &rec, nil
}
