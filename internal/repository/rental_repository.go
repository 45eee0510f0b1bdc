package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/avercroft/car-rental-api/internal/model"
)

// RentalRepo provides CRUD operations for rentals. Rentals are created
// only by the booking workflow; administrators mutate status and dates,
// and the cascade-cancel procedure batch-updates them on customer
// deletion. All timestamps are stored in UTC.
type RentalRepo struct {
    db *sql.DB
}

// NewRentalRepo returns a new RentalRepo bound to the given database.
func NewRentalRepo(db *sql.DB) *RentalRepo { return &RentalRepo{db: db} }

// DB exposes the underlying handle so callers can start transactions.
func (r *RentalRepo) DB() *sql.DB { return r.db }

// ActiveRentalRef pairs a rental with its car, the unit the
// cascade-cancel procedure works in.
type ActiveRentalRef struct {
    RentalID string
    CarID    string
}

// CreateTx inserts a rental row inside an existing transaction. The
// caller supplies the uuid and must commit or roll back.
func (r *RentalRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *model.Rental) error {
    const q = `INSERT INTO rentals (id, car_id, customer_id, start_date, end_date, status)
               VALUES (?, ?, ?, ?, ?, ?)`
    _, err := tx.ExecContext(ctx, q, rec.ID, rec.CarID, rec.CustomerID,
        rec.StartDate.UTC(), rec.EndDate.UTC(), rec.Status)
    return err
}

// GetByID returns a single rental or ErrRentalNotFound.
func (r *RentalRepo) GetByID(ctx context.Context, id string) (*model.Rental, error) {
    var rec model.Rental
    err := r.db.QueryRowContext(ctx,
        `SELECT id, car_id, customer_id, start_date, end_date, status, created_at
         FROM rentals WHERE id = ?`, id).
        Scan(&rec.ID, &rec.CarID, &rec.CustomerID, &rec.StartDate, &rec.EndDate,
            &rec.Status, &rec.CreatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrRentalNotFound
    }
    if err != nil {
        return nil, err
    }
    return &rec, nil
}

// GetForUpdateTx loads a rental row with a row lock so an administrative
// edit sees the prior status consistently. ErrRentalNotFound when the
// row does not exist.
func (r *RentalRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Rental, error) {
    var rec model.Rental
    err := tx.QueryRowContext(ctx,
        `SELECT id, car_id, customer_id, start_date, end_date, status, created_at
         FROM rentals WHERE id = ? FOR UPDATE`, id).
        Scan(&rec.ID, &rec.CarID, &rec.CustomerID, &rec.StartDate, &rec.EndDate,
            &rec.Status, &rec.CreatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrRentalNotFound
    }
    if err != nil {
        return nil, err
    }
    return &rec, nil
}

// UpdateTx rewrites a rental's dates and status inside an existing
// transaction.
func (r *RentalRepo) UpdateTx(ctx context.Context, tx *sql.Tx, id string, start, end time.Time, status string) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE rentals SET start_date = ?, end_date = ?, status = ? WHERE id = ?`,
        start.UTC(), end.UTC(), status, id)
    return err
}

// ListActiveByCustomerTx returns the customer's active rentals together
// with their car ids, locking the rows for the duration of the
// transaction. The cascade-cancel procedure feeds the result into the
// batch updates.
func (r *RentalRepo) ListActiveByCustomerTx(ctx context.Context, tx *sql.Tx, customerID string) ([]ActiveRentalRef, error) {
    rows, err := tx.QueryContext(ctx,
        `SELECT id, car_id FROM rentals WHERE customer_id = ? AND status = ? FOR UPDATE`,
        customerID, model.RentalActive)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    refs := make([]ActiveRentalRef, 0)
    for rows.Next() {
        var ref ActiveRentalRef
        if err := rows.Scan(&ref.RentalID, &ref.CarID); err != nil {
            return nil, err
        }
        refs = append(refs, ref)
    }
    return refs, rows.Err()
}

// BatchUpdateStatusTx sets the status of several rentals in one
// statement. Passing an empty slice has no effect and returns nil.
func (r *RentalRepo) BatchUpdateStatusTx(ctx context.Context, tx *sql.Tx, rentalIDs []string, status string) error {
    if len(rentalIDs) == 0 {
        return nil
    }
    placeholders := make([]string, 0, len(rentalIDs))
    args := make([]any, 0, len(rentalIDs)+1)
    args = append(args, status)
    for _, id := range rentalIDs {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    q := `UPDATE rentals SET status = ? WHERE id IN (` + strings.Join(placeholders, ",") + `)`
    _, err := tx.ExecContext(ctx, q, args...)
    return err
}

// RentalDetail is the back-office view of a rental: the row itself plus
// the car and customer summaries administrators see in the rentals tab.
type RentalDetail struct {
    ID            string    `json:"id"`
    Status        string    `json:"status"`
    StartDate     time.Time `json:"start_date"`
    EndDate       time.Time `json:"end_date"`
    CarID         string    `json:"car_id"`
    CarMake       string    `json:"car_make"`
    CarModel      string    `json:"car_model"`
    CustomerID    string    `json:"customer_id"`
    CustomerFirst *string   `json:"customer_first_name"`
    CustomerLast  *string   `json:"customer_last_name"`
    CreatedAt     time.Time `json:"created_at"`
}

// ListDetails returns all rentals joined with their car and customer,
// newest first. Customers whose profile has been deleted appear with
// null names (the join is kept LEFT for historical rentals).
func (r *RentalRepo) ListDetails(ctx context.Context) ([]RentalDetail, error) {
    const q = `SELECT r.id, r.status, r.start_date, r.end_date,
                      r.car_id, ca.make, ca.model,
                      r.customer_id, cu.first_name, cu.last_name,
                      r.created_at
               FROM rentals r
               JOIN cars ca ON ca.id = r.car_id
               LEFT JOIN customers cu ON cu.id = r.customer_id
               ORDER BY r.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]RentalDetail, 0)
    for rows.Next() {
        var d RentalDetail
        if err := rows.Scan(&d.ID, &d.Status, &d.StartDate, &d.EndDate,
            &d.CarID, &d.CarMake, &d.CarModel,
            &d.CustomerID, &d.CustomerFirst, &d.CustomerLast,
            &d.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// ListByCustomer returns a customer's rentals, newest first.
func (r *RentalRepo) ListByCustomer(ctx context.Context, customerID string) ([]model.Rental, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, car_id, customer_id, start_date, end_date, status, created_at
         FROM rentals WHERE customer_id = ? ORDER BY created_at DESC`, customerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Rental, 0)
    for rows.Next() {
        var rec model.Rental
        if err := rows.Scan(&rec.ID, &rec.CarID, &rec.CustomerID, &rec.StartDate,
            &rec.EndDate, &rec.Status, &rec.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, rec)
    }
    return out, rows.Err()
}
