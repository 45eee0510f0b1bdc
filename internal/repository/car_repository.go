package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/avercroft/car-rental-api/internal/model"
)

// CarRepo provides CRUD operations for the cars table plus the status
// updates the booking workflow and the consistency procedures depend
// on. All timestamp fields are stored in UTC.
type CarRepo struct {
    db *sql.DB
}

// NewCarRepo returns a new CarRepo bound to the given database.
func NewCarRepo(db *sql.DB) *CarRepo { return &CarRepo{db: db} }

// DB exposes the underlying handle so callers can start transactions.
func (r *CarRepo) DB() *sql.DB { return r.db }

const carCols = `id, location_id, make, model, year, license_plate, colour, rate_pence, status, created_at`

func scanCar(row interface{ Scan(...any) error }) (*model.Car, error) {
    var c model.Car
    err := row.Scan(&c.ID, &c.LocationID, &c.Make, &c.Model, &c.Year,
        &c.LicensePlate, &c.Colour, &c.RatePence, &c.Status, &c.CreatedAt)
    if err != nil {
        return nil, err
    }
    return &c, nil
}

// GetByID returns a single car or ErrCarNotFound.
func (r *CarRepo) GetByID(ctx context.Context, id string) (*model.Car, error) {
    c, err := scanCar(r.db.QueryRowContext(ctx,
        `SELECT `+carCols+` FROM cars WHERE id = ?`, id))
    if err == sql.ErrNoRows {
        return nil, ErrCarNotFound
    }
    return c, err
}

// List returns cars ordered by make/model. Either filter may be empty;
// status filters on the exact status value and locationID on the branch.
func (r *CarRepo) List(ctx context.Context, status, locationID string) ([]model.Car, error) {
    q := `SELECT ` + carCols + ` FROM cars`
    var conds []string
    var args []any
    if status != "" {
        conds = append(conds, "status = ?")
        args = append(args, status)
    }
    if locationID != "" {
        conds = append(conds, "location_id = ?")
        args = append(args, locationID)
    }
    if len(conds) > 0 {
        q += " WHERE " + strings.Join(conds, " AND ")
    }
    q += " ORDER BY make, model"
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Car, 0)
    for rows.Next() {
        c, err := scanCar(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *c)
    }
    return out, rows.Err()
}

// Create inserts a new car row. The caller supplies the uuid.
func (r *CarRepo) Create(ctx context.Context, c *model.Car) error {
    const q = `INSERT INTO cars (id, location_id, make, model, year, license_plate, colour, rate_pence, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
    _, err := r.db.ExecContext(ctx, q, c.ID, c.LocationID, c.Make, c.Model,
        c.Year, c.LicensePlate, c.Colour, c.RatePence, c.Status)
    return err
}

// Update rewrites the editable columns of a car, including its status.
// Administrators use this for ordinary edits and for moving a car in or
// out of maintenance.
func (r *CarRepo) Update(ctx context.Context, c *model.Car) error {
    const q = `UPDATE cars SET location_id=?, make=?, model=?, year=?, license_plate=?,
                              colour=?, rate_pence=?, status=? WHERE id=?`
    res, err := r.db.ExecContext(ctx, q, c.LocationID, c.Make, c.Model, c.Year,
        c.LicensePlate, c.Colour, c.RatePence, c.Status, c.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var exists int
        if err := r.db.QueryRowContext(ctx,
            `SELECT 1 FROM cars WHERE id = ?`, c.ID).Scan(&exists); err == sql.ErrNoRows {
            return ErrCarNotFound
        }
    }
    return nil
}

// Delete removes a car. Cars with rental history cannot be deleted;
// the foreign key violation is surfaced as ErrConflict.
func (r *CarRepo) Delete(ctx context.Context, id string) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id)
    if err != nil {
        // 1451: row is referenced by rentals or maintenance entries
        if strings.Contains(err.Error(), "1451") {
            return ErrConflict
        }
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrCarNotFound
    }
    return nil
}

// MarkRentedTx flips a car from available to rented inside an existing
// transaction. The WHERE guard makes the update an optimistic check:
// zero affected rows means another booking got there first (or the car
// was pulled into maintenance) and the caller must roll back.
func (r *CarRepo) MarkRentedTx(ctx context.Context, tx *sql.Tx, carID string) error {
    res, err := tx.ExecContext(ctx,
        `UPDATE cars SET status = ? WHERE id = ? AND status = ?`,
        model.CarRented, carID, model.CarAvailable)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrCarUnavailable
    }
    return nil
}

// UpdateStatusTx sets a single car's status inside an existing
// transaction, used when completing or cancelling a rental frees the
// car.
func (r *CarRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, carID, status string) error {
    _, err := tx.ExecContext(ctx, `UPDATE cars SET status = ? WHERE id = ?`, status, carID)
    return err
}

// BatchUpdateStatusTx sets the status of several cars in one statement.
// Passing an empty slice has no effect and returns nil.
func (r *CarRepo) BatchUpdateStatusTx(ctx context.Context, tx *sql.Tx, carIDs []string, status string) error {
    if len(carIDs) == 0 {
        return nil
    }
    placeholders := make([]string, 0, len(carIDs))
    args := make([]any, 0, len(carIDs)+1)
    args = append(args, status)
    for _, id := range carIDs {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    q := `UPDATE cars SET status = ? WHERE id IN (` + strings.Join(placeholders, ",") + `)`
    _, err := tx.ExecContext(ctx, q, args...)
    return err
}
