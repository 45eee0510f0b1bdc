package repository

import (
    "context"
    "database/sql"

    "github.com/avercroft/car-rental-api/internal/model"
)

// ProfileFields carries the editable profile columns for an upsert.
// Blank strings are stored as NULL so an incomplete profile keeps
// reporting the fields it is missing.
type ProfileFields struct {
    FirstName     string `json:"first_name"`
    LastName      string `json:"last_name"`
    LicenceNumber string `json:"licence_number"`
    AddressLine1  string `json:"address_line1"`
    AddressLine2  string `json:"address_line2"`
    City          string `json:"city"`
    County        string `json:"county"`
    Postcode      string `json:"postcode"`
    DateOfBirth   string `json:"date_of_birth"`
}

// CustomerRepo provides access to the customers table. A customer row
// is keyed by the identity id from users; the row may be deleted while
// the identity remains.
type CustomerRepo struct {
    db *sql.DB
}

// NewCustomerRepo returns a CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// DB exposes the underlying handle so callers can start transactions.
func (r *CustomerRepo) DB() *sql.DB { return r.db }

const customerCols = `id, first_name, last_name, licence_number, address_line1, address_line2,
       city, county, postcode, date_of_birth, admin, created_at`

func scanCustomer(row interface{ Scan(...any) error }) (*model.Customer, error) {
    var c model.Customer
    err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.LicenceNumber,
        &c.AddressLine1, &c.AddressLine2, &c.City, &c.County, &c.Postcode,
        &c.DateOfBirth, &c.Admin, &c.CreatedAt)
    if err != nil {
        return nil, err
    }
    return &c, nil
}

// CreateBlankTx inserts an empty profile row for a freshly registered
// identity. All profile fields start NULL; the booking details step or
// the profile page fills them in later.
func (r *CustomerRepo) CreateBlankTx(ctx context.Context, tx *sql.Tx, id string) error {
    _, err := tx.ExecContext(ctx, `INSERT INTO customers (id, admin) VALUES (?, FALSE)`, id)
    return err
}

// GetByID returns the profile for the given identity id. It returns
// ErrCustomerNotFound when the profile row has been deleted.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*model.Customer, error) {
    c, err := scanCustomer(r.db.QueryRowContext(ctx,
        `SELECT `+customerCols+` FROM customers WHERE id = ?`, id))
    if err == sql.ErrNoRows {
        return nil, ErrCustomerNotFound
    }
    return c, err
}

// Upsert writes the editable profile fields for the given identity id,
// inserting the row when it does not exist yet. Blank strings become
// NULL. The admin flag is left untouched.
func (r *CustomerRepo) Upsert(ctx context.Context, id string, f ProfileFields) error {
    const q = `INSERT INTO customers
                 (id, first_name, last_name, licence_number, address_line1, address_line2,
                  city, county, postcode, date_of_birth)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
               ON DUPLICATE KEY UPDATE
                 first_name=VALUES(first_name), last_name=VALUES(last_name),
                 licence_number=VALUES(licence_number), address_line1=VALUES(address_line1),
                 address_line2=VALUES(address_line2), city=VALUES(city), county=VALUES(county),
                 postcode=VALUES(postcode), date_of_birth=VALUES(date_of_birth)`
    _, err := r.db.ExecContext(ctx, q, id,
        nullable(f.FirstName), nullable(f.LastName), nullable(f.LicenceNumber),
        nullable(f.AddressLine1), nullable(f.AddressLine2), nullable(f.City),
        nullable(f.County), nullable(f.Postcode), nullable(f.DateOfBirth))
    return err
}

// SetAdmin flips the back-office flag for a customer.
func (r *CustomerRepo) SetAdmin(ctx context.Context, id string, admin bool) error {
    res, err := r.db.ExecContext(ctx, `UPDATE customers SET admin = ? WHERE id = ?`, admin, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        // RowsAffected is also 0 when the flag already had that value,
        // so confirm the row really is missing.
        var exists int
        if err := r.db.QueryRowContext(ctx,
            `SELECT 1 FROM customers WHERE id = ?`, id).Scan(&exists); err == sql.ErrNoRows {
            return ErrCustomerNotFound
        }
    }
    return nil
}

// List returns all profiles ordered by creation time descending.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+customerCols+` FROM customers ORDER BY created_at DESC`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Customer, 0)
    for rows.Next() {
        c, err := scanCustomer(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *c)
    }
    return out, rows.Err()
}

// DeleteTx removes the profile row inside an existing transaction. The
// identity record in users is never touched here; cascade-cancel of the
// customer's rentals must already have happened earlier in the same
// transaction.
func (r *CustomerRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id string) error {
    res, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrCustomerNotFound
    }
    return nil
}

// nullable maps blank strings to NULL.
func nullable(s string) any {
    if s == "" {
        return nil
    }
    return s
}
