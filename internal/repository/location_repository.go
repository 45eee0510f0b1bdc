package repository

import (
    "context"
    "database/sql"

    "github.com/avercroft/car-rental-api/internal/model"
)

// LocationRepo provides access to the static locations reference table.
type LocationRepo struct {
    db *sql.DB
}

// NewLocationRepo returns a LocationRepo bound to the given database.
func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

const locationCols = `id, name, address_line1, address_line2, city, county, postcode, phone_number, created_at`

// List returns all locations ordered by name.
func (r *LocationRepo) List(ctx context.Context) ([]model.Location, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+locationCols+` FROM locations ORDER BY name`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Location, 0)
    for rows.Next() {
        var l model.Location
        if err := rows.Scan(&l.ID, &l.Name, &l.AddressLine1, &l.AddressLine2,
            &l.City, &l.County, &l.Postcode, &l.PhoneNumber, &l.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, l)
    }
    return out, rows.Err()
}

// GetByID returns a single location or ErrLocationNotFound.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*model.Location, error) {
    var l model.Location
    err := r.db.QueryRowContext(ctx,
        `SELECT `+locationCols+` FROM locations WHERE id = ?`, id).
        Scan(&l.ID, &l.Name, &l.AddressLine1, &l.AddressLine2,
            &l.City, &l.County, &l.Postcode, &l.PhoneNumber, &l.CreatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrLocationNotFound
    }
    if err != nil {
        return nil, err
    }
    return &l, nil
}

// Create inserts a location row. The caller supplies the uuid.
func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
    const q = `INSERT INTO locations (id, name, address_line1, address_line2, city, county, postcode, phone_number)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    _, err := r.db.ExecContext(ctx, q, l.ID, l.Name, l.AddressLine1, l.AddressLine2,
        l.City, l.County, l.Postcode, l.PhoneNumber)
    return err
}
