package repository

import (
    "context"
    "database/sql"

    "github.com/avercroft/car-rental-api/internal/model"
)

// MaintenanceRepo records work done on cars. Entries are append-only.
type MaintenanceRepo struct {
    db *sql.DB
}

// NewMaintenanceRepo returns a MaintenanceRepo bound to the given database.
func NewMaintenanceRepo(db *sql.DB) *MaintenanceRepo { return &MaintenanceRepo{db: db} }

// Create appends a maintenance entry and populates the generated id.
func (r *MaintenanceRepo) Create(ctx context.Context, rec *model.MaintenanceEntry) error {
    const q = `INSERT INTO maintenance (car_id, date, description, cost_pence, type)
               VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, rec.CarID, rec.Date.UTC(),
        rec.Description, rec.CostPence, rec.Type)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rec.ID = uint64(id)
    return nil
}

// ListByCar returns a car's maintenance history, newest first.
func (r *MaintenanceRepo) ListByCar(ctx context.Context, carID string) ([]model.MaintenanceEntry, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, car_id, date, description, cost_pence, type, created_at
         FROM maintenance WHERE car_id = ? ORDER BY date DESC`, carID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.MaintenanceEntry, 0)
    for rows.Next() {
        var m model.MaintenanceEntry
        if err := rows.Scan(&m.ID, &m.CarID, &m.Date, &m.Description,
            &m.CostPence, &m.Type, &m.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    return out, rows.Err()
}
