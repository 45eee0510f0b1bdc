package model

import "time"

// MaintenanceEntry records work done on a car.  Putting a car into the
// maintenance status is an ordinary car update; these rows are the log.
type MaintenanceEntry struct {
    ID          uint64    // maintenance.id
    CarID       string    // maintenance.car_id
    Date        time.Time // maintenance.date
    Description string    // maintenance.description
    CostPence   int64     // maintenance.cost_pence
    Type        string    // maintenance.type
    CreatedAt   time.Time // maintenance.created_at
}
