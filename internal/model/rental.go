package model

import "time"

// Rental status values.  Exactly one rental may be active per car at a
// time; the guarded car-status update in the booking store enforces it.
const (
    RentalActive    = "active"
    RentalCompleted = "completed"
    RentalCancelled = "cancelled"
)

// Rental records one customer renting one car over a date range.
//
// Fields:
//  ID         – uuid primary key.
//  CarID      – car being rented.
//  CustomerID – renting customer.
//  StartDate  – rental period start (UTC).
//  EndDate    – rental period end (UTC).
//  Status     – one of active, completed, cancelled.
//  CreatedAt  – creation timestamp.
type Rental struct {
    ID         string    // rentals.id
    CarID      string    // rentals.car_id
    CustomerID string    // rentals.customer_id
    StartDate  time.Time // rentals.start_date
    EndDate    time.Time // rentals.end_date
    Status     string    // rentals.status
    CreatedAt  time.Time // rentals.created_at
}
