// Package queue defines the messages exchanged over the broker and the
// background consumer that records confirmed rentals to logs/rental.log.
package queue

// RentalConfirmedEvent is published when a booking submit succeeds. It
// carries enough information for downstream consumers to log, notify or
// feed analytics without querying the primary database.
type RentalConfirmedEvent struct {
    RentalID       string `json:"rental_id"`
    CustomerID     string `json:"customer_id"`
    CarID          string `json:"car_id"`
    Make           string `json:"make"`
    Model          string `json:"model"`
    StartDate      string `json:"start_date"`
    EndDate        string `json:"end_date"`
    Days           int64  `json:"days"`
    Tier           string `json:"tier"`
    InsurancePence int64  `json:"insurance_pence"`
    TotalPence     int64  `json:"total_pence"`
    ConfirmedAt    string `json:"confirmed_at"`
}
