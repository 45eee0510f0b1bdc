package model

import "time"

// Insurance is attached one-to-one to a rental at booking submit and is
// never mutated afterwards.  Type is one of basic, standard, premium;
// the validity range mirrors the rental period.
type Insurance struct {
    ID        string    // insurance.id
    RentalID  string    // insurance.rental_id
    Type      string    // insurance.type
    CostPence int64     // insurance.cost_pence
    StartDate time.Time // insurance.start_date
    EndDate   time.Time // insurance.end_date
    CreatedAt time.Time // insurance.created_at
}
