package model

import "time"

// Payment is attached one-to-one to a rental at booking submit.  There
// is no processor integration; the row records the simulated capture.
type Payment struct {
    ID          string    // payments.id
    RentalID    string    // payments.rental_id
    AmountPence int64     // payments.amount_pence
    Date        time.Time // payments.date
    Method      string    // payments.method
    Status      string    // payments.status
    CreatedAt   time.Time // payments.created_at
}
