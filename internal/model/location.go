package model

import "time"

// Location is static reference data describing a branch a car is based
// at.  Rows are created by administrators and rarely change.
type Location struct {
    ID           string    // locations.id
    Name         string    // locations.name
    AddressLine1 string    // locations.address_line1
    AddressLine2 string    // locations.address_line2
    City         string    // locations.city
    County       string    // locations.county
    Postcode     string    // locations.postcode
    PhoneNumber  string    // locations.phone_number
    CreatedAt    time.Time // locations.created_at
}
