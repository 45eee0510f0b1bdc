package model

import "time"

// Car status values.  Status is the single mutable field the booking
// workflow and the consistency procedures drive.
const (
    CarAvailable   = "available"
    CarRented      = "rented"
    CarMaintenance = "maintenance"
)

// Car represents a vehicle in the fleet as stored in the `cars` table.
// RatePence is the daily rental rate in pence.
//
// Fields:
//  ID           – uuid primary key.
//  LocationID   – uuid of the branch the car is based at.
//  Make         – manufacturer (e.g. Ford).
//  Model        – model name.
//  Year         – registration year.
//  LicensePlate – unique plate.
//  Colour       – body colour.
//  RatePence    – daily rental rate in pence.
//  Status       – one of available, rented, maintenance.
//  CreatedAt    – creation timestamp.
type Car struct {
    ID           string    // cars.id
    LocationID   string    // cars.location_id
    Make         string    // cars.make
    Model        string    // cars.model
    Year         uint16    // cars.year
    LicensePlate string    // cars.license_plate
    Colour       string    // cars.colour
    RatePence    int64     // cars.rate_pence
    Status       string    // cars.status
    CreatedAt    time.Time // cars.created_at
}
