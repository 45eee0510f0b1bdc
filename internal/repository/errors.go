// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let handlers distinguish failure
// scenarios: ErrConflict means dependent records block an operation
// (e.g. deleting a car that still has rentals), and ErrCarUnavailable
// means a guarded status update found the car already taken by another
// booking.
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as deleting a car with rental
// history. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrCarUnavailable is returned by the guarded car-status update when
// the car is no longer in the available state. A booking submit that
// hits this must roll back its whole write bundle.
var ErrCarUnavailable = errors.New("car unavailable")

// ErrCarNotFound is returned when a car lookup matches no row.
var ErrCarNotFound = errors.New("car not found")

// ErrCustomerNotFound is returned when a customer profile lookup or
// delete matches no row. The identity record may still exist.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrRentalNotFound is returned when a rental lookup matches no row.
var ErrRentalNotFound = errors.New("rental not found")

// ErrLocationNotFound is returned when a location lookup matches no row.
var ErrLocationNotFound = errors.New("location not found")
