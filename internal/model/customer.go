package model

import "time"

// Customer is the profile row linked one-to-one with an identity record
// in `users`.  The profile may be deleted while the identity survives;
// the reverse never happens.  Address and licence fields are nullable
// until the customer completes them during their first booking.
//
// Fields:
//  ID            – uuid primary key, equal to the users.id it belongs to.
//  FirstName     – given name.
//  LastName      – family name.
//  LicenceNumber – driving licence number.
//  AddressLine1  – first address line.
//  AddressLine2  – optional second address line.
//  City          – city or town.
//  County        – county.
//  Postcode      – postcode.
//  DateOfBirth   – date of birth as YYYY-MM-DD.
//  Admin         – back-office access flag.
//  CreatedAt     – creation timestamp.
type Customer struct {
    ID            string    // customers.id
    FirstName     *string   // customers.first_name (nullable)
    LastName      *string   // customers.last_name (nullable)
    LicenceNumber *string   // customers.licence_number (nullable)
    AddressLine1  *string   // customers.address_line1 (nullable)
    AddressLine2  *string   // customers.address_line2 (nullable)
    City          *string   // customers.city (nullable)
    County        *string   // customers.county (nullable)
    Postcode      *string   // customers.postcode (nullable)
    DateOfBirth   *string   // customers.date_of_birth (nullable)
    Admin         bool      // customers.admin
    CreatedAt     time.Time // customers.created_at
}
