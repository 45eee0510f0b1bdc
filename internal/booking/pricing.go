package booking

import (
    "time"
)

// Insurance tiers offered during booking. Each tier carries a fixed
// daily rate; there is no other pricing input.
const (
    TierBasic    = "basic"
    TierStandard = "standard"
    TierPremium  = "premium"
)

// Daily insurance rates in pence (£15 / £25 / £40).
const (
    basicDayRate    = 1500
    standardDayRate = 2500
    premiumDayRate  = 4000
)

// TierDayRatePence returns the daily insurance rate for a tier. The
// second return value is false for unknown tiers.
func TierDayRatePence(tier string) (int64, bool) {
    switch tier {
    case TierBasic:
        return basicDayRate, true
    case TierStandard:
        return standardDayRate, true
    case TierPremium:
        return premiumDayRate, true
    }
    return 0, false
}

// RentalDays computes the chargeable day count for a period:
// ceil((end-start)/24h). A period of exactly N days charges N; any
// extra fraction of a day charges one more.
func RentalDays(start, end time.Time) int64 {
    d := end.Sub(start)
    days := int64(d / (24 * time.Hour))
    if d%(24*time.Hour) > 0 {
        days++
    }
    return days
}

// Quote is the priced summary of a prospective rental.
type Quote struct {
    Days           int64 `json:"days"`
    DayRatePence   int64 `json:"day_rate_pence"`
    InsurancePence int64 `json:"insurance_pence"`
    TotalPence     int64 `json:"total_pence"`
}

// PriceRental computes the quote for a car's daily rate, a tier and a
// period: insurance = tierRate×days, total = days×rate + insurance.
// Callers must have validated the tier and that the period yields at
// least one day.
func PriceRental(ratePence int64, tier string, start, end time.Time) Quote {
    days := RentalDays(start, end)
    tierRate, _ := TierDayRatePence(tier)
    insurance := tierRate * days
    return Quote{
        Days:           days,
        DayRatePence:   ratePence,
        InsurancePence: insurance,
        TotalPence:     days*ratePence + insurance,
    }
}
