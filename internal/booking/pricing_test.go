package booking

import (
    "testing"
    "time"
)

func day(s string) time.Time {
    t, err := time.Parse("2006-01-02", s)
    if err != nil {
        panic(err)
    }
    return t
}

func TestRentalDays(t *testing.T) {
    cases := []struct {
        name  string
        start time.Time
        end   time.Time
        want  int64
    }{
        {"exact three days", day("2026-03-01"), day("2026-03-04"), 3},
        {"one day", day("2026-03-01"), day("2026-03-02"), 1},
        {"fraction rounds up", day("2026-03-01"), day("2026-03-02").Add(6 * time.Hour), 2},
        {"same instant", day("2026-03-01"), day("2026-03-01"), 0},
        {"end before start", day("2026-03-04"), day("2026-03-01"), -3},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := RentalDays(tc.start, tc.end); got != tc.want {
                t.Fatalf("RentalDays = %d, want %d", got, tc.want)
            }
        })
    }
}

func TestTierDayRatePence(t *testing.T) {
    for tier, want := range map[string]int64{
        TierBasic:    1500,
        TierStandard: 2500,
        TierPremium:  4000,
    } {
        got, ok := TierDayRatePence(tier)
        if !ok || got != want {
            t.Fatalf("TierDayRatePence(%q) = %d,%v; want %d,true", tier, got, ok, want)
        }
    }
    if _, ok := TierDayRatePence("platinum"); ok {
        t.Fatal("unknown tier must not resolve to a rate")
    }
}

func TestPriceRental(t *testing.T) {
    // £50/day car, basic tier, three days: insurance 3×£15, total £195.
    q := PriceRental(5000, TierBasic, day("2026-03-01"), day("2026-03-04"))
    if q.Days != 3 {
        t.Fatalf("days = %d, want 3", q.Days)
    }
    if q.InsurancePence != 4500 {
        t.Fatalf("insurance = %d, want 4500", q.InsurancePence)
    }
    if q.TotalPence != 19500 {
        t.Fatalf("total = %d, want 19500", q.TotalPence)
    }
}

func TestPriceRentalChargesPartialDayAsFull(t *testing.T) {
    start := day("2026-03-01")
    end := start.Add(24*time.Hour + time.Minute)
    q := PriceRental(2000, TierPremium, start, end)
    if q.Days != 2 {
        t.Fatalf("days = %d, want 2", q.Days)
    }
    if q.TotalPence != 2*2000+2*4000 {
        t.Fatalf("total = %d, want %d", q.TotalPence, 2*2000+2*4000)
    }
}
