package booking

import "strings"

// requiredProfileFields are the profile columns a customer must have
// filled before the payment step. address_line2 is deliberately absent.
var requiredProfileFields = []string{
    "first_name",
    "last_name",
    "licence_number",
    "address_line1",
    "city",
    "county",
    "postcode",
    "date_of_birth",
}

// ProfileForm carries the details-step input. Field names double as the
// keys of the validation error map.
type ProfileForm struct {
    FirstName     string `json:"first_name"`
    LastName      string `json:"last_name"`
    LicenceNumber string `json:"licence_number"`
    AddressLine1  string `json:"address_line1"`
    AddressLine2  string `json:"address_line2"`
    City          string `json:"city"`
    County        string `json:"county"`
    Postcode      string `json:"postcode"`
    DateOfBirth   string `json:"date_of_birth"`
}

func (f ProfileForm) value(field string) string {
    switch field {
    case "first_name":
        return f.FirstName
    case "last_name":
        return f.LastName
    case "licence_number":
        return f.LicenceNumber
    case "address_line1":
        return f.AddressLine1
    case "address_line2":
        return f.AddressLine2
    case "city":
        return f.City
    case "county":
        return f.County
    case "postcode":
        return f.Postcode
    case "date_of_birth":
        return f.DateOfBirth
    }
    return ""
}

// ValidateProfile checks every required field and returns a field-keyed
// error map. An empty map means the form is acceptable. Values are
// considered blank when they trim to nothing.
func ValidateProfile(f ProfileForm) map[string]string {
    errs := map[string]string{}
    for _, field := range requiredProfileFields {
        if strings.TrimSpace(f.value(field)) == "" {
            errs[field] = "This field is required"
        }
    }
    return errs
}

// CardForm carries the payment-step input. No card data ever leaves the
// process; capture is simulated.
type CardForm struct {
    CardNumber string `json:"card_number"`
    CardName   string `json:"card_name"`
    ExpiryDate string `json:"expiry_date"`
    CVV        string `json:"cvv"`
}

// ValidateCard checks all four payment fields and reports every failure
// together rather than stopping at the first.
func ValidateCard(f CardForm) map[string]string {
    errs := map[string]string{}
    if strings.TrimSpace(f.CardNumber) == "" {
        errs["card_number"] = "Card number is required"
    }
    if strings.TrimSpace(f.CardName) == "" {
        errs["card_name"] = "Name on card is required"
    }
    if strings.TrimSpace(f.ExpiryDate) == "" {
        errs["expiry_date"] = "Expiry date is required"
    } else if !strings.Contains(f.ExpiryDate, "/") {
        errs["expiry_date"] = "Please use MM/YY format"
    }
    if strings.TrimSpace(f.CVV) == "" {
        errs["cvv"] = "CVV is required"
    } else if len(f.CVV) < 3 {
        errs["cvv"] = "CVV must be at least 3 digits"
    }
    return errs
}

// profileComplete reports whether a stored profile satisfies every
// required field, deciding whether the details step can be skipped.
func profileComplete(fields map[string]*string) bool {
    for _, field := range requiredProfileFields {
        v := fields[field]
        if v == nil || strings.TrimSpace(*v) == "" {
            return false
        }
    }
    return true
}
