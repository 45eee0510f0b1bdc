package booking

import "testing"

func completeProfileForm() ProfileForm {
    return ProfileForm{
        FirstName:     "Ada",
        LastName:      "Lovelace",
        LicenceNumber: "LOVEL901156AL9AB",
        AddressLine1:  "12 Analytical Row",
        City:          "London",
        County:        "Greater London",
        Postcode:      "EC1A 1BB",
        DateOfBirth:   "1990-12-10",
    }
}

func TestValidateProfileComplete(t *testing.T) {
    if errs := ValidateProfile(completeProfileForm()); len(errs) != 0 {
        t.Fatalf("expected no errors, got %v", errs)
    }
}

func TestValidateProfileReportsEveryBlankField(t *testing.T) {
    errs := ValidateProfile(ProfileForm{})
    if len(errs) != len(requiredProfileFields) {
        t.Fatalf("got %d errors, want %d: %v", len(errs), len(requiredProfileFields), errs)
    }
    for _, field := range requiredProfileFields {
        if errs[field] != "This field is required" {
            t.Fatalf("field %q: got %q", field, errs[field])
        }
    }
}

func TestValidateProfileWhitespaceIsBlank(t *testing.T) {
    f := completeProfileForm()
    f.City = "   "
    errs := ValidateProfile(f)
    if errs["city"] != "This field is required" {
        t.Fatalf("whitespace city not rejected: %v", errs)
    }
    if len(errs) != 1 {
        t.Fatalf("expected only city to fail, got %v", errs)
    }
}

func TestValidateProfileSecondAddressLineOptional(t *testing.T) {
    f := completeProfileForm()
    f.AddressLine2 = ""
    if errs := ValidateProfile(f); len(errs) != 0 {
        t.Fatalf("address_line2 must be optional, got %v", errs)
    }
}

func TestValidateCardAllFieldsChecked(t *testing.T) {
    errs := ValidateCard(CardForm{})
    want := map[string]string{
        "card_number": "Card number is required",
        "card_name":   "Name on card is required",
        "expiry_date": "Expiry date is required",
        "cvv":         "CVV is required",
    }
    if len(errs) != len(want) {
        t.Fatalf("got %d errors, want %d: %v", len(errs), len(want), errs)
    }
    for field, msg := range want {
        if errs[field] != msg {
            t.Fatalf("field %q: got %q, want %q", field, errs[field], msg)
        }
    }
}

func TestValidateCardExpiryFormat(t *testing.T) {
    errs := ValidateCard(CardForm{
        CardNumber: "4929123456781234",
        CardName:   "A LOVELACE",
        ExpiryDate: "1230",
        CVV:        "123",
    })
    if errs["expiry_date"] != "Please use MM/YY format" {
        t.Fatalf("got %v", errs)
    }
    if len(errs) != 1 {
        t.Fatalf("only expiry should fail, got %v", errs)
    }
}

func TestValidateCardShortCVV(t *testing.T) {
    errs := ValidateCard(CardForm{
        CardNumber: "4929123456781234",
        CardName:   "A LOVELACE",
        ExpiryDate: "12/30",
        CVV:        "12",
    })
    if errs["cvv"] != "CVV must be at least 3 digits" {
        t.Fatalf("got %v", errs)
    }
}

func TestProfileComplete(t *testing.T) {
    full := map[string]*string{}
    for _, f := range requiredProfileFields {
        v := "x"
        full[f] = &v
    }
    if !profileComplete(full) {
        t.Fatal("complete profile reported incomplete")
    }
    blank := " "
    full["postcode"] = &blank
    if profileComplete(full) {
        t.Fatal("whitespace postcode reported complete")
    }
    full["postcode"] = nil
    if profileComplete(full) {
        t.Fatal("nil postcode reported complete")
    }
}
