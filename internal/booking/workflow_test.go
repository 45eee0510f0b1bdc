package booking_test

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/avercroft/car-rental-api/internal/booking"
    "github.com/avercroft/car-rental-api/internal/model"
    "github.com/avercroft/car-rental-api/internal/repository"
)

type storeMock struct {
    getCarFn        func(ctx context.Context, carID string) (*model.Car, error)
    fetchProfileFn  func(ctx context.Context, customerID string) (*model.Customer, error)
    upsertProfileFn func(ctx context.Context, customerID string, form booking.ProfileForm) error
    createBookingFn func(ctx context.Context, b *booking.Booking) (string, error)
}

var _ booking.Store = (*storeMock)(nil)

func (m *storeMock) GetCar(ctx context.Context, carID string) (*model.Car, error) {
    if m.getCarFn == nil {
        return availableCar(carID), nil
    }
    return m.getCarFn(ctx, carID)
}

func (m *storeMock) FetchProfile(ctx context.Context, customerID string) (*model.Customer, error) {
    if m.fetchProfileFn == nil {
        return nil, repository.ErrCustomerNotFound
    }
    return m.fetchProfileFn(ctx, customerID)
}

func (m *storeMock) UpsertProfile(ctx context.Context, customerID string, form booking.ProfileForm) error {
    if m.upsertProfileFn == nil {
        return nil
    }
    return m.upsertProfileFn(ctx, customerID, form)
}

func (m *storeMock) CreateBooking(ctx context.Context, b *booking.Booking) (string, error) {
    if m.createBookingFn == nil {
        return "rental-1", nil
    }
    return m.createBookingFn(ctx, b)
}

func availableCar(id string) *model.Car {
    return &model.Car{
        ID:        id,
        Make:      "Ford",
        Model:     "Focus",
        RatePence: 5000,
        Status:    model.CarAvailable,
    }
}

func completeCustomer(id string) *model.Customer {
    s := func(v string) *string { return &v }
    return &model.Customer{
        ID:            id,
        FirstName:     s("Ada"),
        LastName:      s("Lovelace"),
        LicenceNumber: s("LOVEL901156AL9AB"),
        AddressLine1:  s("12 Analytical Row"),
        City:          s("London"),
        County:        s("Greater London"),
        Postcode:      s("EC1A 1BB"),
        DateOfBirth:   s("1990-12-10"),
    }
}

func validCard() booking.CardForm {
    return booking.CardForm{
        CardNumber: "4929123456781234",
        CardName:   "A LOVELACE",
        ExpiryDate: "12/30",
        CVV:        "123",
    }
}

func validProfileForm() booking.ProfileForm {
    return booking.ProfileForm{
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

var (
    start = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
    end   = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
)

func TestOpenRejectsUnavailableCar(t *testing.T) {
    e := booking.NewEngine(&storeMock{
        getCarFn: func(ctx context.Context, carID string) (*model.Car, error) {
            c := availableCar(carID)
            c.Status = model.CarRented
            return c, nil
        },
    })
    _, err := e.Open(context.Background(), "cust", "car")
    require.Error(t, err)
}

func TestOpenStartsAtDates(t *testing.T) {
    e := booking.NewEngine(&storeMock{})
    v, err := e.Open(context.Background(), "cust", "car")
    require.NoError(t, err)
    require.Equal(t, booking.StepDates, v.Step)
    require.False(t, v.HasRequiredDetails)
}

func TestSelectDatesRoutesThroughDetails(t *testing.T) {
    e := booking.NewEngine(&storeMock{})
    _, err := e.Open(context.Background(), "cust", "car")
    require.NoError(t, err)

    v, err := e.SelectDates("cust", "car", booking.TierBasic, start, end)
    require.NoError(t, err)
    require.Equal(t, booking.StepDetails, v.Step)
    require.Equal(t, int64(3), v.Price.Days)
    require.Equal(t, int64(4500), v.Price.InsurancePence)
    require.Equal(t, int64(19500), v.Price.TotalPence)
}

func TestSelectDatesSkipsDetailsForCompleteProfile(t *testing.T) {
    e := booking.NewEngine(&storeMock{
        fetchProfileFn: func(ctx context.Context, customerID string) (*model.Customer, error) {
            return completeCustomer(customerID), nil
        },
    })
    _, err := e.Open(context.Background(), "cust", "car")
    require.NoError(t, err)

    v, err := e.SelectDates("cust", "car", booking.TierStandard, start, end)
    require.NoError(t, err)
    require.Equal(t, booking.StepPayment, v.Step)
}

func TestSelectDatesRejectsBadInput(t *testing.T) {
    e := booking.NewEngine(&storeMock{})
    _, err := e.Open(context.Background(), "cust", "car")
    require.NoError(t, err)

    _, err = e.SelectDates("cust", "car", "platinum", start, end)
    require.ErrorIs(t, err, booking.ErrInvalidTier)

    _, err = e.SelectDates("cust", "car", booking.TierBasic, start, start)
    require.ErrorIs(t, err, booking.ErrInvalidPeriod)

    _, err = e.SelectDates("cust", "car", booking.TierBasic, end, start)
    require.ErrorIs(t, err, booking.ErrInvalidPeriod)
}

func TestStepOrderEnforced(t *testing.T) {
    e := booking.NewEngine(&storeMock{})
    ctx := context.Background()
    _, err := e.Open(ctx, "cust", "car")
    require.NoError(t, err)

    // Payment before dates were chosen.
    _, _, err = e.EnterPayment("cust", "car", validCard())
    require.ErrorIs(t, err, booking.ErrWrongStep)

    // Submit straight from dates.
    _, _, err = e.Submit(ctx, "cust", "car")
    require.ErrorIs(t, err, booking.ErrWrongStep)

    // Details twice: second save is no longer the current step.
    _, err = e.SelectDates("cust", "car", booking.TierBasic, start, end)
    require.NoError(t, err)
    _, _, err = e.SaveDetails(ctx, "cust", "car", validProfileForm())
    require.NoError(t, err)
    _, _, err = e.SaveDetails(ctx, "cust", "car", validProfileForm())
    require.ErrorIs(t, err, booking.ErrWrongStep)
}

func TestSaveDetailsValidation(t *testing.T) {
    upserts := 0
    e := booking.NewEngine(&storeMock{
        upsertProfileFn: func(ctx context.Context, customerID string, form booking.ProfileForm) error {
            upserts++
            return nil
        },
    })
    ctx := context.Background()
    _, err := e.Open(ctx, "cust", "car")
    require.NoError(t, err)
    _, err = e.SelectDates("cust", "car", booking.TierBasic, start, end)
    require.NoError(t, err)

    v, fieldErrs, err := e.SaveDetails(ctx, "cust", "car", booking.ProfileForm{FirstName: "Ada"})
    require.ErrorIs(t, err, booking.ErrProfileInvalid)
    require.Equal(t, "This field is required", fieldErrs["last_name"])
    require.Equal(t, booking.StepDetails, v.Step) // no transition on failure
    require.Zero(t, upserts)

    v, _, err = e.SaveDetails(ctx, "cust", "car", validProfileForm())
    require.NoError(t, err)
    require.Equal(t, booking.StepPayment, v.Step)
    require.Equal(t, 1, upserts)
}

func TestEnterPaymentValidation(t *testing.T) {
    e := booking.NewEngine(&storeMock{
        fetchProfileFn: func(ctx context.Context, customerID string) (*model.Customer, error) {
            return completeCustomer(customerID), nil
        },
    })
    ctx := context.Background()
    _, err := e.Open(ctx, "cust", "car")
    require.NoError(t, err)
    _, err = e.SelectDates("cust", "car", booking.TierBasic, start, end)
    require.NoError(t, err)

    form := validCard()
    form.ExpiryDate = "1230"
    form.CVV = "12"
    v, fieldErrs, err := e.EnterPayment("cust", "car", form)
    require.ErrorIs(t, err, booking.ErrCardInvalid)
    require.Equal(t, "Please use MM/YY format", fieldErrs["expiry_date"])
    require.Equal(t, "CVV must be at least 3 digits", fieldErrs["cvv"])
    require.Equal(t, booking.StepPayment, v.Step)

    v, _, err = e.EnterPayment("cust", "car", validCard())
    require.NoError(t, err)
    require.Equal(t, booking.StepConfirmation, v.Step)
}

// driveToConfirmation opens a session with a complete profile and walks
// it to the confirmation step.
func driveToConfirmation(t *testing.T, store *storeMock) *booking.Engine {
    t.Helper()
    if store.fetchProfileFn == nil {
        store.fetchProfileFn = func(ctx context.Context, customerID string) (*model.Customer, error) {
            return completeCustomer(customerID), nil
        }
    }
    e := booking.NewEngine(store)
    ctx := context.Background()
    _, err := e.Open(ctx, "cust", "car")
    require.NoError(t, err)
    _, err = e.SelectDates("cust", "car", booking.TierBasic, start, end)
    require.NoError(t, err)
    _, _, err = e.EnterPayment("cust", "car", validCard())
    require.NoError(t, err)
    return e
}

func TestSubmitPersistsBundleAndClosesSession(t *testing.T) {
    var got *booking.Booking
    e := driveToConfirmation(t, &storeMock{
        createBookingFn: func(ctx context.Context, b *booking.Booking) (string, error) {
            got = b
            return "rental-42", nil
        },
    })
    ctx := context.Background()

    rentalID, b, err := e.Submit(ctx, "cust", "car")
    require.NoError(t, err)
    require.Equal(t, "rental-42", rentalID)
    require.Equal(t, got, b)
    require.Equal(t, int64(4500), got.InsurancePence)
    require.Equal(t, int64(19500), got.TotalPence)

    // Session is gone; a second submit has nothing to act on.
    _, _, err = e.Submit(ctx, "cust", "car")
    require.ErrorIs(t, err, booking.ErrNoSession)
}

func TestSubmitFailureKeepsSessionForRetry(t *testing.T) {
    calls := 0
    e := driveToConfirmation(t, &storeMock{
        createBookingFn: func(ctx context.Context, b *booking.Booking) (string, error) {
            calls++
            if calls == 1 {
                return "", repository.ErrCarUnavailable
            }
            return "rental-42", nil
        },
    })
    ctx := context.Background()

    _, _, err := e.Submit(ctx, "cust", "car")
    require.ErrorIs(t, err, repository.ErrCarUnavailable)

    // Still at confirmation; a manual retry may go through.
    v, err := e.Summary("cust", "car")
    require.NoError(t, err)
    require.Equal(t, booking.StepConfirmation, v.Step)

    rentalID, _, err := e.Submit(ctx, "cust", "car")
    require.NoError(t, err)
    require.Equal(t, "rental-42", rentalID)
}

func TestSubmitBlocksWhileInFlight(t *testing.T) {
    store := &storeMock{}
    var e *booking.Engine
    store.createBookingFn = func(ctx context.Context, b *booking.Booking) (string, error) {
        // A second submit issued while the first is still writing.
        _, _, err := e.Submit(ctx, "cust", "car")
        if !errors.Is(err, booking.ErrSubmitting) {
            t.Errorf("concurrent submit: got %v, want ErrSubmitting", err)
        }
        return "rental-42", nil
    }
    e = driveToConfirmation(t, store)

    rentalID, _, err := e.Submit(context.Background(), "cust", "car")
    require.NoError(t, err)
    require.Equal(t, "rental-42", rentalID)
}

func TestReopenDuringSubmitKeepsFreshSession(t *testing.T) {
    store := &storeMock{}
    var e *booking.Engine
    store.createBookingFn = func(ctx context.Context, b *booking.Booking) (string, error) {
        // The customer restarts the wizard while the write is in flight.
        _, err := e.Open(ctx, "cust", "car")
        require.NoError(t, err)
        return "rental-42", nil
    }
    e = driveToConfirmation(t, store)

    rentalID, _, err := e.Submit(context.Background(), "cust", "car")
    require.NoError(t, err)
    require.Equal(t, "rental-42", rentalID)

    // The session opened mid-submit must survive the submit's cleanup.
    v, err := e.Summary("cust", "car")
    require.NoError(t, err)
    require.Equal(t, booking.StepDates, v.Step)
}

func TestReopenResetsSession(t *testing.T) {
    e := driveToConfirmation(t, &storeMock{})

    v, err := e.Open(context.Background(), "cust", "car")
    require.NoError(t, err)
    require.Equal(t, booking.StepDates, v.Step)
    require.True(t, v.StartDate.IsZero())
    require.Zero(t, v.Price.TotalPence)

    // The old confirmation state is gone: submit is now a wrong step.
    _, _, err = e.Submit(context.Background(), "cust", "car")
    require.ErrorIs(t, err, booking.ErrWrongStep)
}

func TestCloseDropsSession(t *testing.T) {
    e := booking.NewEngine(&storeMock{})
    _, err := e.Open(context.Background(), "cust", "car")
    require.NoError(t, err)

    e.Close("cust", "car")
    _, err = e.Summary("cust", "car")
    require.ErrorIs(t, err, booking.ErrNoSession)
}

func TestSessionsAreKeyedPerCustomerAndCar(t *testing.T) {
    e := booking.NewEngine(&storeMock{})
    ctx := context.Background()
    _, err := e.Open(ctx, "cust-a", "car-1")
    require.NoError(t, err)
    _, err = e.Open(ctx, "cust-b", "car-1")
    require.NoError(t, err)

    _, err = e.SelectDates("cust-a", "car-1", booking.TierBasic, start, end)
    require.NoError(t, err)

    // cust-b's session is untouched by cust-a's progress.
    v, err := e.Summary("cust-b", "car-1")
    require.NoError(t, err)
    require.Equal(t, booking.StepDates, v.Step)
}
