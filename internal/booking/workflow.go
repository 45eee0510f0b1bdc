// Package booking implements the rental booking workflow: an explicit
// finite-state machine that walks one customer through renting one car,
// from date selection to a persisted rental/insurance/payment bundle.
// Steps advance only through the transition table below, so an illegal
// jump (e.g. submitting before the payment fields were accepted) is
// unrepresentable rather than merely unchecked.
package booking

import (
    "context"
    "errors"
    "sync"
    "time"

    "github.com/avercroft/car-rental-api/internal/model"
)

// Step names the workflow states.
type Step string

const (
    StepDates        Step = "dates"
    StepDetails      Step = "details"
    StepPayment      Step = "payment"
    StepConfirmation Step = "confirmation"
)

// transitions is the legal-move table. Dates branches on profile
// completeness; details and payment each have exactly one successor;
// confirmation only terminates (submit closes the session).
var transitions = map[Step][]Step{
    StepDates:        {StepDetails, StepPayment},
    StepDetails:      {StepPayment},
    StepPayment:      {StepConfirmation},
    StepConfirmation: {},
}

// Workflow errors surfaced to handlers.
var (
    ErrNoSession      = errors.New("no open booking session")
    ErrWrongStep      = errors.New("action not allowed in current step")
    ErrInvalidTier    = errors.New("unknown insurance tier")
    ErrInvalidPeriod  = errors.New("rental period must cover at least one day")
    ErrSubmitting     = errors.New("submit already in progress")
    ErrProfileInvalid = errors.New("profile details failed validation")
    ErrCardInvalid    = errors.New("payment details failed validation")
)

// Store is the persistence boundary the engine drives. CreateBooking
// must perform its four writes (rental, insurance, payment, car status)
// atomically and fail the whole bundle when the car is no longer
// available.
type Store interface {
    GetCar(ctx context.Context, carID string) (*model.Car, error)
    FetchProfile(ctx context.Context, customerID string) (*model.Customer, error)
    UpsertProfile(ctx context.Context, customerID string, form ProfileForm) error
    CreateBooking(ctx context.Context, b *Booking) (rentalID string, err error)
}

// Booking is the write bundle handed to the store at submit.
type Booking struct {
    CarID          string
    CustomerID     string
    StartDate      time.Time
    EndDate        time.Time
    Tier           string
    InsurancePence int64
    TotalPence     int64
}

// Session is the in-memory state of one customer's wizard for one car.
// It exists from Open until Submit or Close; re-opening replaces it.
type Session struct {
    CustomerID string
    CarID      string
    Step       Step

    car *model.Car

    Tier      string
    StartDate time.Time
    EndDate   time.Time
    Price     Quote

    HasRequiredDetails bool

    card       CardForm
    submitting bool
}

// View is the read-only projection of a session returned to handlers.
// Card fields are never echoed back.
type View struct {
    CarID              string    `json:"car_id"`
    Step               Step      `json:"step"`
    Tier               string    `json:"tier,omitempty"`
    StartDate          time.Time `json:"start_date,omitzero"`
    EndDate            time.Time `json:"end_date,omitzero"`
    Price              Quote     `json:"price"`
    HasRequiredDetails bool      `json:"has_required_details"`
}

func (s *Session) view() View {
    return View{
        CarID:              s.CarID,
        Step:               s.Step,
        Tier:               s.Tier,
        StartDate:          s.StartDate,
        EndDate:            s.EndDate,
        Price:              s.Price,
        HasRequiredDetails: s.HasRequiredDetails,
    }
}

// advance moves the session to the target step if the transition table
// allows it.
func (s *Session) advance(to Step) error {
    for _, legal := range transitions[s.Step] {
        if legal == to {
            s.Step = to
            return nil
        }
    }
    return ErrWrongStep
}

type sessionKey struct {
    customerID string
    carID      string
}

// Engine owns the open sessions and drives them against the store. One
// session per (customer, car); the mutex serialises all transitions so
// a session's submitting flag reliably blocks duplicate submits.
type Engine struct {
    store Store

    mu       sync.Mutex
    sessions map[sessionKey]*Session
}

// NewEngine returns an Engine backed by the given store.
func NewEngine(store Store) *Engine {
    if store == nil {
        panic("nil store passed to NewEngine")
    }
    return &Engine{store: store, sessions: make(map[sessionKey]*Session)}
}

// Open starts (or restarts) the wizard for a car. It always resets to
// the dates step, clears any previously entered payment fields and
// re-fetches the profile to recompute whether the details step can be
// skipped. Opening a car that is not available fails up front.
func (e *Engine) Open(ctx context.Context, customerID, carID string) (View, error) {
    car, err := e.store.GetCar(ctx, carID)
    if err != nil {
        return View{}, err
    }
    if car.Status != model.CarAvailable {
        return View{}, errors.New("car is not available for rental")
    }

    hasDetails := false
    profile, err := e.store.FetchProfile(ctx, customerID)
    if err == nil {
        hasDetails = profileComplete(map[string]*string{
            "first_name":     profile.FirstName,
            "last_name":      profile.LastName,
            "licence_number": profile.LicenceNumber,
            "address_line1":  profile.AddressLine1,
            "city":           profile.City,
            "county":         profile.County,
            "postcode":       profile.Postcode,
            "date_of_birth":  profile.DateOfBirth,
        })
    }
    // A missing profile is not fatal here: the details step collects it.

    s := &Session{
        CustomerID:         customerID,
        CarID:              carID,
        Step:               StepDates,
        car:                car,
        HasRequiredDetails: hasDetails,
    }
    e.mu.Lock()
    e.sessions[sessionKey{customerID, carID}] = s
    e.mu.Unlock()
    return s.view(), nil
}

// Close drops the session if one is open. Selections are not preserved
// across a close/reopen.
func (e *Engine) Close(customerID, carID string) {
    e.mu.Lock()
    delete(e.sessions, sessionKey{customerID, carID})
    e.mu.Unlock()
}

func (e *Engine) session(customerID, carID string) (*Session, error) {
    s, ok := e.sessions[sessionKey{customerID, carID}]
    if !ok {
        return nil, ErrNoSession
    }
    return s, nil
}

// SelectDates records the tier and period, prices the rental and
// advances past the dates step: to payment when the profile is already
// complete, otherwise to details. Periods that do not yield at least
// one chargeable day are rejected.
func (e *Engine) SelectDates(customerID, carID, tier string, start, end time.Time) (View, error) {
    e.mu.Lock()
    defer e.mu.Unlock()
    s, err := e.session(customerID, carID)
    if err != nil {
        return View{}, err
    }
    if s.Step != StepDates {
        return View{}, ErrWrongStep
    }
    if _, ok := TierDayRatePence(tier); !ok {
        return View{}, ErrInvalidTier
    }
    if RentalDays(start, end) < 1 {
        return View{}, ErrInvalidPeriod
    }

    s.Tier = tier
    s.StartDate = start.UTC()
    s.EndDate = end.UTC()
    s.Price = PriceRental(s.car.RatePence, tier, s.StartDate, s.EndDate)

    next := StepDetails
    if s.HasRequiredDetails {
        next = StepPayment
    }
    if err := s.advance(next); err != nil {
        return View{}, err
    }
    return s.view(), nil
}

// SaveDetails validates the profile form, persists it and advances to
// payment. On validation failure the field-keyed error map is returned
// alongside ErrProfileInvalid and no transition occurs.
func (e *Engine) SaveDetails(ctx context.Context, customerID, carID string, form ProfileForm) (View, map[string]string, error) {
    e.mu.Lock()
    defer e.mu.Unlock()
    s, err := e.session(customerID, carID)
    if err != nil {
        return View{}, nil, err
    }
    if s.Step != StepDetails {
        return View{}, nil, ErrWrongStep
    }
    if errs := ValidateProfile(form); len(errs) > 0 {
        return s.view(), errs, ErrProfileInvalid
    }
    if err := e.store.UpsertProfile(ctx, customerID, form); err != nil {
        return View{}, nil, err
    }
    s.HasRequiredDetails = true
    if err := s.advance(StepPayment); err != nil {
        return View{}, nil, err
    }
    return s.view(), nil, nil
}

// EnterPayment validates the card form and advances to confirmation.
// All four fields are checked so every error is reported together. No
// network call is made; capture is simulated at submit.
func (e *Engine) EnterPayment(customerID, carID string, form CardForm) (View, map[string]string, error) {
    e.mu.Lock()
    defer e.mu.Unlock()
    s, err := e.session(customerID, carID)
    if err != nil {
        return View{}, nil, err
    }
    if s.Step != StepPayment {
        return View{}, nil, ErrWrongStep
    }
    if errs := ValidateCard(form); len(errs) > 0 {
        return s.view(), errs, ErrCardInvalid
    }
    s.card = form
    if err := s.advance(StepConfirmation); err != nil {
        return View{}, nil, err
    }
    return s.view(), nil, nil
}

// Summary returns the confirmation view.
func (e *Engine) Summary(customerID, carID string) (View, error) {
    e.mu.Lock()
    defer e.mu.Unlock()
    s, err := e.session(customerID, carID)
    if err != nil {
        return View{}, err
    }
    return s.view(), nil
}

// Submit persists the booking. Only legal from confirmation, and only
// once: the submitting flag blocks repeats while the store call is in
// flight, though a started write sequence cannot be aborted. The store
// performs the four writes atomically; on success the session closes.
func (e *Engine) Submit(ctx context.Context, customerID, carID string) (string, *Booking, error) {
    e.mu.Lock()
    s, err := e.session(customerID, carID)
    if err != nil {
        e.mu.Unlock()
        return "", nil, err
    }
    if s.Step != StepConfirmation {
        e.mu.Unlock()
        return "", nil, ErrWrongStep
    }
    if s.submitting {
        e.mu.Unlock()
        return "", nil, ErrSubmitting
    }
    s.submitting = true
    b := &Booking{
        CarID:          s.CarID,
        CustomerID:     s.CustomerID,
        StartDate:      s.StartDate,
        EndDate:        s.EndDate,
        Tier:           s.Tier,
        InsurancePence: s.Price.InsurancePence,
        TotalPence:     s.Price.TotalPence,
    }
    e.mu.Unlock()

    rentalID, err := e.store.CreateBooking(ctx, b)

    e.mu.Lock()
    defer e.mu.Unlock()
    // A reopen while the store call was in flight replaced the session;
    // in that case the fresh session is left untouched.
    current := e.sessions[sessionKey{customerID, carID}]
    if err != nil {
        // Halt at the current step; the user may retry submit manually.
        if current == s {
            s.submitting = false
        }
        return "", nil, err
    }
    if current == s {
        delete(e.sessions, sessionKey{customerID, carID})
    }
    return rentalID, b, nil
}
