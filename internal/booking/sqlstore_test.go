package booking

import (
    "context"
    "database/sql"
    "database/sql/driver"
    "errors"
    "strings"
    "sync"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/avercroft/car-rental-api/internal/repository"
)

// txRecorder observes what a CreateBooking transaction did: the
// statements it executed and whether it committed or rolled back.
type txRecorder struct {
    mu         sync.Mutex
    execs      []string
    committed  bool
    rolledBack bool

    failOn     string // substring of the statement to fail with failErr
    failErr    error
    zeroRowsOn string // substring of the statement to report 0 affected rows
}

func (r *txRecorder) exec(q string) (driver.Result, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.execs = append(r.execs, q)
    if r.failOn != "" && strings.Contains(q, r.failOn) {
        return nil, r.failErr
    }
    if r.zeroRowsOn != "" && strings.Contains(q, r.zeroRowsOn) {
        return driver.RowsAffected(0), nil
    }
    return driver.RowsAffected(1), nil
}

func (r *txRecorder) executed(substr string) bool {
    r.mu.Lock()
    defer r.mu.Unlock()
    for _, q := range r.execs {
        if strings.Contains(q, substr) {
            return true
        }
    }
    return false
}

// recConnector hands out connections bound to one recorder, so each
// test gets its own *sql.DB without registering a global driver.
type recConnector struct{ rec *txRecorder }

func (c recConnector) Connect(context.Context) (driver.Conn, error) {
    return &recConn{rec: c.rec}, nil
}
func (c recConnector) Driver() driver.Driver { return recDriver{} }

type recDriver struct{}

func (recDriver) Open(string) (driver.Conn, error) {
    return nil, errors.New("open through the connector")
}

type recConn struct{ rec *txRecorder }

func (c *recConn) Prepare(string) (driver.Stmt, error) {
    return nil, errors.New("prepared statements not supported")
}
func (c *recConn) Close() error              { return nil }
func (c *recConn) Begin() (driver.Tx, error) { return recTx{rec: c.rec}, nil }
func (c *recConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
    return recTx{rec: c.rec}, nil
}
func (c *recConn) ExecContext(_ context.Context, q string, _ []driver.NamedValue) (driver.Result, error) {
    return c.rec.exec(q)
}

type recTx struct{ rec *txRecorder }

func (t recTx) Commit() error {
    t.rec.mu.Lock()
    defer t.rec.mu.Unlock()
    t.rec.committed = true
    return nil
}

func (t recTx) Rollback() error {
    t.rec.mu.Lock()
    defer t.rec.mu.Unlock()
    t.rec.rolledBack = true
    return nil
}

func recordedStore(rec *txRecorder) *SQLStore {
    db := sql.OpenDB(recConnector{rec: rec})
    return NewSQLStore(db,
        repository.NewCarRepo(db),
        repository.NewCustomerRepo(db),
        repository.NewRentalRepo(db),
        repository.NewInsuranceRepo(db),
        repository.NewPaymentRepo(db))
}

func submitBundle() *Booking {
    return &Booking{
        CarID:          "car-1",
        CustomerID:     "cust-1",
        StartDate:      day("2026-03-01"),
        EndDate:        day("2026-03-04"),
        Tier:           TierBasic,
        InsurancePence: 4500,
        TotalPence:     19500,
    }
}

func TestCreateBookingCommitsAllFourWrites(t *testing.T) {
    rec := &txRecorder{}
    s := recordedStore(rec)

    rentalID, err := s.CreateBooking(context.Background(), submitBundle())
    require.NoError(t, err)
    require.NotEmpty(t, rentalID)

    require.True(t, rec.committed)
    require.False(t, rec.rolledBack)
    require.True(t, rec.executed("INSERT INTO rentals"))
    require.True(t, rec.executed("INSERT INTO insurance"))
    require.True(t, rec.executed("INSERT INTO payments"))
    require.True(t, rec.executed("UPDATE cars"))
}

func TestCreateBookingRollsBackWhenInsuranceInsertFails(t *testing.T) {
    writeErr := errors.New("insurance write refused")
    rec := &txRecorder{failOn: "INSERT INTO insurance", failErr: writeErr}
    s := recordedStore(rec)

    _, err := s.CreateBooking(context.Background(), submitBundle())
    require.ErrorIs(t, err, writeErr)

    // The rental insert preceding the failure must be rolled back, and
    // the later payment and car writes must never have been attempted.
    require.True(t, rec.rolledBack)
    require.False(t, rec.committed)
    require.True(t, rec.executed("INSERT INTO rentals"))
    require.False(t, rec.executed("INSERT INTO payments"))
    require.False(t, rec.executed("UPDATE cars"))
    require.Len(t, rec.execs, 2)
}

func TestCreateBookingRollsBackWhenCarAlreadyTaken(t *testing.T) {
    rec := &txRecorder{zeroRowsOn: "UPDATE cars"}
    s := recordedStore(rec)

    _, err := s.CreateBooking(context.Background(), submitBundle())
    require.ErrorIs(t, err, repository.ErrCarUnavailable)

    require.True(t, rec.rolledBack)
    require.False(t, rec.committed)
}
