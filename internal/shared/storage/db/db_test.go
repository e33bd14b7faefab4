package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-backend/internal/shared/telemetry"
)

// flakyDriver fails the first failPings pings, then behaves.
type flakyDriver struct {
	failPings int32
	pings     atomic.Int32
}

func (d *flakyDriver) Open(string) (driver.Conn, error) { return &flakyConn{d: d}, nil }

type flakyConn struct{ d *flakyDriver }

func (c *flakyConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *flakyConn) Close() error                        { return nil }
func (c *flakyConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }
func (c *flakyConn) Ping(context.Context) error {
	if c.d.pings.Add(1) <= c.d.failPings {
		return driver.ErrBadConn
	}
	return nil
}

var driverSeq atomic.Int32
var registerMu sync.Mutex

func useDriver(t *testing.T, d driver.Driver) {
	t.Helper()
	registerMu.Lock()
	name := "flaky" + string(rune('a'+driverSeq.Add(1)))
	sql.Register(name, d)
	registerMu.Unlock()

	prev := openDB
	openDB = func(_, dsn string) (*sql.DB, error) { return sql.Open(name, dsn) }
	t.Cleanup(func() { openDB = prev })

	out := telemetry.SetOutput(io.Discard)
	t.Cleanup(func() { telemetry.SetOutput(out) })
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	_, err := Connect(context.Background(), "  ", DefaultCLIOptions())
	assert.Error(t, err)
}

func TestConnectRetriesPing(t *testing.T) {
	d := &flakyDriver{failPings: 2}
	useDriver(t, d)

	opts := DefaultServerOptions()
	opts.RetryDelay = time.Millisecond
	db, err := Connect(context.Background(), "postgres://fleet", opts)
	require.NoError(t, err)
	defer db.Close()

	assert.EqualValues(t, 3, d.pings.Load())
	assert.Equal(t, 10, db.Stats().MaxOpenConnections)
}

func TestConnectGivesUpAfterAttempts(t *testing.T) {
	d := &flakyDriver{failPings: 5}
	useDriver(t, d)

	opts := DefaultCLIOptions()
	opts.ConnectAttempts = 2
	opts.RetryDelay = time.Millisecond
	_, err := Connect(context.Background(), "postgres://fleet", opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, driver.ErrBadConn)
	assert.EqualValues(t, 2, d.pings.Load())
}

func TestConnectStopsOnCancelledContext(t *testing.T) {
	useDriver(t, &flakyDriver{failPings: 100})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := DefaultServerOptions()
	opts.RetryDelay = time.Hour
	_, err := Connect(ctx, "postgres://fleet", opts)
	assert.Error(t, err)
}

func TestOptionsFromEnvAppliesOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONNECT_ATTEMPTS", "4")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "1s")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	opts := OptionsFromEnv(DefaultServerOptions())
	assert.Equal(t, Options{
		MaxOpenConns:    7,
		MaxIdleConns:    3,
		ConnMaxLifetime: 20 * time.Minute,
		ConnMaxIdleTime: 45 * time.Second,
		PingTimeout:     time.Second,
		ConnectAttempts: 4,
		RetryDelay:      250 * time.Millisecond,
	}, opts)
}

func TestOptionsFromEnvIgnoresInvalidValues(t *testing.T) {
	out := telemetry.SetOutput(io.Discard)
	defer telemetry.SetOutput(out)

	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("DB_PING_TIMEOUT", "soon")

	opts := OptionsFromEnv(DefaultCLIOptions())
	assert.Equal(t, DefaultCLIOptions(), opts)
}
