package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sueun-dev/polymarket-alpha-lab-sub001/pkg/types"
)

func testSignal() *types.Signal {
	return &types.Signal{
		MarketID:      "m1",
		TokenID:       "m1-yes",
		Side:          types.SideBuy,
		EstimatedProb: 0.65,
		MarketPrice:   0.50,
		Confidence:    0.55,
		StrategyName:  "ensemble_consensus",
	}
}

func testOrder() *types.Order {
	return &types.Order{
		MarketID:     "m1",
		TokenID:      "m1-yes",
		Side:         types.SideBuy,
		Price:        0.50,
		Size:         100,
		StrategyName: "ensemble_consensus",
		OrderID:      "ord-1",
		Status:       "filled",
		Timestamp:    time.Now(),
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestConsoleStorageStoreSignal(t *testing.T) {
	s := NewConsoleStorage(zap.NewNop())

	output := captureStdout(t, func() {
		require.NoError(t, s.StoreSignal(context.Background(), testSignal()))
	})

	assert.Contains(t, output, "ensemble_consensus")
	assert.Contains(t, output, "m1-yes")
	assert.Contains(t, output, "buy")
}

func TestConsoleStorageStoreOrder(t *testing.T) {
	s := NewConsoleStorage(zap.NewNop())

	output := captureStdout(t, func() {
		require.NoError(t, s.StoreOrder(context.Background(), testOrder()))
	})

	assert.Contains(t, output, "ord-1")
	assert.Contains(t, output, "$50.00")
}

func TestConsoleStorageClose(t *testing.T) {
	s := NewConsoleStorage(zap.NewNop())
	assert.NoError(t, s.Close())
}

func TestPostgresStoreSignal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := &PostgresStorage{db: db, logger: zap.NewNop()}

	mock.ExpectExec("INSERT INTO signals").
		WithArgs(sqlmock.AnyArg(), "m1", "m1-yes", "buy", 0.65, 0.50,
			sqlmock.AnyArg(), 0.55, "ensemble_consensus", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.StoreSignal(context.Background(), testSignal()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := &PostgresStorage{db: db, logger: zap.NewNop()}

	mock.ExpectExec("INSERT INTO orders").
		WithArgs("ord-1", "m1", "m1-yes", "buy", 0.50, 100.0,
			50.0, "filled", "ensemble_consensus", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.StoreOrder(context.Background(), testOrder()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSignalError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := &PostgresStorage{db: db, logger: zap.NewNop()}

	mock.ExpectExec("INSERT INTO signals").
		WillReturnError(errors.New("connection reset"))

	err = s.StoreSignal(context.Background(), testSignal())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert signal")
}

func TestPostgresClose(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectClose()

	s := &PostgresStorage{db: db, logger: zap.NewNop()}
	assert.NoError(t, s.Close())
}
