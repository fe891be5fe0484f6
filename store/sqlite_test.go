package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/rangescope/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func testCandles() []market.Candle {
	t0 := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	return []market.Candle{
		{Time: t0, Open: 1.43283, High: 1.43293, Low: 1.43224, Close: 1.43293, Volume: 608600007.1},
		{Time: t0.Add(15 * time.Minute), Open: 1.43293, High: 1.43295, Low: 1.43229, Close: 1.43275, Volume: 535600003.1},
		{Time: t0.Add(30 * time.Minute), Open: 1.43275, High: 1.43275, Low: 1.43275, Close: 1.43275, Volume: 0},
	}
}

func TestSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	assert.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('candles','imports')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["candles"])
	assert.True(t, found["imports"])
}

func TestImportThenLoad(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()
	inst, ok := market.LookupInstrument("EUR_USD")
	require.True(t, ok)

	want := testCandles()
	imp, err := s.ImportCandles(ctx, inst.Name, market.NewCandleSet(inst, "test.csv", want))
	require.NoError(t, err)
	assert.Equal(t, 3, imp.Rows)
	assert.Len(t, imp.ID, 26)

	n, err := s.Count(ctx, inst.Name)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	cs, err := s.LoadCandles(ctx, inst, "db")
	require.NoError(t, err)
	if diff := cmp.Diff(want, cs.Candles()); diff != "" {
		t.Fatalf("loaded candles mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "EUR/USD", cs.Name())

	last, err := s.LastImport(ctx, inst.Name)
	require.NoError(t, err)
	assert.Equal(t, imp.ID, last.ID)
	assert.Equal(t, "test.csv", last.Source)
}

func TestReimportReplaces(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()
	inst, _ := market.LookupInstrument("EUR_USD")
	cs := market.NewCandleSet(inst, "test.csv", testCandles())

	_, err := s.ImportCandles(ctx, inst.Name, cs)
	require.NoError(t, err)
	_, err = s.ImportCandles(ctx, inst.Name, cs)
	require.NoError(t, err)

	n, err := s.Count(ctx, inst.Name)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestLastImportMissing(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	_, err := s.LastImport(context.Background(), "USD_JPY")
	assert.ErrorContains(t, err, "no imports")
}
