package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/rangescope/id"
	"github.com/rustyeddy/rangescope/market"
)

// SQLite keeps imported candle data so repeated analysis runs skip CSV
// parsing. It never holds computed results.
type SQLite struct {
	db *sql.DB
}

// Import describes one ImportCandles call.
type Import struct {
	ID         string
	Instrument string
	Source     string
	Rows       int
	ImportedAt time.Time
}

func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// ImportCandles writes every candle of cs under instrument in one
// transaction. A candle already stored for the same time is replaced.
func (s *SQLite) ImportCandles(ctx context.Context, instrument string, cs *market.CandleSet) (Import, error) {
	imp := Import{
		ID:         id.New(),
		Instrument: instrument,
		Source:     cs.Source,
		Rows:       cs.Len(),
		ImportedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Import{}, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO candles
		(instrument, time, open, high, low, close, volume, import_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Import{}, err
	}
	defer stmt.Close()

	it := cs.Iterator()
	for it.Next() {
		c := it.Candle()
		if _, err := stmt.ExecContext(ctx,
			instrument, c.Time.Unix(), c.Open, c.High, c.Low, c.Close, c.Volume, imp.ID,
		); err != nil {
			return Import{}, fmt.Errorf("insert candle %d: %w", it.Index(), err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO imports (import_id, instrument, source, rows, imported_at)
		VALUES (?, ?, ?, ?, ?)`,
		imp.ID, imp.Instrument, imp.Source, imp.Rows, imp.ImportedAt.Unix(),
	); err != nil {
		return Import{}, err
	}

	if err := tx.Commit(); err != nil {
		return Import{}, err
	}
	return imp, nil
}

// LoadCandles returns the stored candles of instrument in time order.
func (s *SQLite) LoadCandles(ctx context.Context, inst *market.InstrumentMeta, source string) (*market.CandleSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT time, open, high, low, close, volume
		FROM candles
		WHERE instrument = ?
		ORDER BY time ASC`, inst.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candles []market.Candle
	for rows.Next() {
		var (
			ts int64
			c  market.Candle
		)
		if err := rows.Scan(&ts, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, err
		}
		c.Time = time.Unix(ts, 0).UTC()
		candles = append(candles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return market.NewCandleSet(inst, source, candles), nil
}

// Count returns how many candles are stored for instrument.
func (s *SQLite) Count(ctx context.Context, instrument string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candles WHERE instrument = ?`, instrument).Scan(&n)
	return n, err
}

// LastImport returns the most recent import of instrument.
func (s *SQLite) LastImport(ctx context.Context, instrument string) (Import, error) {
	var (
		imp Import
		at  int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT import_id, instrument, source, rows, imported_at
		FROM imports
		WHERE instrument = ?
		ORDER BY import_id DESC
		LIMIT 1`, instrument).Scan(&imp.ID, &imp.Instrument, &imp.Source, &imp.Rows, &at)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Import{}, fmt.Errorf("no imports for %q", instrument)
		}
		return Import{}, err
	}
	imp.ImportedAt = time.Unix(at, 0).UTC()
	return imp, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
