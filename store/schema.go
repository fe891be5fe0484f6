// store/schema.go
package store

// Schema stores imported candles, one row per instrument and open time.
// Times are unix seconds (UTC).
const Schema = `
CREATE TABLE IF NOT EXISTS candles (
	instrument TEXT NOT NULL,
	time INTEGER NOT NULL,
	open REAL NOT NULL,
	high REAL NOT NULL,
	low REAL NOT NULL,
	close REAL NOT NULL,
	volume REAL NOT NULL,
	import_id TEXT NOT NULL,
	PRIMARY KEY (instrument, time)
);

CREATE TABLE IF NOT EXISTS imports (
	import_id TEXT PRIMARY KEY,
	instrument TEXT NOT NULL,
	source TEXT NOT NULL,
	rows INTEGER NOT NULL,
	imported_at INTEGER NOT NULL
);
`
