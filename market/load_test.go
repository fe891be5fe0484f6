package market

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVThreeRows(t *testing.T) {
	in := `Time,Open,High,Low,Close,Volume
2010-01-01 00:00,1.43283,1.43293,1.43193,1.43293,100
2010-01-01 00:15,1.43293,1.43400,1.43200,1.43300,200
2010-01-04 09:30,1.43300,1.43500,1.43200,1.43400,300
`
	candles, err := ReadCSV(strings.NewReader(in), "inline")
	require.NoError(t, err)
	require.Len(t, candles, 3)

	assert.InDelta(t, 0.001, candles[0].Range(), 1e-9)
	assert.InDelta(t, 0.002, candles[1].Range(), 1e-9)
	assert.InDelta(t, 0.003, candles[2].Range(), 1e-9)
	assert.Equal(t, "Friday", candles[0].Day())
	assert.Equal(t, "Monday", candles[2].Day())
	assert.Equal(t, time.Date(2010, 1, 4, 9, 30, 0, 0, time.UTC), candles[2].Time)
}

func TestReadCSVColumnOrderAndExtras(t *testing.T) {
	in := "Volume,Close,Low,High,Open,Time,Note\n" +
		"5,1.2,1.1,1.3,1.15,2012-06-01 12:00,x\n"
	candles, err := ReadCSV(strings.NewReader(in), "inline")
	require.NoError(t, err)

	want := []Candle{{
		Time:   time.Date(2012, 6, 1, 12, 0, 0, 0, time.UTC),
		Open:   1.15,
		High:   1.3,
		Low:    1.1,
		Close:  1.2,
		Volume: 5,
	}}
	if diff := cmp.Diff(want, candles); diff != "" {
		t.Fatalf("candles mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVFormatErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		line   int
		column string
		msg    string
	}{
		{
			name: "empty input",
			in:   "",
			line: 1,
			msg:  "missing header",
		},
		{
			name: "missing column",
			in:   "Time,Open,High,Low,Close\n2010-01-01 00:00,1,1,1,1\n",
			line: 1,
			msg:  "missing columns Volume",
		},
		{
			name:   "bad number",
			in:     "Time,Open,High,Low,Close,Volume\n2010-01-01 00:00,1,abc,1,1,1\n",
			line:   2,
			column: "High",
			msg:    "bad number",
		},
		{
			name:   "bad timestamp",
			in:     "Time,Open,High,Low,Close,Volume\n2010-01-01 00:00,1,1,1,1,1\nyesterday,1,1,1,1,1\n",
			line:   3,
			column: "Time",
			msg:    "unrecognized timestamp",
		},
		{
			name:   "nan price",
			in:     "Time,Open,High,Low,Close,Volume\n2010-01-01 00:00,1,NaN,1,1,1\n",
			line:   2,
			column: "High",
			msg:    "bad number",
		},
		{
			name:   "infinite price",
			in:     "Time,Open,High,Low,Close,Volume\n2010-01-01 00:00,1,Inf,1,1,1\n",
			line:   2,
			column: "High",
			msg:    "bad number",
		},
		{
			name:   "infinite volume",
			in:     "Time,Open,High,Low,Close,Volume\n2010-01-01 00:00,1,1,1,1,-infinity\n",
			line:   2,
			column: "Volume",
			msg:    "bad number",
		},
		{
			name:   "short row",
			in:     "Time,Open,High,Low,Close,Volume\n2010-01-01 00:00,1,1,1\n",
			line:   2,
			column: "Close",
			msg:    "short row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in), "inline")
			require.Error(t, err)

			var dfe *DataFormatError
			require.True(t, errors.As(err, &dfe), "want DataFormatError, got %T", err)
			assert.Equal(t, tt.line, dfe.Line)
			assert.Equal(t, tt.column, dfe.Column)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadFileXZMatchesPlain(t *testing.T) {
	cs, err := LoadFile("../testdata/eurusd_sample.csv.xz", nil)
	require.NoError(t, err)

	if diff := cmp.Diff(sample.Candles(), cs.Candles()); diff != "" {
		t.Fatalf("xz candles differ from csv (-csv +xz):\n%s", diff)
	}
}

func TestLoadFileJSON(t *testing.T) {
	doc := `{
  "instrument": "EUR_USD",
  "candles": [
    {"time": "2010-01-01 00:00", "open": 1.43283, "high": 1.43293, "low": 1.43224, "close": 1.43293, "volume": 608600007.1},
    {"Time": "2010-01-01 00:15", "Open": "1.43293", "High": "1.43295", "Low": "1.43229", "Close": "1.43275", "Volume": 535600003.1}
  ]
}`
	path := filepath.Join(t.TempDir(), "candles.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cs, err := LoadFile(path, nil)
	require.NoError(t, err)
	require.Equal(t, 2, cs.Len())
	assert.Equal(t, 1.43224, cs.At(0).Low)
	assert.Equal(t, 535600003.1, cs.At(1).Volume)
	assert.Equal(t, time.Date(2010, 1, 1, 0, 15, 0, 0, time.UTC), cs.At(1).Time)
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		column string
		msg    string
	}{
		{"not json", `{"candles": [`, "", "invalid json"},
		{"no array", `{"candles": 3}`, "", "no candle array"},
		{"missing field", `[{"time": "2010-01-01 00:00", "open": 1, "high": 1, "low": 1, "close": 1}]`, "Volume", "missing field"},
		{"bad number", `[{"time": "2010-01-01 00:00", "open": true, "high": 1, "low": 1, "close": 1, "volume": 1}]`, "Open", "bad number"},
		{"overflowing number", `[{"time": "2010-01-01 00:00", "open": 1, "high": 1e999, "low": 1, "close": 1, "volume": 1}]`, "High", "bad number"},
		{"nan string", `[{"time": "2010-01-01 00:00", "open": 1, "high": 1, "low": "NaN", "close": 1, "volume": 1}]`, "Low", "bad number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in), "inline")
			var dfe *DataFormatError
			require.True(t, errors.As(err, &dfe), "want DataFormatError, got %v", err)
			assert.Equal(t, tt.column, dfe.Column)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseTimeLayouts(t *testing.T) {
	want := time.Date(2016, 12, 30, 21, 45, 0, 0, time.UTC)
	for _, s := range []string{"2016-12-30 21:45", "2016-12-30 21:45:00", "2016-12-30T21:45:00Z", "20161230 214500"} {
		got, err := ParseTime(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}
}
