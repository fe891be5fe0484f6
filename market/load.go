package market

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/ulikunitz/xz"
)

// Columns is the required CSV header, in the order the exports write it.
var Columns = []string{"Time", "Open", "High", "Low", "Close", "Volume"}

// LoadFile reads a candle file into a CandleSet. The format follows the
// extension: .csv, .json, either optionally compressed as .xz.
func LoadFile(path string, inst *InstrumentMeta) (*CandleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReaderSize(f, 64*1024)
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".xz") {
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, &DataFormatError{Source: path, Err: fmt.Errorf("xz stream: %w", err)}
		}
		r = xr
		name = strings.TrimSuffix(name, ".xz")
	}

	var candles []Candle
	if strings.HasSuffix(name, ".json") {
		candles, err = ReadJSON(r, path)
	} else {
		candles, err = ReadCSV(r, path)
	}
	if err != nil {
		return nil, err
	}

	return &CandleSet{Instrument: inst, Source: path, candles: candles}, nil
}

// ReadCSV parses candles from CSV. The header must name every entry of
// Columns; order is free and extra columns are ignored. Any bad row fails the
// whole read.
func ReadCSV(r io.Reader, source string) ([]Candle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &DataFormatError{Source: source, Line: 1, Err: errors.New("missing header")}
	}
	if err != nil {
		return nil, csvError(source, err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, &DataFormatError{Source: source, Line: 1, Err: err}
	}

	var candles []Candle
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(source, err)
		}
		line, _ := cr.FieldPos(0)

		c, col, err := parseRecord(rec, idx)
		if err != nil {
			return nil, &DataFormatError{Source: source, Line: line, Column: col, Err: err}
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func csvError(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &DataFormatError{Source: source, Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("read %s: %w", source, err)
}

// headerIndex maps each required column to its position in header.
func headerIndex(header []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}

	idx := make([]int, len(Columns))
	var missing []string
	for i, col := range Columns {
		p, ok := pos[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[i] = p
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %s", strings.Join(missing, ","))
	}
	return idx, nil
}

func parseRecord(rec []string, idx []int) (Candle, string, error) {
	var c Candle
	for i, col := range Columns {
		p := idx[i]
		if p >= len(rec) {
			return Candle{}, col, errors.New("short row")
		}
		field := rec[p]

		var err error
		switch i {
		case 0:
			c.Time, err = ParseTime(field)
		case 1:
			c.Open, err = parsePrice(field)
		case 2:
			c.High, err = parsePrice(field)
		case 3:
			c.Low, err = parsePrice(field)
		case 4:
			c.Close, err = parsePrice(field)
		case 5:
			c.Volume, err = parsePrice(field)
		}
		if err != nil {
			return Candle{}, col, err
		}
	}
	return c, "", nil
}

// ReadJSON parses candles from either a bare array of candle objects or an
// object holding them under "candles". Keys match Columns, case-insensitively
// for the first letter.
func ReadJSON(r io.Reader, source string) ([]Candle, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	if !gjson.ValidBytes(b) {
		return nil, &DataFormatError{Source: source, Err: errors.New("invalid json")}
	}

	doc := gjson.ParseBytes(b)
	list := doc
	if !doc.IsArray() {
		list = doc.Get("candles")
	}
	if !list.IsArray() {
		return nil, &DataFormatError{Source: source, Err: errors.New("no candle array")}
	}

	items := list.Array()
	candles := make([]Candle, 0, len(items))
	for n, item := range items {
		c, col, err := parseJSONCandle(item)
		if err != nil {
			return nil, &DataFormatError{
				Source: source,
				Column: col,
				Err:    fmt.Errorf("candle %d: %w", n, err),
			}
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func parseJSONCandle(item gjson.Result) (Candle, string, error) {
	var c Candle
	for i, col := range Columns {
		v := item.Get(col)
		if !v.Exists() {
			v = item.Get(strings.ToLower(col))
		}
		if !v.Exists() {
			return Candle{}, col, errors.New("missing field")
		}

		if i == 0 {
			t, err := ParseTime(v.String())
			if err != nil {
				return Candle{}, col, err
			}
			c.Time = t
			continue
		}

		var f float64
		switch v.Type {
		case gjson.Number:
			var err error
			if f, err = checkFinite(v.Float(), v.Raw); err != nil {
				return Candle{}, col, err
			}
		case gjson.String:
			var err error
			if f, err = parsePrice(v.Str); err != nil {
				return Candle{}, col, err
			}
		default:
			return Candle{}, col, fmt.Errorf("bad number %s", v.Raw)
		}

		switch i {
		case 1:
			c.Open = f
		case 2:
			c.High = f
		case 3:
			c.Low = f
		case 4:
			c.Close = f
		case 5:
			c.Volume = f
		}
	}
	return c, "", nil
}
