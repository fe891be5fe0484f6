package market

import (
	"errors"
	"fmt"
)

// ErrFileNotFound is returned when the candle source does not exist. The
// wrapped error still satisfies errors.Is(err, fs.ErrNotExist).
var ErrFileNotFound = errors.New("candle file not found")

// DataFormatError reports a schema or parse mismatch in a candle source.
type DataFormatError struct {
	Source string
	Line   int // 1-based, 0 when not line oriented
	Column string
	Err    error
}

func (e *DataFormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("%s:%d: column %q: %v", e.Source, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}
