// market/instruments.go
package market

import (
	"math"
	"strings"
)

type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	PipLocation   int
}

var Instruments = map[string]InstrumentMeta{
	"EUR_USD": {
		Name:          "EUR_USD",
		BaseCurrency:  "EUR",
		QuoteCurrency: "USD",
		PipLocation:   -4,
	},
	"GBP_USD": {
		Name:          "GBP_USD",
		BaseCurrency:  "GBP",
		QuoteCurrency: "USD",
		PipLocation:   -4,
	},
	"USD_JPY": {
		Name:          "USD_JPY",
		BaseCurrency:  "USD",
		QuoteCurrency: "JPY",
		PipLocation:   -2,
	},
}

// LookupInstrument accepts "EUR_USD", "EUR/USD" or "EURUSD".
func LookupInstrument(name string) (*InstrumentMeta, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "/", "_")
	if len(n) == 6 && !strings.Contains(n, "_") {
		n = n[:3] + "_" + n[3:]
	}
	inst, ok := Instruments[n]
	if !ok {
		return nil, false
	}
	return &inst, true
}

// DisplayName renders the instrument the way chart titles use it, "EUR/USD".
func (i *InstrumentMeta) DisplayName() string {
	return i.BaseCurrency + "/" + i.QuoteCurrency
}

// size of 1 pip in price units, e.g. EURUSD: 0.0001, USDJPY: 0.01
func (i *InstrumentMeta) PipSize() float64 {
	return math.Pow10(i.PipLocation) // PipLocation is negative
}

// ToPips converts a price delta (a candle range, say) to pips.
func (i *InstrumentMeta) ToPips(delta float64) float64 {
	return delta / i.PipSize()
}
