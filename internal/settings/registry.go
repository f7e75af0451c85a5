package settings

import (
	"fmt"
	"sort"
	"strings"
)

// registry maps the operator-facing indicator type name to its decoder. The
// key is what an Indicator definition stores; IndicatorName() on the decoded
// value is what selects the TA routine (they differ for "stochastic"/"stoch"
// and "parabolic_sar"/"psar").
var registry = map[string]Decoder{
	"rsi":             decodeRSI,
	"macd":            decodeMACD,
	"sma":             decodeSMA,
	"ema":             decodeEMA,
	"bollinger_bands": decodeBollingerBands,
	"stochastic":      decodeStochastic,
	"atr":             decodeATR,
	"adx":             decodeADX,
	"cci":             decodeCCI,
	"williams_r":      decodeWilliamsR,
	"obv":             decodeOBV,
	"parabolic_sar":   decodeParabolicSAR,
	"ichimoku":        decodeIchimoku,
}

// Register adds a custom settings type under the given name. Registering over
// a built-in name replaces it.
func Register(name string, dec Decoder) {
	registry[name] = dec
}

// Names lists registered indicator type names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Create builds and validates the typed settings for an indicator type from
// a plain mapping. Unknown keys in params are ignored; missing keys take the
// type's defaults.
func Create(name string, params map[string]any) (Settings, error) {
	dec, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
	}
	s, err := dec(params)
	if err != nil {
		return nil, fmt.Errorf("%s settings: %w", name, err)
	}
	return s, nil
}
