package symbol

import "strings"

type BinanceConverter struct{}

// ToExchange returns the futures symbol (ETHUSDT). Unparseable input is upper-cased and
// passed through so that exotic contract names still reach the exchange unchanged.
func (BinanceConverter) ToExchange(internal string) string {
	if sym := Parse(internal).Binance(); sym != "" {
		return sym
	}
	s := strings.ToUpper(strings.TrimSpace(internal))
	return strings.ReplaceAll(s, "/", "")
}

func (BinanceConverter) FromExchange(raw string) string {
	return Parse(raw).Internal()
}

func (BinanceConverter) Format() Format {
	return FormatBinance
}

var Binance = BinanceConverter{}
