package models

import (
	"strings"

	"marketmodel/xerr"
)

var stableSuffixes = []string{"USDT", "USDC", "USD", "DAI"}

// Pair identifies an asset pair such as BTC/USD. Equality is exact and case
// sensitive; the constructors uppercase both legs.
type Pair struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

func NewPair(base, quote string) Pair {
	return Pair{
		Base:  strings.ToUpper(strings.TrimSpace(base)),
		Quote: strings.ToUpper(strings.TrimSpace(quote)),
	}
}

// ParsePair accepts BASE/QUOTE, BASE-QUOTE and BASE_QUOTE with exactly one
// separator.
func ParsePair(id string) (Pair, error) {
	normalized := strings.NewReplacer("-", "/", "_", "/").Replace(id)
	parts := strings.Split(normalized, "/")
	if len(parts) != 2 {
		return Pair{}, xerr.New(xerr.InvalidPair, "pair %q: expected BASE/QUOTE", id)
	}
	p := NewPair(parts[0], parts[1])
	if p.Base == "" || p.Quote == "" {
		return Pair{}, xerr.New(xerr.InvalidPair, "pair %q: empty leg", id)
	}
	return p, nil
}

// FromStablePair maps an exchange stable pair onto the USD quote, with or
// without separators: BTCUSDT, ETH-USDC and SOL_USDT give BTC/USD, ETH/USD
// and SOL/USD.
func FromStablePair(sym string) (Pair, bool) {
	normalized := strings.NewReplacer("-", "", "_", "", "/", "").Replace(strings.ToUpper(sym))
	for _, stable := range stableSuffixes {
		if base, ok := strings.CutSuffix(normalized, stable); ok && base != "" {
			return Pair{Base: base, Quote: "USD"}, true
		}
	}
	return Pair{}, false
}

// FromExchangeSymbol normalizes an exchange-specific contract symbol and maps
// it onto the USD quote. Multiplier contracts (1000PEPEUSDT, SHIB1000USDT)
// resolve to the underlying asset and XBT is read as BTC.
func FromExchangeSymbol(exchange, sym string) (Pair, error) {
	sym = strings.ToUpper(strings.TrimSpace(sym))
	switch strings.ToLower(exchange) {
	case "binance", "bybit":
		sym = strings.TrimPrefix(sym, "1000")
		sym = strings.Replace(sym, "1000USDT", "USDT", 1)
	case "kucoin":
		sym = strings.ReplaceAll(sym, "-", "")
		sym = strings.TrimSuffix(sym, "M")
		if strings.HasPrefix(sym, "XBT") {
			sym = "BTC" + sym[3:]
		}
	case "okx":
		sym = strings.TrimSuffix(sym, "-SWAP")
	case "kraken":
		if strings.HasPrefix(sym, "XBT") {
			sym = "BTC" + sym[3:]
		}
	}
	p, ok := FromStablePair(sym)
	if !ok {
		return Pair{}, xerr.New(xerr.InvalidPair, "%s symbol %q has no stable quote", exchange, sym)
	}
	return p, nil
}

// Routed builds BTC/ETH out of BTC/USD and ETH/USD. Both legs must share
// the quote.
func Routed(basePair, quotePair Pair) (Pair, error) {
	if basePair.Quote != quotePair.Quote {
		return Pair{}, xerr.New(xerr.InvalidPair, "cannot route %s through %s: quotes differ", basePair, quotePair)
	}
	return Pair{Base: basePair.Base, Quote: quotePair.Base}, nil
}

// String is the pair id, BASE/QUOTE.
func (p Pair) String() string {
	return p.FormatWithSeparator("/")
}

func (p Pair) FormatWithSeparator(sep string) string {
	return p.Base + sep + p.Quote
}
