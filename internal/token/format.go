package token

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxSymbolLen is the display limit for token symbols.
const maxSymbolLen = 20

// printer formats counts with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// unnamed is shown for tokens without a name.
const unnamed = "Unnamed"

// DisplayName returns "Name (SYMBOL)", falling back to "Unnamed" when the name
// is empty and omitting the parenthetical when there is no symbol.
func DisplayName(t Token) string {
	name := t.Name
	if name == "" {
		name = unnamed
	}
	if t.Symbol == "" {
		return name
	}
	return name + " (" + t.Symbol + ")"
}

// TrimSymbol shortens very long symbols for headings.
func TrimSymbol(symbol string) string {
	runes := []rune(symbol)
	if len(runes) <= maxSymbolLen {
		return symbol
	}
	return string(runes[:maxSymbolLen]) + "..."
}

// IsAddress reports whether s is a 20-byte hex address.
func IsAddress(s string) bool {
	return common.IsHexAddress(s)
}

// ChecksumAddress returns the EIP-55 form of a hex address. Non-address input
// is returned unchanged.
func ChecksumAddress(s string) string {
	if !common.IsHexAddress(s) {
		return s
	}
	return common.HexToAddress(s).Hex()
}

// ShortHash abbreviates a hash as 0x1234…abcd for narrow columns.
func ShortHash(s string) string {
	const head, tail = 6, 4
	if len(s) <= head+tail+1 {
		return s
	}
	return s[:head] + "…" + s[len(s)-tail:]
}

// FormatAmount scales a raw integer amount by the token decimals and renders
// it with thousand separators. Unparsable values are returned unchanged.
func FormatAmount(raw string, decimals *string) string {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	if decimals != nil {
		if d, convErr := strconv.Atoi(*decimals); convErr == nil && d > 0 {
			value = value.Shift(int32(-d)) //nolint:gosec // Token decimals are small.
		}
	}

	const precision = 4
	text := value.Round(precision).String()
	intPart, fracPart, hasFrac := strings.Cut(text, ".")
	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	grouped := intPart
	if n, parseErr := strconv.ParseInt(intPart, 10, 64); parseErr == nil {
		grouped = printer.Sprintf("%d", n)
	}
	if negative {
		grouped = "-" + grouped
	}
	if hasFrac {
		return grouped + "." + fracPart
	}
	return grouped
}

// FormatCount renders a decimal count string with thousand separators.
func FormatCount(raw *string) string {
	if raw == nil || *raw == "" {
		return "-"
	}
	n, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return *raw
	}
	return printer.Sprintf("%d", n)
}

// Share renders value as a percentage of total, e.g. "12.3456%". It returns
// "-" when either side is unparsable or total is zero.
func Share(value string, total *string) string {
	if total == nil {
		return "-"
	}
	v, err := decimal.NewFromString(value)
	if err != nil {
		return "-"
	}
	t, err := decimal.NewFromString(*total)
	if err != nil || t.IsZero() {
		return "-"
	}
	const precision = 4
	return v.Div(t).Mul(decimal.NewFromInt(100)).Round(precision).String() + "%"
}
