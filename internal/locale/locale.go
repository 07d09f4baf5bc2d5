// ABOUTME: Explicit locale/format configuration for parsing and formatting numbers
// ABOUTME: Parses user-typed prices with a locale-first, invariant-fallback policy

package locale

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Defaults match the Brazilian market the list was built for.
const (
	DefaultLocale   = "pt-BR"
	DefaultCurrency = "BRL"
)

// ErrInvalidNumber is returned when input cannot be parsed as a number.
var ErrInvalidNumber = errors.New("invalid number")

// Format carries the number conventions of one locale and currency.
// It is immutable and safe to share.
type Format struct {
	tag     language.Tag
	unit    currency.Unit
	decimal rune
	group   rune
	scale   int
	symbol  string
}

// New builds a Format for a BCP 47 locale and an ISO 4217 currency code.
func New(locale, currencyCode string) (*Format, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", currencyCode, err)
	}

	dec, grp := separators(tag)
	scale, _ := currency.Standard.Rounding(unit)

	return &Format{
		tag:     tag,
		unit:    unit,
		decimal: dec,
		group:   grp,
		scale:   scale,
		symbol:  message.NewPrinter(tag).Sprint(currency.Symbol(unit)),
	}, nil
}

// Default returns the pt-BR / BRL format.
func Default() *Format {
	f, err := New(DefaultLocale, DefaultCurrency)
	if err != nil {
		panic(err)
	}
	return f
}

// separators discovers the decimal and grouping marks by formatting a sample number.
func separators(tag language.Tag) (decimalSep, groupSep rune) {
	sample := message.NewPrinter(tag).Sprint(number.Decimal(1234.5, number.MinFractionDigits(1)))

	var marks []rune
	for _, r := range sample {
		if !unicode.IsDigit(r) {
			marks = append(marks, r)
		}
	}

	switch len(marks) {
	case 0:
		return '.', ','
	case 1:
		if marks[0] == ',' {
			return ',', '.'
		}
		return marks[0], ','
	default:
		return marks[len(marks)-1], marks[0]
	}
}

// Tag returns the language tag.
func (f *Format) Tag() language.Tag { return f.tag }

// Currency returns the currency unit.
func (f *Format) Currency() currency.Unit { return f.unit }

// DecimalSeparator returns the fractional separator of the locale.
func (f *Format) DecimalSeparator() rune { return f.decimal }

// GroupSeparator returns the thousands separator of the locale.
func (f *Format) GroupSeparator() rune { return f.group }

// ParseDecimal parses a price typed by a user. The locale convention is tried
// first, then the invariant one with every comma read as a decimal point, so
// "27,90" and "27.90" both parse in pt-BR.
func (f *Format) ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", ErrInvalidNumber)
	}
	if d, ok := parseNumber(s, f.decimal, f.group); ok {
		return d, nil
	}
	if d, ok := parseNumber(strings.ReplaceAll(s, ",", "."), '.', ','); ok {
		return d, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
}

// ParseQuantity parses an integer with invariant conventions.
func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}

// FormatQuantity renders a quantity the way ParseQuantity reads it.
func FormatQuantity(n int) string {
	return strconv.Itoa(n)
}

// FormatPrice renders d with at most two fraction digits and no grouping,
// using the locale decimal separator ("27,9" for 27.90 in pt-BR).
func (f *Format) FormatPrice(d decimal.Decimal) string {
	return strings.Replace(d.Round(2).String(), ".", string(f.decimal), 1)
}

// FormatMoney renders d as a currency amount, e.g. "R$ 1.234,50".
func (f *Format) FormatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(int32(f.scale))

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	out := sign + f.symbol + " " + groupDigits(intPart, f.group)
	if fracPart != "" {
		out += string(f.decimal) + fracPart
	}
	return out
}

func groupDigits(digits string, sep rune) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteRune(sep)
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// parseNumber accepts an optional sign, an integer part with correctly placed
// group separators, and an optional fraction. Exponents are rejected.
func parseNumber(s string, decimalSep, groupSep rune) (decimal.Decimal, bool) {
	sign := ""
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = "-", s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, string(decimalSep))
	if strings.ContainsRune(fracPart, decimalSep) {
		return decimal.Zero, false
	}

	digits, ok := ungroup(intPart, groupSep)
	if !ok || !allDigits(fracPart) {
		return decimal.Zero, false
	}
	if digits == "" && fracPart == "" {
		return decimal.Zero, false
	}
	if digits == "" {
		digits = "0"
	}

	canonical := sign + digits
	if hasFrac && fracPart != "" {
		canonical += "." + fracPart
	}
	d, err := decimal.NewFromString(canonical)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ungroup strips group separators, requiring groups of exactly three digits
// after a leading group of one to three.
func ungroup(s string, groupSep rune) (string, bool) {
	seps := string(groupSep)
	if groupSep == '\u00a0' || groupSep == '\u202f' {
		s = strings.NewReplacer(" ", seps, "\u00a0", seps, "\u202f", seps).Replace(s)
	}
	if !strings.ContainsRune(s, groupSep) {
		return s, allDigits(s)
	}

	groups := strings.Split(s, seps)
	if len(groups[0]) < 1 || len(groups[0]) > 3 || !allDigits(groups[0]) {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 || !allDigits(g) {
			return "", false
		}
	}
	return strings.Join(groups, ""), true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
