package utils

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money represents a salary in the smallest currency unit (kopecks, cents).
// Averages come back from the database as decimals with arbitrary scale;
// they are rounded to two places on the way in.
type Money int64

// Currency represents a currency with its formatting rules
type Currency struct {
	Code         string // Code as reported by the job board (e.g., "RUR")
	Symbol       string // Display symbol (e.g., "₽")
	SymbolFirst  bool   // True if symbol comes before amount
	ThousandsSep string // Thousands separator
	DecimalSep   string // Decimal separator
}

// Currencies seen in hh.ru salary data
var Currencies = map[string]Currency{
	"RUR": {Code: "RUR", Symbol: "₽", SymbolFirst: false, ThousandsSep: " ", DecimalSep: ","},
	"USD": {Code: "USD", Symbol: "$", SymbolFirst: true, ThousandsSep: ",", DecimalSep: "."},
	"EUR": {Code: "EUR", Symbol: "€", SymbolFirst: true, ThousandsSep: ".", DecimalSep: ","},
	"KZT": {Code: "KZT", Symbol: "₸", SymbolFirst: false, ThousandsSep: " ", DecimalSep: ","},
	"BYR": {Code: "BYR", Symbol: "Br", SymbolFirst: false, ThousandsSep: " ", DecimalSep: ","},
	"UZS": {Code: "UZS", Symbol: "сўм", SymbolFirst: false, ThousandsSep: " ", DecimalSep: ","},
	"KGS": {Code: "KGS", Symbol: "сом", SymbolFirst: false, ThousandsSep: " ", DecimalSep: ","},
	"AZN": {Code: "AZN", Symbol: "₼", SymbolFirst: false, ThousandsSep: " ", DecimalSep: ","},
	"GEL": {Code: "GEL", Symbol: "₾", SymbolFirst: false, ThousandsSep: " ", DecimalSep: ","},
}

// DefaultCurrency is used when a currency code is not found
var DefaultCurrency = Currencies["RUR"]

// ErrInvalidAmount is returned when a value cannot be read as a decimal amount
var ErrInvalidAmount = errors.New("invalid amount")

// maxUnits is the largest whole amount that still fits in cents after rounding
const maxUnits = (math.MaxInt64 - 100) / 100

// Units creates a Money value from whole major units
func Units(units int64) Money {
	return Money(units * 100)
}

// FromFloat creates a Money value from a float64, rounding half away from zero.
// The float is formatted with the shortest representation first, so 1749.995
// rounds to 1750.00 rather than falling victim to binary representation error.
func FromFloat(amount float64) (Money, error) {
	return ParseMoney(strconv.FormatFloat(amount, 'f', -1, 64))
}

// ParseMoney parses a decimal string ("1750", "-12.5", "1749.9950000")
// and rounds it to two fractional digits, half away from zero.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	// Exponent notation is rare (some drivers emit it for floats); normalize it
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: no digits in %q", ErrInvalidAmount, s)
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > maxUnits {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}

	// Pad to at least three fractional digits: two kept, one deciding the rounding
	frac += "000"
	cents := int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	if frac[2] >= '5' {
		cents++
	}

	m := Money(units*100 + cents)
	if negative {
		m = -m
	}
	return m, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Scan implements sql.Scanner so salary columns of any numeric type
// (INTEGER, NUMERIC, DECIMAL, REAL) scan directly into Money.
func (m *Money) Scan(src any) error {
	var err error
	switch v := src.(type) {
	case int64:
		if v > maxUnits || v < -maxUnits {
			return fmt.Errorf("%w: %d out of range", ErrInvalidAmount, v)
		}
		*m = Units(v)
	case float64:
		*m, err = FromFloat(v)
	case []byte:
		*m, err = ParseMoney(string(v))
	case string:
		*m, err = ParseMoney(v)
	case nil:
		return fmt.Errorf("%w: NULL", ErrInvalidAmount)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidAmount, src)
	}
	return err
}

// Value implements driver.Valuer. Whole amounts are sent as integers so they
// bind to INTEGER salary columns; fractional amounts go as decimal strings.
func (m Money) Value() (driver.Value, error) {
	if m.CentsPart() == 0 {
		return m.UnitsPart(), nil
	}
	return m.String(), nil
}

// NullMoney is a Money that may be NULL, like sql.NullInt64
type NullMoney struct {
	Money Money
	Valid bool
}

// Scan implements sql.Scanner
func (n *NullMoney) Scan(src any) error {
	if src == nil {
		n.Money, n.Valid = 0, false
		return nil
	}
	n.Valid = true
	return n.Money.Scan(src)
}

// Value implements driver.Valuer
func (n NullMoney) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Money.Value()
}

// UnitsPart returns just the whole major units portion
func (m Money) UnitsPart() int64 {
	return int64(m) / 100
}

// CentsPart returns just the minor units portion (0-99)
func (m Money) CentsPart() int {
	cents := int(int64(m) % 100)
	if cents < 0 {
		cents = -cents
	}
	return cents
}

// Float returns the value as a float64 (for spreadsheets and display only)
func (m Money) Float() float64 {
	return float64(m) / 100
}

// String returns the amount with exactly two fractional digits (e.g., "1750.00")
func (m Money) String() string {
	negative := m < 0
	if negative {
		m = -m
	}

	result := fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
	if negative {
		result = "-" + result
	}
	return result
}

// Format formats the amount for display in the given currency.
// Whole amounts drop the fractional part: salaries are quoted in whole units.
func (m Money) Format(currencyCode string) string {
	currency := GetCurrency(currencyCode)

	negative := m < 0
	if negative {
		m = -m
	}

	result := formatWithSeparator(int64(m)/100, currency.ThousandsSep)
	if frac := int64(m) % 100; frac != 0 {
		result += currency.DecimalSep + fmt.Sprintf("%02d", frac)
	}

	if currency.SymbolFirst {
		result = currency.Symbol + result
	} else {
		result = result + " " + currency.Symbol
	}

	if negative {
		result = "-" + result
	}
	return result
}

// formatWithSeparator adds thousands separators to a number
func formatWithSeparator(n int64, sep string) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 || sep == "" {
		return str
	}

	var result strings.Builder
	startOffset := len(str) % 3
	if startOffset == 0 {
		startOffset = 3
	}

	result.WriteString(str[:startOffset])
	for i := startOffset; i < len(str); i += 3 {
		result.WriteString(sep)
		result.WriteString(str[i : i+3])
	}

	return result.String()
}

// GetCurrency returns the currency configuration for a code, or the default if not found
func GetCurrency(code string) Currency {
	if c, ok := Currencies[strings.ToUpper(code)]; ok {
		return c
	}
	return DefaultCurrency
}
