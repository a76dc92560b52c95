package decimal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

var (
	amountPattern    = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
	currencyPrefixes = []string{"₹", "Rs.", "Rs", "INR", "$", "€", "£"}

	indianEnglish = language.MustParse("en-IN")
)

// NewMoneyFromString parses user input such as "1,50,000" or "₹ 25000.50".
// A leading currency symbol, surrounding spaces and grouping commas are
// accepted; anything else is an error.
func NewMoneyFromString(value string) (Money, error) {
	s := strings.TrimSpace(value)
	for _, p := range currencyPrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(strings.TrimPrefix(s, p))
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	if !amountPattern.MatchString(s) {
		return Money{}, fmt.Errorf("invalid amount %q", value)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// FormatWhole renders the amount rounded to whole units with locale
// grouping. The rupee symbol selects lakh grouping ("₹72,48,000"); any
// other symbol groups in thousands ("$7,248,000").
func (m Money) FormatWhole(symbol string) string {
	whole := m.Decimal.Round(0).IntPart()
	sign := ""
	if whole < 0 {
		sign, whole = "-", -whole
	}
	return symbol + sign + printerFor(symbol).Sprintf("%d", whole)
}

func printerFor(symbol string) *message.Printer {
	if strings.TrimSpace(symbol) == "₹" {
		return message.NewPrinter(indianEnglish)
	}
	return message.NewPrinter(language.English)
}
