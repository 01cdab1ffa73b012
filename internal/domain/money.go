package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	brl = message.NewPrinter(language.BrazilianPortuguese)
	// separators as the locale prints them: "," and "."
	brlDecimalMark  = strings.Trim(brl.Sprintf("%.1f", 1.5), "15")
	brlThousandMark = strings.Trim(brl.Sprintf("%d", 1000), "10")
)

// FormatBRL renders an amount the way the desk prints receipts, e.g. "R$ 5,00".
// Digits come from the decimal itself, so large amounts keep every cent.
func FormatBRL(d decimal.Decimal) string {
	d = d.Round(2)
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return "R$ " + sign + groupThousands(whole) + brlDecimalMark + frac
}

func groupThousands(whole string) string {
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		return brl.Sprintf("%d", n)
	}
	// beyond int64
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(brlThousandMark)
		}
		b.WriteRune(c)
	}
	return b.String()
}

// ParsePrice parses a price typed into a form; "8,50" is read as 8.50.
// Negative values and fractions of a cent are rejected.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, Invalid("price", "provide a numeric price")
	}
	if d.IsNegative() {
		return decimal.Zero, Invalid("price", "price cannot be negative")
	}
	if !d.Equal(d.Round(2)) {
		return decimal.Zero, Invalid("price", "use at most two decimal places")
	}
	return d.Round(2), nil
}
