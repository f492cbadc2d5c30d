package format

import (
	"fmt"
	"math"
	"strings"
)

// CurrencySymbol is the display symbol for all monetary amounts.
const CurrencySymbol = "₹"

// CurrencyCode is the ISO code reported alongside raw numeric amounts.
const CurrencyCode = "INR"

// Currency returns an amount with the rupee symbol and thousands
// separators (e.g. "₹5,000.00", "-₹1,234.56").
func Currency(amount float64) string {
	formatted := withSeparators(math.Abs(amount))
	if amount < 0 {
		return "-" + CurrencySymbol + formatted
	}
	return CurrencySymbol + formatted
}

// Amount returns an amount with separators but no symbol (e.g. "1,234.56").
func Amount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + withSeparators(math.Abs(amount))
}

// YieldKg renders a yield value with its unit (e.g. "1200.00 Kg/ha").
func YieldKg(kg float64) string {
	return fmt.Sprintf("%.2f Kg/ha", kg)
}

func withSeparators(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
