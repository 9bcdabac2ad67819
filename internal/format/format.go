package format

import (
	"fmt"
	"strings"
	"time"
)

// Currency formats an amount in minor units. USD and EUR use two decimals,
// JPY has none.
// Example: Currency(8900, "USD") => "$89.00"
func Currency(minor int64, currency string) string {
	currency = strings.ToUpper(currency)
	switch currency {
	case "JPY":
		return sign(minor) + "¥" + thousandSep(abs(minor))
	case "USD":
		return sign(minor) + "$" + Decimal(abs(minor))
	case "EUR":
		return sign(minor) + "€" + Decimal(abs(minor))
	default:
		return fmt.Sprintf("%s %s", currency, Decimal(minor))
	}
}

// Decimal renders minor units with two decimals and thousands separators,
// 123456 => "1,234.56".
func Decimal(minor int64) string {
	s := sign(minor)
	minor = abs(minor)
	return fmt.Sprintf("%s%s.%02d", s, thousandSep(minor/100), minor%100)
}

// Plain renders minor units as a machine readable decimal, 8900 => "89.00".
func Plain(minor int64) string {
	s := sign(minor)
	minor = abs(minor)
	return fmt.Sprintf("%s%d.%02d", s, minor/100, minor%100)
}

func sign(n int64) string {
	if n < 0 {
		return "-"
	}
	return ""
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Date formats t in the short form used on product pages.
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// Year returns the four digit year, used by the footer copyright line.
func Year(t time.Time) string {
	return t.Format("2006")
}
