package catalog

import (
	"fmt"
	"strings"
)

// Currencies whose amounts have no minor units. Everything else uses two decimals.
var zeroDecimalCurrencies = map[string]bool{
	"XTR": true,
	"JPY": true,
	"KRW": true,
	"VND": true,
	"CLP": true,
	"ISK": true,
	"UGX": true,
	"PYG": true,
}

// FormatAmount renders an amount given in the smallest currency units, e.g. 1050 USD -> "10.50 USD".
func FormatAmount(amount int64, currency string) string {
	currency = strings.ToUpper(currency)
	if zeroDecimalCurrencies[currency] {
		return fmt.Sprintf("%d %s", amount, currency)
	}

	sign, units := "", uint64(amount)
	if amount < 0 {
		sign, units = "-", -units
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, units/100, units%100, currency)
}
