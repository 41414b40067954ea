package view

import "fmt"

// MoneyFromCents formats cents with the currency symbol, e.g. 3500 USD -> "$35.00".
func MoneyFromCents(cents int, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, currencySymbol(currency), cents/100, cents%100)
}

// WholeDollars formats cents without trailing zero cents, e.g. 3500 -> "$35", 750 -> "$7.50".
func WholeDollars(cents int) string {
	if cents%100 == 0 {
		return fmt.Sprintf("$%d", cents/100)
	}
	return MoneyFromCents(cents, "USD")
}

func currencySymbol(code string) string {
	switch code {
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	default:
		return code + " "
	}
}
