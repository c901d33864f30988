package money

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders an amount with the currency symbol and two decimal places.
func Format(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

// ParseAmount accepts a trimmed decimal string strictly greater than zero.
func ParseAmount(input string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q is not a number: %w", trimmed, err)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount %s must be greater than zero", amount)
	}
	return amount, nil
}

// Number encodes an amount as a JSON number literal rather than a quoted string.
func Number(amount decimal.Decimal) json.Number {
	return json.Number(amount.String())
}
