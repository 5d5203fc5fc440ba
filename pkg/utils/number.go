package utils

import "github.com/shopspring/decimal"

// RoundMoney arredonda valores monetários para duas casas
func RoundMoney(value decimal.Decimal) decimal.Decimal {
	if value.IsZero() {
		return decimal.Zero
	}
	return value.Round(2)
}
