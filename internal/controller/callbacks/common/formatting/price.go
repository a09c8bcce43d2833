package formatting

import (
	"fmt"
	"math"
)

// FormatAmount форматирует сумму без дробной части, если она нулевая
func FormatAmount(amount float64, currency string) string {
	if amount == math.Trunc(amount) {
		return fmt.Sprintf("%.0f %s", amount, currency)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}
