package texting

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

func Currencify(value float64) string {
	return fmt.Sprintf("$%s", humanize.CommafWithDigits(value, 6))
}

func CurrencifyDecimal(value decimal.Decimal) string {
	return Currencify(value.InexactFloat64())
}

// Secondsify renders a wait hint such as "3s", rounded up to whole seconds.
func Secondsify(d time.Duration) string {
	secs := int64((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%ss", humanize.Comma(secs))
}
