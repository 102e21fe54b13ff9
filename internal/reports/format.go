package reports

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

func itoa(v int) string { return strconv.Itoa(v) }

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func float1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func float2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func optMoney(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.StringFixed(2)
}

func date(v time.Time) string {
	return v.UTC().Format(time.DateOnly)
}

func optDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return date(*v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
