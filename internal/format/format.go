// Package format renders numeric market data for display. Values that a
// provider did not supply render as the NotAvailable sentinel rather than a
// zero, so a missing field never masquerades as real data.
package format

import (
	"fmt"
	"math"
)

// NotAvailable is the display sentinel for missing or zero-valued fields.
const NotAvailable = "not available"

// USD formats a dollar amount with a magnitude suffix: trillions, billions,
// or millions at two decimals, plain dollars below a million. A mantissa that
// rounds up to 1000 of its band rolls into the next band, so 999,999,999
// renders as $1.00B rather than $1000.00M.
func USD(v float64) string {
	unit, suffix := 1.0, ""
	switch abs := math.Abs(v); {
	case abs >= 1e12:
		unit, suffix = 1e12, "T"
	case abs >= 1e9:
		unit, suffix = 1e9, "B"
	case abs >= 1e6:
		unit, suffix = 1e6, "M"
	}
	scaled := math.Round(v/unit*100) / 100
	if math.Abs(scaled) >= 1000 {
		switch suffix {
		case "B":
			scaled, suffix = scaled/1000, "T"
		case "M":
			scaled, suffix = scaled/1000, "B"
		}
	}
	return fmt.Sprintf("$%.2f%s", scaled, suffix)
}

// Percent formats a fractional value as a percentage, e.g. 0.0042 -> "0.42%".
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// USDOrNA formats an optional dollar amount; nil or zero is not available.
func USDOrNA(v *float64) string {
	if v == nil || *v == 0 {
		return NotAvailable
	}
	return USD(*v)
}

// RatioOrNA formats an optional plain ratio (e.g. P/E) at two decimals.
func RatioOrNA(v *float64) string {
	if v == nil || *v == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", *v)
}

// PercentOrNA formats an optional fractional yield. Zero is treated the same
// as missing: a field the provider reported as 0 is not real yield data.
func PercentOrNA(v *float64) string {
	if v == nil || *v == 0 {
		return NotAvailable
	}
	return Percent(*v)
}
