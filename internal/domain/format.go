package domain

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// timeUnit pairs a display unit with its length in seconds, ordered
// from largest to smallest for scaling.
type timeUnit struct {
	name    string
	seconds float64
}

// Display units for runtime scaling. Years use the Julian year.
var timeUnits = []timeUnit{
	{"years", 365.25 * 86400},
	{"days", 86400},
	{"hours", 3600},
	{"min", 60},
	{"s", 1},
	{"ms", 1e-3},
	{"µs", 1e-6},
	{"ns", 1e-9},
}

// ScaleRuntime converts a duration in seconds to a Runtime whose
// display value lies in [1, 1000) where possible. Durations below one
// nanosecond are reported in nanoseconds; the exact seconds value is
// always preserved for comparisons.
func ScaleRuntime(seconds float64) Runtime {
	if seconds <= 0 || math.IsNaN(seconds) {
		return Runtime{Seconds: 0, Value: 0, Unit: "s"}
	}
	for _, u := range timeUnits {
		if seconds >= u.seconds {
			return Runtime{Seconds: seconds, Value: seconds / u.seconds, Unit: u.name}
		}
	}
	last := timeUnits[len(timeUnits)-1]
	return Runtime{Seconds: seconds, Value: seconds / last.seconds, Unit: last.name}
}

// FormatCount renders a count in compact form with K/M/B/T suffixes
// for display, e.g. 1234567 → "1.2M". Exact values below one thousand
// are rendered without a suffix. Cosmetic only; callers must keep the
// raw integer for comparisons.
func FormatCount(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.1fT", float64(n)/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.1fB", float64(n)/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.1fK", float64(n)/1e3)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// Printer returns a message printer that renders numbers with locale
// digit grouping, e.g. 2106 → "2,106", for tabular CLI output.
func Printer() *message.Printer {
	return message.NewPrinter(language.English)
}
