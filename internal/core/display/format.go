// Package display renders remaining countdown time as clock-style strings.
package display

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPattern is used when a timer has no display format.
const DefaultPattern = "mm:ss"

// Format renders remaining as if it were a time of day counted from a UTC
// midnight. Supported tokens: HH H hh h mm m ss s SSS SS S A a, and [text]
// for literals. Other characters are copied through. Hours wrap at 24.
func Format(remaining time.Duration, pattern string) string {
	if remaining < 0 {
		remaining = 0
	}
	if pattern == "" {
		pattern = DefaultPattern
	}

	day := remaining % (24 * time.Hour)
	hours := int(day / time.Hour)
	minutes := int(day/time.Minute) % 60
	seconds := int(day/time.Second) % 60
	millis := int(day/time.Millisecond) % 1000

	var out strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			end := strings.IndexByte(pattern[i:], ']')
			if end < 0 {
				out.WriteString(pattern[i+1:])
				break
			}
			out.WriteString(pattern[i+1 : i+end])
			i += end + 1
			continue
		}

		run := runLength(pattern, i)
		switch pattern[i] {
		case 'H':
			out.WriteString(pad(hours, run))
		case 'h':
			out.WriteString(pad(twelveHour(hours), run))
		case 'm':
			out.WriteString(pad(minutes, run))
		case 's':
			out.WriteString(pad(seconds, run))
		case 'S':
			out.WriteString(fraction(millis, run))
		case 'A':
			out.WriteString(meridiem(hours, true))
			run = 1
		case 'a':
			out.WriteString(meridiem(hours, false))
			run = 1
		default:
			out.WriteString(pattern[i : i+run])
		}
		i += run
	}
	return out.String()
}

// runLength counts repeats of pattern[start], capped at two for the clock
// fields and three for fractional seconds.
func runLength(pattern string, start int) int {
	limit := 1
	switch pattern[start] {
	case 'H', 'h', 'm', 's':
		limit = 2
	case 'S':
		limit = 3
	}
	run := 1
	for start+run < len(pattern) && run < limit && pattern[start+run] == pattern[start] {
		run++
	}
	return run
}

func pad(value, width int) string {
	if width < 2 {
		return fmt.Sprintf("%d", value)
	}
	return fmt.Sprintf("%0*d", width, value)
}

func fraction(millis, digits int) string {
	switch digits {
	case 1:
		return fmt.Sprintf("%d", millis/100)
	case 2:
		return fmt.Sprintf("%02d", millis/10)
	}
	return fmt.Sprintf("%03d", millis)
}

func twelveHour(hours int) int {
	hours %= 12
	if hours == 0 {
		return 12
	}
	return hours
}

func meridiem(hours int, upper bool) string {
	value := "am"
	if hours >= 12 {
		value = "pm"
	}
	if upper {
		return strings.ToUpper(value)
	}
	return value
}
