// Package slots generates the bookable time positions of a working day.
package slots

import "fmt"

// Appointments are fixed at 30 minutes; the working day runs 08:00 through
// 20:00, giving 25 bookable positions.
const (
	openingHour  = 8
	closingHour  = 20
	stepMinutes  = 30
	SlotDuration = stepMinutes
)

// Daily returns the ordered slot labels for a single working day:
// 08:00, 08:30, ..., 19:30, 20:00.
func Daily() []string {
	var out []string
	for hour := openingHour; hour < closingHour; hour++ {
		for minute := 0; minute < 60; minute += stepMinutes {
			out = append(out, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	out = append(out, fmt.Sprintf("%02d:00", closingHour))
	return out
}

// Contains reports whether label is one of the bookable slots. Labels must be
// zero-padded 24-hour "HH:MM" strings; anything else is not a slot.
func Contains(label string) bool {
	if len(label) != 5 || label[2] != ':' {
		return false
	}
	for _, s := range Daily() {
		if s == label {
			return true
		}
	}
	return false
}
