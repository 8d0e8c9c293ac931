package domain

import "fmt"

// ClockMin is a day-local time expressed as minutes since midnight. Wire
// format is "HH:MM" interpreted against the request timezone.
type ClockMin int

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (ClockMin, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parsing clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	return ClockMin(h*60 + m), nil
}

// MustClock is ParseClock for literals in fixtures and defaults.
func MustClock(s string) ClockMin {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockMin) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c ClockMin) Minutes() int { return int(c) }
