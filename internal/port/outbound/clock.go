package outbound

import "cloud.google.com/go/civil"

// ClockPort supplies the current calendar day.
type ClockPort interface {
	// Today returns the local calendar day the user is living in.
	Today() civil.Date
}
