package trips

import "time"

// DeriveDayNumber returns the 1-based day offset of eventDate within a trip
// starting at tripStart, or nil when the event precedes the trip. Both
// expenses and trip logs fill their day_number through this single function.
func DeriveDayNumber(eventDate, tripStart time.Time) *int {
	event := truncateToDay(eventDate)
	start := truncateToDay(tripStart)
	if event.Before(start) {
		return nil
	}
	day := int(event.Sub(start).Hours()/24) + 1
	return &day
}

func daysBetweenInclusive(from, to time.Time) int {
	from = truncateToDay(from)
	to = truncateToDay(to)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
