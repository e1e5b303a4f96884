package trips

import "errors"

var (
	ErrTripNotFound        = errors.New("trip not found")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrDayPlanNotFound     = errors.New("day plan not found")
)
