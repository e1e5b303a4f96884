package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func parseDateRequired(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.Parse(dateLayout, value)
}

func parseDateOptional(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := parseDateRequired(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseIntPath(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

func formatDate(value time.Time) string {
	return value.Format(dateLayout)
}
