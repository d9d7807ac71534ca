package domain

import (
	"errors"
	"time"
)

// Default values
const (
	DefaultMaxSpots = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// WeekOrder порядок дней недели с понедельника
var WeekOrder = [...]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// ErrInvalidTimezone часовой пояс календаря не распознан
var ErrInvalidTimezone = errors.New("domain: invalid calendar timezone")
