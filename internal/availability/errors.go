package availability

import "errors"

var (
	// ErrMissingCalendar слот передан без календаря
	ErrMissingCalendar = errors.New("availability: slot has no calendar")

	// ErrInvalidSlot время начала/конца слота не разбирается
	ErrInvalidSlot = errors.New("availability: invalid slot time")

	// ErrInvalidCandidate время кандидата не разбирается
	ErrInvalidCandidate = errors.New("availability: invalid candidate time")

	// ErrCountInterviews не удалось посчитать занятые места
	ErrCountInterviews = errors.New("availability: failed to count interviews")

	// ErrListConflicts не удалось получить конфликты календаря
	ErrListConflicts = errors.New("availability: failed to list conflicts")
)
