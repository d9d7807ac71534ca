package list_available_slots

import (
	"fmt"
	"time"
)

// validateRange возвращает границы периода как календарные даты в loc.
// ok=false означает пустой результат без ошибки.
func validateRange(start, end *time.Time, loc *time.Location, maxDays int) (time.Time, time.Time, bool, error) {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, false, nil
	}

	from := civilDate(*start, loc)
	to := civilDate(*end, loc)
	if to.Before(from) {
		return time.Time{}, time.Time{}, false, nil
	}

	if days := daysBetween(from, to) + 1; days > maxDays {
		return time.Time{}, time.Time{}, false,
			fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLarge, days, maxDays)
	}

	return from, to, true, nil
}

// civilDate полночь той же календарной даты в loc
func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween количество календарных дней между датами (устойчиво к переходу на летнее время)
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
