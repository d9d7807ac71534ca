package domain

import "time"

// Conflict интервал [StartTime, EndTime), в который календарь закрыт для записи
type Conflict struct {
	ID         int64
	CalendarID int64
	StartTime  time.Time
	EndTime    time.Time
}

// Overlaps пересекается ли конфликт с [start, end).
// Касание границ пересечением не считается.
func (c *Conflict) Overlaps(start, end time.Time) bool {
	cs := c.StartTime.In(start.Location())
	ce := c.EndTime.In(start.Location())

	before := cs.Before(start) && !ce.After(start)
	after := !cs.Before(end) && ce.After(end)
	return !(before || after)
}
