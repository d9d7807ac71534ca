package domain

import (
	"fmt"
	"time"
	// зоны встроены в бинарник, чтобы не зависеть от zoneinfo хоста
	_ "time/tzdata"
)

// Calendar политика доступности: часовой пояс и окно записи относительно текущего момента
type Calendar struct {
	ID             int64
	Description    string
	Timezone       string // IANA, например "US/Eastern"
	MinHoursNotice int    // записаться можно не раньше чем за столько часов
	MaxHoursOut    int    // и не дальше чем на столько часов вперёд
	CreatedAt      time.Time
}

// Location загружает часовой пояс календаря
func (c *Calendar) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, c.Timezone, err)
	}
	return loc, nil
}

// NoticeWindow границы [now+min, now+max], в пределах которых должно начинаться интервью
func (c *Calendar) NoticeWindow(now time.Time) (time.Time, time.Time) {
	return now.Add(time.Duration(c.MinHoursNotice) * time.Hour),
		now.Add(time.Duration(c.MaxHoursOut) * time.Hour)
}
