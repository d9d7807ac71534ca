package domain

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/pkg/types"
)

// Slot еженедельный шаблон доступности календаря
type Slot struct {
	ID         int64
	CalendarID int64
	Calendar   *Calendar

	StartTime types.TimeString
	EndTime   types.TimeString

	Monday    bool
	Tuesday   bool
	Wednesday bool
	Thursday  bool
	Friday    bool
	Saturday  bool
	Sunday    bool

	MaxSpots int
}

// EnabledOn включён ли слот в указанный день недели
func (s *Slot) EnabledOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	default:
		return false
	}
}

// Weekdays дни недели, в которые слот включён, начиная с понедельника
func (s *Slot) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for _, d := range WeekOrder {
		if s.EnabledOn(d) {
			days = append(days, d)
		}
	}
	return days
}

// StartOn начало слота в указанную календарную дату в часовом поясе loc
func (s *Slot) StartOn(date time.Time, loc *time.Location) (time.Time, error) {
	return s.StartTime.On(date, loc)
}

// EndOn конец слота в указанную календарную дату в часовом поясе loc
func (s *Slot) EndOn(date time.Time, loc *time.Location) (time.Time, error) {
	return s.EndTime.On(date, loc)
}
