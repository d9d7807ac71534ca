package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/types"
)

// Candidate желаемое время интервью: календарная дата и время суток
// в часовом поясе календаря. Пустое Time означает начало слота.
type Candidate struct {
	Date time.Time
	Time types.TimeString

	// at точный момент, если кандидат построен из него.
	// Дата и HH:MM не различают два 01:30 при переводе часов назад.
	at time.Time
}

// CandidateFromInstant переводит момент времени в дату/время часового пояса loc
func CandidateFromInstant(t time.Time, loc *time.Location) Candidate {
	if t.IsZero() {
		return Candidate{}
	}
	local := t.In(loc)
	y, m, d := local.Date()
	return Candidate{
		Date: time.Date(y, m, d, 0, 0, 0, 0, loc),
		Time: types.NewTimeString(local),
		at:   t.Truncate(time.Minute),
	}
}

// HasDate false для кандидата без даты
func (c Candidate) HasDate() bool {
	return !c.Date.IsZero()
}

// Instant момент начала, который проверяется на заполненность
func (c Candidate) Instant(slot *domain.Slot, loc *time.Location) (time.Time, error) {
	if !c.at.IsZero() {
		return c.at, nil
	}
	if c.Time.IsZero() {
		start, err := slot.StartOn(c.Date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: start %q: %v", ErrInvalidSlot, slot.StartTime, err)
		}
		return start, nil
	}

	at, err := c.Time.On(c.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidCandidate, err)
	}
	return at, nil
}

func (c Candidate) String() string {
	if !c.HasDate() {
		return "<no date>"
	}
	if c.Time.IsZero() {
		return c.Date.Format(domain.DateFormat)
	}
	return c.Date.Format(domain.DateFormat) + " " + c.Time.String()
}
