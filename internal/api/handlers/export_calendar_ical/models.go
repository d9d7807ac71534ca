package export_calendar_ical

import (
	"fmt"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	listSlots "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/list_available_slots"
)

const productID = "-//SMC//Interview Scheduler//RU"

// uidNamespace пространство имён для UID событий: один и тот же слот
// в одно и то же время всегда получает один UID
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("smc-interview-scheduler/slots"))

// SlotUID стабильный UID события для слота в указанный момент
func SlotUID(slotID int64, start time.Time) string {
	name := strconv.FormatInt(slotID, 10) + "@" + start.UTC().Format(time.RFC3339)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

// ToICalendar строит VCALENDAR с событием на каждый доступный слот.
// Время пишется в UTC, поэтому VTIMEZONE не нужен.
func ToICalendar(resp *listSlots.Response, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	if resp.Calendar.Description != "" {
		cal.Props.SetText("X-WR-CALNAME", resp.Calendar.Description)
	}
	cal.Props.SetText("X-WR-TIMEZONE", resp.Calendar.Timezone)

	for _, s := range resp.Slots {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, SlotUID(s.SlotID, s.StartTime))
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, s.StartTime.UTC())
		event.Props.SetDateTime(ical.PropDateTimeEnd, s.EndTime.UTC())
		event.Props.SetText(ical.PropSummary, fmt.Sprintf("Интервью: слот %d", s.SlotID))
		event.Props.SetText(ical.PropDescription, fmt.Sprintf("Свободных мест: до %d", s.MaxSpots))
		cal.Children = append(cal.Children, event.Component)
	}

	return cal
}
