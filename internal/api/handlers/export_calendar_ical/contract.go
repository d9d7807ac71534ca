package export_calendar_ical

import (
	"context"
	"time"

	listSlots "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/list_available_slots"
)

type ListAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *listSlots.Request) (*listSlots.Response, error)
}

// TimeProvider источник DTSTAMP
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
