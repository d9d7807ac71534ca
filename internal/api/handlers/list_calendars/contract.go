package list_calendars

import (
	"context"

	listSlots "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/list_available_slots"
)

type ListAvailableSlotsUseCase interface {
	ExecuteAll(ctx context.Context, req *listSlots.RangeRequest) ([]*listSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
