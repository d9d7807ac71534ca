package get_calendar

import (
	"context"

	listSlots "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/list_available_slots"
)

type ListAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *listSlots.Request) (*listSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
