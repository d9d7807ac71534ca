package list_available_slots

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/availability"
	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Calendar, error)
	List(ctx context.Context) ([]*domain.Calendar, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByCalendar(ctx context.Context, calendarID int64) ([]*domain.Slot, error)
}

// Validator проверка доступности слота
type Validator interface {
	Check(ctx context.Context, cand availability.Candidate, slot *domain.Slot) (availability.Verdict, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
