package create_interview

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/availability"
	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// InterviewRepository интерфейс репозитория интервью
type InterviewRepository interface {
	LockSlotInstant(ctx context.Context, calendarID int64, start time.Time) error
	LockApplication(ctx context.Context, applicationID int64) error
	Create(ctx context.Context, interview *domain.Interview) (*domain.Interview, error)
	CancelActiveForApplication(ctx context.Context, applicationID, exceptID int64, at time.Time) (int64, error)
}

// Validator проверка доступности слота
type Validator interface {
	Check(ctx context.Context, cand availability.Candidate, slot *domain.Slot) (availability.Verdict, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// ReservationRecorder учёт исходов записи (метрики)
type ReservationRecorder interface {
	RecordReservation(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
