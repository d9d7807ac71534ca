package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// InterviewCounter считает активные (не отменённые) интервью календаря, начинающиеся ровно в start
type InterviewCounter interface {
	CountActive(ctx context.Context, calendarID int64, start time.Time) (int, error)
}

// ConflictLister возвращает периоды блокировки календаря
type ConflictLister interface {
	ListByCalendar(ctx context.Context, calendarID int64) ([]*domain.Conflict, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// VerdictRecorder учитывает результаты проверок (метрики)
type VerdictRecorder interface {
	RecordAvailabilityVerdict(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// FixedTimeProvider всегда возвращает одно и то же время
type FixedTimeProvider struct {
	At time.Time
}

// Now возвращает зафиксированное время
func (p *FixedTimeProvider) Now() time.Time {
	return p.At
}
