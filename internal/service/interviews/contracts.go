package interviews

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// InterviewRepository интерфейс репозитория интервью
type InterviewRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Interview, error)
	List(ctx context.Context, filter domain.InterviewsFilter) ([]*domain.Interview, error)
	Cancel(ctx context.Context, id int64, at time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
