package create_interview

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/availability"
)

// Request модель запроса на запись на интервью
type Request struct {
	SlotID        int64      // ID слота
	StartTime     time.Time  // Желаемое время начала (момент времени)
	EndTime       *time.Time // Время окончания (по умолчанию - конец слота)
	ApplicationID *int64     // Заявка: её прежние активные интервью отменяются
}

// Response модель ответа с созданным интервью
type Response struct {
	ID               int64
	CalendarID       int64
	SlotID           int64
	ApplicationID    *int64
	StartTime        time.Time // в часовом поясе календаря
	EndTime          *time.Time
	Canceled         bool
	CanceledAt       *time.Time
	CreatedAt        time.Time
	CanceledPrevious int64 // сколько прежних интервью заявки отменено
}

// RejectedError недоступность слота с причиной; errors.Is(err, ErrSlotNotAvailable) == true
type RejectedError struct {
	Reason availability.Reason
}

func (e *RejectedError) Error() string {
	return ErrSlotNotAvailable.Error() + ": " + string(e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return ErrSlotNotAvailable
}
