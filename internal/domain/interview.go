package domain

import "time"

// Interview назначенное интервью (бронирование слота).
// Не удаляется: отмена выставляет Canceled и CanceledAt.
type Interview struct {
	ID            int64
	CalendarID    int64
	SlotID        int64
	ApplicationID *int64 // кандидат/заявка; у заявки одно активное интервью
	StartTime     time.Time
	EndTime       *time.Time
	Canceled      bool
	CanceledAt    *time.Time
	CreatedAt     time.Time
}

// IsActive true, если интервью не отменено
func (i *Interview) IsActive() bool {
	return !i.Canceled
}

// InterviewsFilter фильтр списка интервью
type InterviewsFilter struct {
	CalendarID      *int64
	ApplicationID   *int64
	StartFrom       *time.Time
	StartTo         *time.Time
	IncludeCanceled bool
}
