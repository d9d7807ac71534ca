package list_available_slots

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// Request запрос слотов календаря за период.
// Даты - календарные (учитываются только год, месяц, день).
// Если не задана любая из границ, слотов нет.
type Request struct {
	CalendarID int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// RangeRequest период для всех календарей
type RangeRequest struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Slot доступное время: шаблон слота на конкретную дату
type Slot struct {
	SlotID     int64
	CalendarID int64
	MaxSpots   int
	StartTime  time.Time // в часовом поясе календаря
	EndTime    time.Time
}

// Response календарь и его доступные слоты по дням в хронологическом порядке
type Response struct {
	Calendar *domain.Calendar
	Slots    []Slot
}
