package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

var (
	// ErrInvalidPeriod возвращается, когда конец периода раньше начала
	ErrInvalidPeriod = errors.New("startTo must not be before startFrom")
)

// Request модели

// ListInterviewsRequest запрос на получение списка интервью
type ListInterviewsRequest struct {
	CalendarID      *int64     // Фильтр по календарю (опционально)
	ApplicationID   *int64     // Фильтр по заявке (опционально)
	StartFrom       *time.Time // Начало периода (опционально)
	StartTo         *time.Time // Конец периода (опционально)
	IncludeCanceled bool       // Включить отменённые интервью
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListInterviewsRequest) ToDomainFilter() (domain.InterviewsFilter, error) {
	filter := domain.InterviewsFilter{
		CalendarID:      r.CalendarID,
		ApplicationID:   r.ApplicationID,
		StartFrom:       r.StartFrom,
		StartTo:         r.StartTo,
		IncludeCanceled: r.IncludeCanceled,
	}

	if r.StartFrom != nil && r.StartTo != nil && r.StartTo.Before(*r.StartFrom) {
		return filter, ErrInvalidPeriod
	}

	return filter, nil
}

// Response модели

// InterviewResponse ответ с данными интервью
type InterviewResponse struct {
	ID            int64   `json:"id"`
	CalendarID    int64   `json:"calendarId"`
	SlotID        int64   `json:"slotId"`
	ApplicationID *int64  `json:"applicationId,omitempty"`
	StartTime     string  `json:"startTime"`         // ISO 8601
	EndTime       *string `json:"endTime,omitempty"` // ISO 8601
	Canceled      bool    `json:"canceled"`
	CanceledAt    *string `json:"canceledAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// InterviewListResponse ответ со списком интервью
type InterviewListResponse struct {
	Interviews []InterviewResponse `json:"interviews"`
}

// Методы конвертации

// FromDomainInterview конвертирует domain модель в DTO
func FromDomainInterview(i *domain.Interview) *InterviewResponse {
	if i == nil {
		return nil
	}

	return &InterviewResponse{
		ID:            i.ID,
		CalendarID:    i.CalendarID,
		SlotID:        i.SlotID,
		ApplicationID: i.ApplicationID,
		StartTime:     i.StartTime.Format(time.RFC3339),
		EndTime:       formatOptional(i.EndTime),
		Canceled:      i.Canceled,
		CanceledAt:    formatOptional(i.CanceledAt),
		CreatedAt:     i.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainInterviewList конвертирует список domain моделей в DTO
func FromDomainInterviewList(interviews []*domain.Interview) *InterviewListResponse {
	resp := &InterviewListResponse{
		Interviews: make([]InterviewResponse, 0, len(interviews)),
	}

	for _, i := range interviews {
		if r := FromDomainInterview(i); r != nil {
			resp.Interviews = append(resp.Interviews, *r)
		}
	}

	return resp
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return ptr.Ptr(t.Format(time.RFC3339))
}
