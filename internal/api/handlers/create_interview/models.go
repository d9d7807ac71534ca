package create_interview

import (
	"errors"
	"time"

	createInterview "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/create_interview"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

var errMissingStartTime = errors.New("startTime is required")

// CreateInterviewRequest HTTP request model
type CreateInterviewRequest struct {
	SlotID        int64   `json:"slotId"`
	StartTime     string  `json:"startTime"`         // RFC 3339: "2024-03-04T14:00:00-05:00"
	EndTime       *string `json:"endTime,omitempty"` // по умолчанию - конец слота
	ApplicationID *int64  `json:"applicationId,omitempty"`
}

// InterviewResponse HTTP response model
type InterviewResponse struct {
	ID               int64   `json:"id"`
	CalendarID       int64   `json:"calendar"`
	SlotID           int64   `json:"slotId"`
	ApplicationID    *int64  `json:"applicationId,omitempty"`
	StartTime        string  `json:"startTime"`
	EndTime          *string `json:"endTime,omitempty"`
	Canceled         bool    `json:"canceled"`
	CanceledAt       *string `json:"canceledAt,omitempty"`
	Created          string  `json:"created"`
	CanceledPrevious int64   `json:"canceledPrevious"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateInterviewRequest) ToUseCaseRequest() (*createInterview.Request, error) {
	if r.StartTime == "" {
		return nil, errMissingStartTime
	}

	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createInterview.Request{
		SlotID:        r.SlotID,
		StartTime:     start,
		ApplicationID: r.ApplicationID,
	}

	if r.EndTime != nil {
		end, err := time.Parse(time.RFC3339, *r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = ptr.Ptr(end)
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createInterview.Response) *InterviewResponse {
	out := &InterviewResponse{
		ID:               resp.ID,
		CalendarID:       resp.CalendarID,
		SlotID:           resp.SlotID,
		ApplicationID:    resp.ApplicationID,
		StartTime:        resp.StartTime.Format(time.RFC3339),
		Canceled:         resp.Canceled,
		Created:          resp.CreatedAt.Format(time.RFC3339),
		CanceledPrevious: resp.CanceledPrevious,
	}

	if resp.EndTime != nil {
		out.EndTime = ptr.Ptr(resp.EndTime.Format(time.RFC3339))
	}
	if resp.CanceledAt != nil {
		out.CanceledAt = ptr.Ptr(resp.CanceledAt.Format(time.RFC3339))
	}

	return out
}
