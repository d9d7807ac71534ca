package handlers

import (
	"time"

	listSlots "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/list_available_slots"
)

// SlotResponse доступное время интервью
type SlotResponse struct {
	SlotID     int64  `json:"slotId"`
	CalendarID int64  `json:"calendar"`
	MaxSpots   int    `json:"maxSpots"`
	StartTime  string `json:"startTime"` // ISO 8601 в часовом поясе календаря
	EndTime    string `json:"endTime"`
}

// CalendarResponse календарь с доступными слотами за период
type CalendarResponse struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	Timezone    string         `json:"timezone"`
	Slots       []SlotResponse `json:"slots"`
}

// FromSlotsResponse конвертирует ответ use case в HTTP модель календаря
func FromSlotsResponse(resp *listSlots.Response) *CalendarResponse {
	out := &CalendarResponse{
		ID:          resp.Calendar.ID,
		Description: resp.Calendar.Description,
		Timezone:    resp.Calendar.Timezone,
		Slots:       make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			SlotID:     s.SlotID,
			CalendarID: s.CalendarID,
			MaxSpots:   s.MaxSpots,
			StartTime:  s.StartTime.Format(time.RFC3339),
			EndTime:    s.EndTime.Format(time.RFC3339),
		})
	}

	return out
}
