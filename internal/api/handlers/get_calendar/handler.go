package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	listSlots "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/list_available_slots"
)

const (
	msgInvalidCalendarID = "некорректный ID календаря"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRangeTooLarge     = "слишком большой период"
	msgNotFound          = "календарь не найден"
)

type Handler struct {
	useCase ListAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ListAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{calendarId}
// Query params: startDate, endDate (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID, err := handlers.PathID(r, "calendarId")
	if err != nil {
		h.logger.Warn("GET /calendars/{id} - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	req, ok := h.parseRange(w, r)
	if !ok {
		return
	}
	req.CalendarID = calendarID

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, listSlots.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id} - Calendar not found: calendar_id=%d", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, listSlots.ErrRangeTooLarge):
			h.logger.Warn("GET /calendars/{id} - Range too large: calendar_id=%d", calendarID)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		default:
			h.logger.Error("GET /calendars/{id} - Failed to get calendar: calendar_id=%d, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id} - Calendar retrieved successfully: calendar_id=%d, slots_count=%d",
		calendarID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSlotsResponse(result))
}

func (h *Handler) parseRange(w http.ResponseWriter, r *http.Request) (*listSlots.Request, bool) {
	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /calendars/{id} - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return nil, false
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		h.logger.Warn("GET /calendars/{id} - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return nil, false
	}
	return &listSlots.Request{StartDate: startDate, EndDate: endDate}, true
}
