package export_calendar_ical

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/emersion/go-ical"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/availability"
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
	clock   TimeProvider
	logger  Logger
}

func NewHandler(useCase ListAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		clock:   &availability.RealTimeProvider{},
		logger:  logger,
	}
}

// WithTimeProvider подменяет источник DTSTAMP
func (h *Handler) WithTimeProvider(tp TimeProvider) *Handler {
	h.clock = tp
	return h
}

// Handle GET /api/v1/calendars/{calendarId}/slots.ics
// Query params: startDate, endDate (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID, err := handlers.PathID(r, "calendarId")
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/slots.ics - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/slots.ics - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/slots.ics - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listSlots.Request{
		CalendarID: calendarID,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, listSlots.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id}/slots.ics - Calendar not found: calendar_id=%d", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, listSlots.ErrRangeTooLarge):
			h.logger.Warn("GET /calendars/{id}/slots.ics - Range too large: calendar_id=%d", calendarID)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		default:
			h.logger.Error("GET /calendars/{id}/slots.ics - Failed to get calendar: calendar_id=%d, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Кодируем в буфер, чтобы при ошибке ещё можно было ответить 500
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(ToICalendar(result, h.clock.Now())); err != nil {
		h.logger.Error("GET /calendars/{id}/slots.ics - Failed to encode calendar: calendar_id=%d, error=%v", calendarID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendars/{id}/slots.ics - Calendar exported: calendar_id=%d, events=%d",
		calendarID, len(result.Slots))
	w.Header().Set("Content-Type", ical.MIMEType+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
