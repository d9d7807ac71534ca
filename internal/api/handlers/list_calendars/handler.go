package list_calendars

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	listSlots "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/list_available_slots"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRangeTooLarge = "слишком большой период"
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

// Handle GET /api/v1/calendars
// Query params: startDate, endDate (YYYY-MM-DD, без них список слотов пуст)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /calendars - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		h.logger.Warn("GET /calendars - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.ExecuteAll(r.Context(), &listSlots.RangeRequest{StartDate: startDate, EndDate: endDate})
	if err != nil {
		switch {
		case errors.Is(err, listSlots.ErrRangeTooLarge):
			h.logger.Warn("GET /calendars - Range too large: %v", err)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		default:
			h.logger.Error("GET /calendars - Failed to list calendars: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := make([]*handlers.CalendarResponse, 0, len(result))
	for _, cal := range result {
		response = append(response, handlers.FromSlotsResponse(cal))
	}

	h.logger.Info("GET /calendars - Calendars retrieved successfully: count=%d", len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}
