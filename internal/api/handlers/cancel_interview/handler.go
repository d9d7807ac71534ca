package cancel_interview

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/interviews"
)

const (
	msgInvalidInterviewID = "некорректный ID интервью"
	msgNotFound           = "интервью не найдено"
	msgAlreadyCanceled    = "интервью уже отменено"
)

type Handler struct {
	service InterviewService
	logger  Logger
}

func NewHandler(service InterviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/interviews/{interviewId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	interviewID, err := handlers.PathID(r, "interviewId")
	if err != nil {
		h.logger.Warn("PATCH /interviews/{id}/cancel - Invalid interview ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterviewID)
		return
	}

	interview, err := h.service.Cancel(r.Context(), interviewID)
	if err != nil {
		switch {
		case errors.Is(err, interviews.ErrInterviewNotFound):
			h.logger.Warn("PATCH /interviews/{id}/cancel - Interview not found: interview_id=%d", interviewID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, interviews.ErrAlreadyCanceled):
			h.logger.Warn("PATCH /interviews/{id}/cancel - Already canceled: interview_id=%d", interviewID)
			handlers.RespondConflict(w, msgAlreadyCanceled)

		default:
			h.logger.Error("PATCH /interviews/{id}/cancel - Failed to cancel interview: interview_id=%d, error=%v", interviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /interviews/{id}/cancel - Interview canceled successfully: interview_id=%d", interviewID)
	handlers.RespondJSON(w, http.StatusOK, interview)
}
