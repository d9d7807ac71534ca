package get_interview

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/interviews"
)

const (
	msgInvalidInterviewID = "некорректный ID интервью"
	msgNotFound           = "интервью не найдено"
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

// Handle GET /api/v1/interviews/{interviewId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	interviewID, err := handlers.PathID(r, "interviewId")
	if err != nil {
		h.logger.Warn("GET /interviews/{id} - Invalid interview ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterviewID)
		return
	}

	interview, err := h.service.GetByID(r.Context(), interviewID)
	if err != nil {
		switch {
		case errors.Is(err, interviews.ErrInterviewNotFound):
			h.logger.Warn("GET /interviews/{id} - Interview not found: interview_id=%d", interviewID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /interviews/{id} - Failed to get interview: interview_id=%d, error=%v", interviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /interviews/{id} - Interview retrieved successfully: interview_id=%d", interviewID)
	handlers.RespondJSON(w, http.StatusOK, interview)
}
