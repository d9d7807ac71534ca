package create_interview

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	createInterview "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/create_interview"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректное время, ожидается RFC 3339 (2024-03-04T14:00:00-05:00)"
	msgInvalidInput       = "некорректные данные запроса"
	msgSlotNotFound       = "слот не найден"
	msgSlotNotAvailable   = "Interview time is no longer available"
)

type Handler struct {
	useCase CreateInterviewUseCase
	logger  Logger
}

func NewHandler(useCase CreateInterviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/interviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateInterviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /interviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /interviews - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rejected *createInterview.RejectedError
		switch {
		case errors.As(err, &rejected):
			h.logger.Warn("POST /interviews - Slot not available: slot_id=%d, start=%s, reason=%s",
				req.SlotID, req.StartTime, rejected.Reason)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createInterview.ErrSlotNotAvailable):
			h.logger.Warn("POST /interviews - Slot not available: slot_id=%d, start=%s", req.SlotID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createInterview.ErrSlotNotFound):
			h.logger.Warn("POST /interviews - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createInterview.ErrInvalidInput):
			h.logger.Warn("POST /interviews - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /interviews - Failed to create interview: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /interviews - Interview created successfully: interview_id=%d, slot_id=%d",
		result.ID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
