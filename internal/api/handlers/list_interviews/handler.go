package list_interviews

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/interviews"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/interviews/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/interviews
// Query params: calendarId, applicationId, startFrom, startTo (RFC 3339), includeCanceled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.logger.Warn("GET /interviews - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, interviews.ErrInvalidInput):
			h.logger.Warn("GET /interviews - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /interviews - Failed to list interviews: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /interviews - Interviews retrieved successfully: count=%d", len(result.Interviews))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseRequest(r *http.Request) (*models.ListInterviewsRequest, error) {
	var (
		req models.ListInterviewsRequest
		err error
	)

	if req.CalendarID, err = handlers.QueryID(r, "calendarId"); err != nil {
		return nil, err
	}
	if req.ApplicationID, err = handlers.QueryID(r, "applicationId"); err != nil {
		return nil, err
	}
	if req.StartFrom, err = handlers.QueryTime(r, "startFrom"); err != nil {
		return nil, err
	}
	if req.StartTo, err = handlers.QueryTime(r, "startTo"); err != nil {
		return nil, err
	}
	if req.IncludeCanceled, err = handlers.QueryBool(r, "includeCanceled"); err != nil {
		return nil, err
	}

	return &req, nil
}
