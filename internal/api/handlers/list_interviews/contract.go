package list_interviews

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/service/interviews/models"
)

type InterviewService interface {
	List(ctx context.Context, req *models.ListInterviewsRequest) (*models.InterviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
