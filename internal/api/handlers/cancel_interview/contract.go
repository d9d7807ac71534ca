package cancel_interview

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/service/interviews/models"
)

type InterviewService interface {
	Cancel(ctx context.Context, id int64) (*models.InterviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
