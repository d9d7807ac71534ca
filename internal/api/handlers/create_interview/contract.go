package create_interview

import (
	"context"

	createInterview "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/create_interview"
)

type CreateInterviewUseCase interface {
	Execute(ctx context.Context, req *createInterview.Request) (*createInterview.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
