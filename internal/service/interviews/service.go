package interviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InterviewScheduler/internal/availability"
	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	interviewRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/interview"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/interviews/models"
)

// Service сервис для работы с назначенными интервью
type Service struct {
	interviewRepo InterviewRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса интервью
func NewService(
	interviewRepo InterviewRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		interviewRepo: interviewRepo,
		txManager:     txManager,
		timeProvider:  &availability.RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени отмены
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает интервью по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.InterviewResponse, error) {
	s.logger.Info("GetByID: fetching interview id=%d", id)

	interview, err := s.interviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interviewRepo.ErrInterviewNotFound) {
			s.logger.Warn("GetByID: interview id=%d not found", id)
			return nil, ErrInterviewNotFound
		}
		s.logger.Error("GetByID: repository error for interview id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainInterview(interview), nil
}

// List получает интервью с фильтрацией по календарю, заявке и периоду.
// По умолчанию отменённые интервью не возвращаются.
func (s *Service) List(ctx context.Context, req *models.ListInterviewsRequest) (*models.InterviewListResponse, error) {
	logMsg := "List: fetching interviews"
	if req.CalendarID != nil {
		logMsg += fmt.Sprintf(", calendar=%d", *req.CalendarID)
	}
	if req.ApplicationID != nil {
		logMsg += fmt.Sprintf(", application=%d", *req.ApplicationID)
	}
	if req.IncludeCanceled {
		logMsg += ", includeCanceled=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	interviews, err := s.interviewRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d interviews", len(interviews))
	return models.FromDomainInterviewList(interviews), nil
}

// Cancel отменяет интервью и возвращает его обновлённое состояние.
// Повторная отмена возвращает ErrAlreadyCanceled.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.InterviewResponse, error) {
	s.logger.Info("Cancel: cancelling interview id=%d", id)

	var canceled *domain.Interview
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.interviewRepo.Cancel(txCtx, id, s.timeProvider.Now()); err != nil {
			return err
		}

		interview, err := s.interviewRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		canceled = interview
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, interviewRepo.ErrInterviewNotFound):
			s.logger.Warn("Cancel: interview id=%d not found", id)
			return nil, ErrInterviewNotFound
		case errors.Is(err, interviewRepo.ErrAlreadyCanceled):
			s.logger.Warn("Cancel: interview id=%d already canceled", id)
			return nil, ErrAlreadyCanceled
		default:
			s.logger.Error("Cancel: repository error for interview id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully canceled interview id=%d", id)
	return models.FromDomainInterview(canceled), nil
}
