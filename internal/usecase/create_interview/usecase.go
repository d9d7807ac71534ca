package create_interview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/availability"
	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	slotRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/slot"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

// Исходы записи для метрик
const (
	OutcomeCreated  = "created"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// UseCase use case записи на интервью
type UseCase struct {
	slotRepo      SlotRepository
	interviewRepo InterviewRepository
	validator     Validator
	txManager     TransactionManager
	timeProvider  TimeProvider
	recorder      ReservationRecorder
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	interviewRepo InterviewRepository,
	validator Validator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		interviewRepo: interviewRepo,
		validator:     validator,
		txManager:     txManager,
		timeProvider:  &availability.RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (время отмены прежних интервью)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithRecorder включает учёт исходов в метриках
func (uc *UseCase) WithRecorder(r ReservationRecorder) *UseCase {
	uc.recorder = r
	return uc
}

// Execute выполняет use case записи на интервью.
// Проверка доступности повторяется внутри транзакции под
// блокировкой (календарь, время начала), поэтому две параллельные записи
// на одно время не могут обе пройти проверку мест.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateInterview: slot=%d, start=%s, application=%s",
		req.SlotID, req.StartTime.Format(time.RFC3339), formatID(req.ApplicationID))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateInterview: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем слот вместе с календарём
	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("CreateInterview: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CreateInterview: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	loc, err := slot.Calendar.Location()
	if err != nil {
		uc.logger.Error("CreateInterview: calendar id=%d: %v", slot.CalendarID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Переводим время в часовой пояс календаря (точность - минута)
	startTime := req.StartTime.Truncate(time.Minute)
	cand := availability.CandidateFromInstant(startTime, loc)

	var (
		result   *domain.Interview
		canceled int64
	)

	// 4. Проверка и запись в одной транзакции READ COMMITTED.
	// Запросы после блокировки видят всё, что зафиксировали её прежние владельцы.
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Точка сериализации для (календарь, время)
		if cand.HasDate() {
			if err := uc.interviewRepo.LockSlotInstant(txCtx, slot.CalendarID, startTime); err != nil {
				return fmt.Errorf("%w: failed to lock slot instant: %w", ErrInternal, err)
			}
		}

		// Записи одной заявки на разное время тоже идут по очереди,
		// иначе обе отменят только чужие прежние интервью и останутся активными
		if req.ApplicationID != nil {
			if err := uc.interviewRepo.LockApplication(txCtx, *req.ApplicationID); err != nil {
				return fmt.Errorf("%w: failed to lock application: %w", ErrInternal, err)
			}
		}

		// 4.2. Повторная проверка доступности
		verdict, err := uc.validator.Check(txCtx, cand, slot)
		if err != nil {
			return fmt.Errorf("%w: availability check: %w", ErrInternal, err)
		}
		if !verdict.Available {
			return &RejectedError{Reason: verdict.Reason}
		}

		// 4.3. Время окончания по умолчанию - конец слота
		endTime := req.EndTime
		if endTime == nil {
			end, err := slot.EndOn(cand.Date, loc)
			if err != nil {
				return fmt.Errorf("%w: slot end: %v", ErrInternal, err)
			}
			endTime = ptr.Ptr(end)
		}

		// 4.4. Создаём интервью
		created, err := uc.interviewRepo.Create(txCtx, &domain.Interview{
			CalendarID:    slot.CalendarID,
			SlotID:        slot.ID,
			ApplicationID: req.ApplicationID,
			StartTime:     startTime,
			EndTime:       endTime,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create interview: %w", ErrInternal, err)
		}

		// 4.5. Отменяем прежние активные интервью заявки
		if req.ApplicationID != nil {
			canceled, err = uc.interviewRepo.CancelActiveForApplication(txCtx, *req.ApplicationID, created.ID, uc.timeProvider.Now())
			if err != nil {
				return fmt.Errorf("%w: failed to cancel previous interviews: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			uc.logger.Warn("CreateInterview: slot=%d at %s not available: %s", req.SlotID, cand, rejected.Reason)
			uc.record(OutcomeRejected)
			return nil, err
		}
		uc.logger.Error("CreateInterview: slot=%d: %v", req.SlotID, err)
		uc.record(OutcomeFailed)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.record(OutcomeCreated)
	uc.logger.Info("CreateInterview: successfully created interview id=%d (canceled previous: %d)", result.ID, canceled)

	return toResponse(result, canceled, loc), nil
}

func (uc *UseCase) record(outcome string) {
	if uc.recorder != nil {
		uc.recorder.RecordReservation(outcome)
	}
}

func toResponse(i *domain.Interview, canceled int64, loc *time.Location) *Response {
	resp := &Response{
		ID:               i.ID,
		CalendarID:       i.CalendarID,
		SlotID:           i.SlotID,
		ApplicationID:    i.ApplicationID,
		StartTime:        i.StartTime.In(loc),
		Canceled:         i.Canceled,
		CanceledAt:       i.CanceledAt,
		CreatedAt:        i.CreatedAt,
		CanceledPrevious: canceled,
	}
	if i.EndTime != nil {
		resp.EndTime = ptr.Ptr(i.EndTime.In(loc))
	}
	return resp
}

func formatID(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
