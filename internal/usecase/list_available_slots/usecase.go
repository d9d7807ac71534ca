package list_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/availability"
	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	calendarRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/calendar"
)

// DefaultMaxRangeDays ограничение периода, если не задано конфигом
const DefaultMaxRangeDays = 62

// UseCase use case для выдачи доступных слотов календаря за период
type UseCase struct {
	calendarRepo CalendarRepository
	slotRepo     SlotRepository
	validator    Validator
	maxRangeDays int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendarRepo CalendarRepository,
	slotRepo SlotRepository,
	validator Validator,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	if maxRangeDays <= 0 {
		maxRangeDays = DefaultMaxRangeDays
	}
	return &UseCase{
		calendarRepo: calendarRepo,
		slotRepo:     slotRepo,
		validator:    validator,
		maxRangeDays: maxRangeDays,
		logger:       logger,
	}
}

// Execute возвращает календарь и доступные слоты за период
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CalendarID <= 0 {
		return nil, fmt.Errorf("%w: calendarID must be positive", ErrInvalidInput)
	}

	cal, err := uc.calendarRepo.GetByID(ctx, req.CalendarID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			uc.logger.Warn("ListAvailableSlots: calendar id=%d not found", req.CalendarID)
			return nil, ErrCalendarNotFound
		}
		uc.logger.Error("ListAvailableSlots: failed to get calendar id=%d: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}

	return uc.forCalendar(ctx, cal, req.StartDate, req.EndDate)
}

// ExecuteAll то же самое для всех календарей
func (uc *UseCase) ExecuteAll(ctx context.Context, req *RangeRequest) ([]*Response, error) {
	calendars, err := uc.calendarRepo.List(ctx)
	if err != nil {
		uc.logger.Error("ListAvailableSlots: failed to list calendars: %v", err)
		return nil, fmt.Errorf("%w: failed to list calendars: %v", ErrInternal, err)
	}

	result := make([]*Response, 0, len(calendars))
	for _, cal := range calendars {
		resp, err := uc.forCalendar(ctx, cal, req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
		result = append(result, resp)
	}
	return result, nil
}

func (uc *UseCase) forCalendar(ctx context.Context, cal *domain.Calendar, startDate, endDate *time.Time) (*Response, error) {
	resp := &Response{Calendar: cal, Slots: []Slot{}}

	loc, err := cal.Location()
	if err != nil {
		uc.logger.Error("ListAvailableSlots: calendar id=%d: %v", cal.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	from, to, ok, err := validateRange(startDate, endDate, loc, uc.maxRangeDays)
	if err != nil {
		uc.logger.Warn("ListAvailableSlots: calendar id=%d: %v", cal.ID, err)
		return nil, err
	}
	if !ok {
		return resp, nil
	}

	slots, err := uc.slotRepo.ListByCalendar(ctx, cal.ID)
	if err != nil {
		uc.logger.Error("ListAvailableSlots: failed to list slots of calendar id=%d: %v", cal.ID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}
	for _, s := range slots {
		s.Calendar = cal
	}

	// Перебираем дни включительно; AddDate сохраняет полночь при смене смещения
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		for _, s := range slots {
			if !s.EnabledOn(day.Weekday()) {
				continue
			}

			verdict, err := uc.validator.Check(ctx, availability.Candidate{Date: day, Time: s.StartTime}, s)
			if err != nil {
				uc.logger.Error("ListAvailableSlots: check slot id=%d on %s: %v", s.ID, day.Format(domain.DateFormat), err)
				return nil, fmt.Errorf("%w: check slot %d: %v", ErrInternal, s.ID, err)
			}
			if !verdict.Available {
				continue
			}

			start, err := s.StartOn(day, loc)
			if err != nil {
				return nil, fmt.Errorf("%w: slot %d start: %v", ErrInternal, s.ID, err)
			}
			end, err := s.EndOn(day, loc)
			if err != nil {
				return nil, fmt.Errorf("%w: slot %d end: %v", ErrInternal, s.ID, err)
			}

			resp.Slots = append(resp.Slots, Slot{
				SlotID:     s.ID,
				CalendarID: cal.ID,
				MaxSpots:   s.MaxSpots,
				StartTime:  start,
				EndTime:    end,
			})
		}
	}

	uc.logger.Info("ListAvailableSlots: calendar id=%d, %s..%s: %d slots available",
		cal.ID, from.Format(domain.DateFormat), to.Format(domain.DateFormat), len(resp.Slots))
	return resp, nil
}
