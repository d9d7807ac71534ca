package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// Validator решает, можно ли записаться на слот в указанное время.
// Проверки выполняются по порядку до первой неудачной:
// день недели, окно записи, свободные места, пересечение с конфликтами.
// Состояния не хранит, безопасен для конкурентного использования.
type Validator struct {
	interviews InterviewCounter
	conflicts  ConflictLister
	clock      TimeProvider
	capacity   CapacityPolicy
	recorder   VerdictRecorder
	logger     Logger
}

// Option настройка валидатора
type Option func(*Validator)

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(v *Validator) {
		if tp != nil {
			v.clock = tp
		}
	}
}

// WithCapacityPolicy задаёт правило проверки мест
func WithCapacityPolicy(p CapacityPolicy) Option {
	return func(v *Validator) {
		v.capacity = p
	}
}

// WithVerdictRecorder включает учёт результатов в метриках
func WithVerdictRecorder(r VerdictRecorder) Option {
	return func(v *Validator) {
		v.recorder = r
	}
}

// NewValidator создает новый экземпляр валидатора
func NewValidator(interviews InterviewCounter, conflicts ConflictLister, logger Logger, opts ...Option) *Validator {
	v := &Validator{
		interviews: interviews,
		conflicts:  conflicts,
		clock:      &RealTimeProvider{},
		capacity:   CapacityInclusive,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IsAvailable true, только если пройдены все четыре проверки
func (v *Validator) IsAvailable(ctx context.Context, cand Candidate, slot *domain.Slot) (bool, error) {
	verdict, err := v.Check(ctx, cand, slot)
	if err != nil {
		return false, err
	}
	return verdict.Available, nil
}

// Check проверяет кандидата и возвращает вердикт с причиной отказа.
// Ошибка возвращается только при сбое источников данных или некорректном слоте;
// недоступность слота ошибкой не является.
func (v *Validator) Check(ctx context.Context, cand Candidate, slot *domain.Slot) (Verdict, error) {
	verdict, err := v.check(ctx, cand, slot)
	if err != nil {
		return Verdict{}, err
	}
	if v.recorder != nil {
		v.recorder.RecordAvailabilityVerdict(string(verdict.Reason))
	}
	return verdict, nil
}

func (v *Validator) check(ctx context.Context, cand Candidate, slot *domain.Slot) (Verdict, error) {
	// Без даты - просто "недоступно"
	if !cand.HasDate() {
		v.logger.Info("Availability: slot=%d rejected: candidate has no date", slotID(slot))
		return rejected(ReasonMissingDate), nil
	}

	if slot == nil || slot.Calendar == nil {
		return Verdict{}, fmt.Errorf("%w: slot=%d", ErrMissingCalendar, slotID(slot))
	}
	cal := slot.Calendar

	loc, err := cal.Location()
	if err != nil {
		return Verdict{}, err
	}

	// 1. День недели
	if !slot.EnabledOn(cand.Date.Weekday()) {
		v.logger.Info("Availability: slot=%d rejected for %s: %s is disabled",
			slot.ID, cand, cand.Date.Weekday())
		return rejected(ReasonWeekdayDisabled), nil
	}

	slotStart, err := slot.StartOn(cand.Date, loc)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: start %q: %v", ErrInvalidSlot, slot.StartTime, err)
	}
	slotEnd, err := slot.EndOn(cand.Date, loc)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: end %q: %v", ErrInvalidSlot, slot.EndTime, err)
	}

	// 2. Окно записи: now читается один раз, границы включительно
	now := v.clock.Now().In(loc)
	minLimit, maxLimit := cal.NoticeWindow(now)
	if slotStart.Before(minLimit) || slotStart.After(maxLimit) {
		v.logger.Info("Availability: slot=%d rejected for %s: start %s outside [%s, %s]",
			slot.ID, cand, slotStart.Format(timeLayout), minLimit.Format(timeLayout), maxLimit.Format(timeLayout))
		return rejected(ReasonOutsideNotice), nil
	}

	// 3. Свободные места на точное время кандидата
	instant, err := cand.Instant(slot, loc)
	if err != nil {
		return Verdict{}, err
	}
	taken, err := v.interviews.CountActive(ctx, cal.ID, instant)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: calendar=%d start=%s: %w", ErrCountInterviews, cal.ID, instant.Format(timeLayout), err)
	}
	if !v.capacity.admits(taken, slot.MaxSpots) {
		v.logger.Info("Availability: slot=%d rejected for %s: %d/%d spots taken",
			slot.ID, cand, taken, slot.MaxSpots)
		return rejected(ReasonSlotFull), nil
	}

	// 4. Конфликты календаря
	conflicts, err := v.conflicts.ListByCalendar(ctx, cal.ID)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: calendar=%d: %w", ErrListConflicts, cal.ID, err)
	}
	for _, c := range conflicts {
		if c.Overlaps(slotStart, slotEnd) {
			v.logger.Info("Availability: slot=%d rejected for %s: overlaps conflict=%d [%s, %s)",
				slot.ID, cand, c.ID, c.StartTime.In(loc).Format(timeLayout), c.EndTime.In(loc).Format(timeLayout))
			verdict := rejected(ReasonConflictOverlap)
			verdict.ConflictID = c.ID
			return verdict, nil
		}
	}

	return available(), nil
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func slotID(slot *domain.Slot) int64 {
	if slot == nil {
		return 0
	}
	return slot.ID
}
