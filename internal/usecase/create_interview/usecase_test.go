package create_interview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/availability"
	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	slotRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/slot"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type txKey struct{}

// fakeTxManager выполняет транзакции строго по одной
type fakeTxManager struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return fn(context.WithValue(ctx, txKey{}, true))
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

type fakeSlots struct {
	slot *domain.Slot
	err  error
}

func (f *fakeSlots) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.slot == nil || f.slot.ID != id {
		return nil, slotRepo.ErrSlotNotFound
	}
	// копия, как из базы
	s := *f.slot
	cal := *f.slot.Calendar
	s.Calendar = &cal
	return &s, nil
}

// fakeInterviews хранилище интервью в памяти; реализует и InterviewCounter
type fakeInterviews struct {
	mu          sync.Mutex
	items       []*domain.Interview
	nextID      int64
	locks       []time.Time
	appLocks    []int64
	lockOutside bool
	createErr   error
}

func (f *fakeInterviews) LockSlotInstant(ctx context.Context, _ int64, start time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !inTx(ctx) {
		f.lockOutside = true
	}
	f.locks = append(f.locks, start)
	return nil
}

func (f *fakeInterviews) LockApplication(ctx context.Context, applicationID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !inTx(ctx) {
		f.lockOutside = true
	}
	f.appLocks = append(f.appLocks, applicationID)
	return nil
}

func (f *fakeInterviews) Create(_ context.Context, i *domain.Interview) (*domain.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	i.ID = f.nextID
	i.CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.items = append(f.items, i)
	return i, nil
}

func (f *fakeInterviews) CancelActiveForApplication(_ context.Context, applicationID, exceptID int64, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, i := range f.items {
		if i.ApplicationID != nil && *i.ApplicationID == applicationID && i.ID != exceptID && !i.Canceled {
			i.Canceled = true
			i.CanceledAt = &at
			n++
		}
	}
	return n, nil
}

func (f *fakeInterviews) CountActive(_ context.Context, calendarID int64, start time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, i := range f.items {
		if i.CalendarID == calendarID && i.StartTime.Equal(start) && i.IsActive() {
			n++
		}
	}
	return n, nil
}

type noConflicts struct{}

func (noConflicts) ListByCalendar(context.Context, int64) ([]*domain.Conflict, error) {
	return nil, nil
}

type stubValidator struct {
	verdict availability.Verdict
	err     error
	inTx    bool
}

func (s *stubValidator) Check(ctx context.Context, _ availability.Candidate, _ *domain.Slot) (availability.Verdict, error) {
	s.inTx = inTx(ctx)
	return s.verdict, s.err
}

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (f *fakeRecorder) RecordReservation(outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, outcome)
}

type fixture struct {
	loc        *time.Location
	slots      *fakeSlots
	interviews *fakeInterviews
	tx         *fakeTxManager
	now        time.Time
}

func newFixture(t *testing.T) *fixture {
	loc, err := time.LoadLocation("US/Eastern")
	require.NoError(t, err)

	return &fixture{
		loc: loc,
		slots: &fakeSlots{slot: &domain.Slot{
			ID:         3,
			CalendarID: 7,
			Calendar:   &domain.Calendar{ID: 7, Timezone: "US/Eastern", MinHoursNotice: 5, MaxHoursOut: 72},
			StartTime:  "14:00",
			EndTime:    "16:00",
			Monday:     true,
			Tuesday:    true,
			Wednesday:  true,
			MaxSpots:   15,
		}},
		interviews: &fakeInterviews{},
		tx:         &fakeTxManager{},
		now:        time.Date(2024, 3, 4, 8, 0, 0, 0, loc),
	}
}

func (f *fixture) validator(opts ...availability.Option) *availability.Validator {
	opts = append([]availability.Option{
		availability.WithTimeProvider(&availability.FixedTimeProvider{At: f.now}),
	}, opts...)
	return availability.NewValidator(f.interviews, noConflicts{}, nopLogger{}, opts...)
}

func (f *fixture) useCase(v Validator) *UseCase {
	return NewUseCase(f.slots, f.interviews, v, f.tx, nopLogger{}).
		WithTimeProvider(&availability.FixedTimeProvider{At: f.now})
}

func (f *fixture) mondayAt(h, m int) time.Time {
	return time.Date(2024, 3, 4, h, m, 0, 0, f.loc)
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)
	rec := &fakeRecorder{}

	resp, err := f.useCase(f.validator()).WithRecorder(rec).Execute(context.Background(), &Request{
		SlotID:    3,
		StartTime: f.mondayAt(14, 0).UTC(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(7), resp.CalendarID)
	assert.Equal(t, int64(3), resp.SlotID)
	assert.Equal(t, "2024-03-04T14:00:00-05:00", resp.StartTime.Format(time.RFC3339))
	require.NotNil(t, resp.EndTime)
	assert.Equal(t, "2024-03-04T16:00:00-05:00", resp.EndTime.Format(time.RFC3339))
	assert.False(t, resp.Canceled)

	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.interviews.locks, 1)
	assert.True(t, f.interviews.locks[0].Equal(f.mondayAt(14, 0)))
	assert.False(t, f.interviews.lockOutside)
	assert.Equal(t, []string{OutcomeCreated}, rec.outcomes)
}

func TestExecute_ExplicitEndTimeAndSecondsTruncated(t *testing.T) {
	f := newFixture(t)
	end := f.mondayAt(14, 45)

	resp, err := f.useCase(f.validator()).Execute(context.Background(), &Request{
		SlotID:    3,
		StartTime: f.mondayAt(14, 0).Add(30 * time.Second),
		EndTime:   &end,
	})
	require.NoError(t, err)

	assert.True(t, resp.StartTime.Equal(f.mondayAt(14, 0)))
	assert.True(t, resp.EndTime.Equal(end))
}

func TestExecute_Rejected(t *testing.T) {
	f := newFixture(t)
	f.slots.slot.Monday = false
	rec := &fakeRecorder{}

	_, err := f.useCase(f.validator()).WithRecorder(rec).Execute(context.Background(), &Request{
		SlotID:    3,
		StartTime: f.mondayAt(14, 0),
	})

	require.ErrorIs(t, err, ErrSlotNotAvailable)
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, availability.ReasonWeekdayDisabled, rejected.Reason)
	assert.Empty(t, f.interviews.items)
	assert.Equal(t, []string{OutcomeRejected}, rec.outcomes)
}

func TestExecute_MissingStartTimeIsUnavailable(t *testing.T) {
	f := newFixture(t)

	_, err := f.useCase(f.validator()).Execute(context.Background(), &Request{SlotID: 3})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.interviews.locks)
}

func TestExecute_ValidatesInsideTransaction(t *testing.T) {
	f := newFixture(t)
	v := &stubValidator{verdict: availability.Verdict{Available: true, Reason: availability.ReasonAvailable}}

	_, err := f.useCase(v).Execute(context.Background(), &Request{SlotID: 3, StartTime: f.mondayAt(14, 0)})
	require.NoError(t, err)
	assert.True(t, v.inTx)
}

func TestExecute_CancelsPreviousForApplication(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(f.validator())

	first, err := uc.Execute(context.Background(), &Request{
		SlotID: 3, StartTime: f.mondayAt(14, 0), ApplicationID: ptr.Ptr(int64(42)),
	})
	require.NoError(t, err)
	assert.Zero(t, first.CanceledPrevious)

	// перенос на вторник
	second, err := uc.Execute(context.Background(), &Request{
		SlotID: 3, StartTime: f.mondayAt(14, 0).AddDate(0, 0, 1), ApplicationID: ptr.Ptr(int64(42)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.CanceledPrevious)

	require.Len(t, f.interviews.items, 2)
	assert.True(t, f.interviews.items[0].Canceled)
	require.NotNil(t, f.interviews.items[0].CanceledAt)
	assert.True(t, f.interviews.items[0].CanceledAt.Equal(f.now))
	assert.False(t, f.interviews.items[1].Canceled)

	assert.Equal(t, []int64{42, 42}, f.interviews.appLocks)
	assert.False(t, f.interviews.lockOutside)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("slot not found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.useCase(f.validator()).Execute(context.Background(), &Request{SlotID: 99, StartTime: f.mondayAt(14, 0)})
		assert.ErrorIs(t, err, ErrSlotNotFound)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("invalid slot id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.useCase(f.validator()).Execute(context.Background(), &Request{SlotID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("end before start", func(t *testing.T) {
		f := newFixture(t)
		end := f.mondayAt(13, 0)
		_, err := f.useCase(f.validator()).Execute(context.Background(), &Request{
			SlotID: 3, StartTime: f.mondayAt(14, 0), EndTime: &end,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("slot lookup failure", func(t *testing.T) {
		f := newFixture(t)
		f.slots.err = errors.New("timeout")
		_, err := f.useCase(f.validator()).Execute(context.Background(), &Request{SlotID: 3, StartTime: f.mondayAt(14, 0)})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("validator failure", func(t *testing.T) {
		f := newFixture(t)
		storeErr := errors.New("conn reset")
		_, err := f.useCase(&stubValidator{err: storeErr}).Execute(context.Background(), &Request{
			SlotID: 3, StartTime: f.mondayAt(14, 0),
		})
		assert.ErrorIs(t, err, ErrInternal)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("insert failure", func(t *testing.T) {
		f := newFixture(t)
		f.interviews.createErr = errors.New("unique violation")
		rec := &fakeRecorder{}
		_, err := f.useCase(f.validator()).WithRecorder(rec).Execute(context.Background(), &Request{
			SlotID: 3, StartTime: f.mondayAt(14, 0),
		})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, []string{OutcomeFailed}, rec.outcomes)
	})
}

func TestExecute_ConcurrentReservationsRespectCapacity(t *testing.T) {
	tests := []struct {
		name   string
		policy availability.CapacityPolicy
		want   int
	}{
		{name: "strict", policy: availability.CapacityStrict, want: 2},
		// count <= max_spots: на границе проходит ещё одна запись
		{name: "inclusive", policy: availability.CapacityInclusive, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.slots.slot.MaxSpots = 2
			uc := f.useCase(f.validator(availability.WithCapacityPolicy(tt.policy)))

			const workers = 10
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				succeeded int
				rejected  int
			)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := uc.Execute(context.Background(), &Request{SlotID: 3, StartTime: f.mondayAt(14, 0)})
					mu.Lock()
					defer mu.Unlock()
					if err == nil {
						succeeded++
					} else if errors.Is(err, ErrSlotNotAvailable) {
						rejected++
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, tt.want, succeeded)
			assert.Equal(t, workers-tt.want, rejected)
		})
	}
}

func TestExecute_RepeatedHourCountsSameInstantItLocks(t *testing.T) {
	f := newFixture(t)
	f.slots.slot.StartTime = "01:00"
	f.slots.slot.EndTime = "02:00"
	f.slots.slot.Sunday = true
	f.slots.slot.MaxSpots = 1
	f.now = time.Date(2024, 11, 2, 12, 0, 0, 0, f.loc)
	uc := f.useCase(f.validator(availability.WithCapacityPolicy(availability.CapacityStrict)))

	// второе 01:30 3 ноября 2024 (EST)
	second := time.Date(2024, 11, 3, 6, 30, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{SlotID: 3, StartTime: second})
	require.NoError(t, err)
	assert.True(t, second.Equal(resp.StartTime))

	_, err = uc.Execute(context.Background(), &Request{SlotID: 3, StartTime: second})
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	require.Len(t, f.interviews.locks, 2)
	assert.True(t, second.Equal(f.interviews.locks[1]))
}
