package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/psqlbuilder"
)

var slotColumns = []string{
	"s.id",
	"s.calendar_id",
	"s.start_time",
	"s.end_time",
	"s.monday",
	"s.tuesday",
	"s.wednesday",
	"s.thursday",
	"s.friday",
	"s.saturday",
	"s.sunday",
	"s.max_spots",
}

var calendarColumns = []string{
	"c.description",
	"c.timezone",
	"c.min_hours_notice",
	"c.max_hours_out",
	"c.created_at",
}

// Repository репозиторий слотов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот вместе с его календарём
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := getByIDQuery(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s         domain.Slot
		cal       domain.Calendar
		createdAt sql.NullTime
	)
	dest := append(slotDest(&s),
		&cal.Description,
		&cal.Timezone,
		&cal.MinHoursNotice,
		&cal.MaxHoursOut,
		&createdAt,
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	cal.ID = s.CalendarID
	cal.CreatedAt = createdAt.Time
	s.Calendar = &cal
	return &s, nil
}

func getByIDQuery(id int64) squirrel.SelectBuilder {
	return psqlbuilder.Select(append(append([]string{}, slotColumns...), calendarColumns...)...).
		From("slots s").
		Join("calendars c ON c.id = s.calendar_id").
		Where(squirrel.Eq{"s.id": id})
}

// ListByCalendar возвращает слоты календаря, упорядоченные по времени начала.
// Calendar у слотов не заполняется - он уже известен вызывающему.
func (r *Repository) ListByCalendar(ctx context.Context, calendarID int64) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots s").
		Where(squirrel.Eq{"s.calendar_id": calendarID}).
		OrderBy("s.start_time ASC", "s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCalendar - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCalendar - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(slotDest(&s)...); err != nil {
			return nil, fmt.Errorf("%w: ListByCalendar - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCalendar - iterate rows: %w", ErrScanRow, err)
	}
	return slots, nil
}

func slotDest(s *domain.Slot) []interface{} {
	return []interface{}{
		&s.ID,
		&s.CalendarID,
		&s.StartTime,
		&s.EndTime,
		&s.Monday,
		&s.Tuesday,
		&s.Wednesday,
		&s.Thursday,
		&s.Friday,
		&s.Saturday,
		&s.Sunday,
		&s.MaxSpots,
	}
}
