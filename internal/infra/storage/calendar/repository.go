package calendar

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

var columns = []string{
	"id",
	"description",
	"timezone",
	"min_hours_notice",
	"max_hours_out",
	"created_at",
}

// Repository репозиторий календарей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает календарь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := getByIDQuery(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	cal, err := scanCalendar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan calendar: %w", ErrScanRow, err)
	}
	return cal, nil
}

// List возвращает все календари по возрастанию ID
func (r *Repository) List(ctx context.Context) ([]*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	calendars := make([]*domain.Calendar, 0)
	for rows.Next() {
		cal, err := scanCalendar(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan calendar: %v", ErrScanRow, err)
		}
		calendars = append(calendars, cal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrScanRow, err)
	}
	return calendars, nil
}

func getByIDQuery(id int64) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From("calendars").
		Where(squirrel.Eq{"id": id})
}

func listQuery() squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From("calendars").
		OrderBy("id ASC")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCalendar(row rowScanner) (*domain.Calendar, error) {
	var (
		cal       domain.Calendar
		createdAt sql.NullTime
	)
	if err := row.Scan(
		&cal.ID,
		&cal.Description,
		&cal.Timezone,
		&cal.MinHoursNotice,
		&cal.MaxHoursOut,
		&createdAt,
	); err != nil {
		return nil, err
	}
	cal.CreatedAt = createdAt.Time
	return &cal, nil
}
