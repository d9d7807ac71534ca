package conflict

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/psqlbuilder"
)

// Repository репозиторий периодов блокировки календаря
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфликтов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByCalendar возвращает все конфликты календаря
func (r *Repository) ListByCalendar(ctx context.Context, calendarID int64) ([]*domain.Conflict, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listByCalendarQuery(calendarID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCalendar - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCalendar - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	conflicts := make([]*domain.Conflict, 0)
	for rows.Next() {
		var c domain.Conflict
		if err := rows.Scan(&c.ID, &c.CalendarID, &c.StartTime, &c.EndTime); err != nil {
			return nil, fmt.Errorf("%w: ListByCalendar - scan conflict: %v", ErrScanRow, err)
		}
		conflicts = append(conflicts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCalendar - iterate rows: %w", ErrScanRow, err)
	}
	return conflicts, nil
}

func listByCalendarQuery(calendarID int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "calendar_id", "start_time", "end_time").
		From("conflicts").
		Where(squirrel.Eq{"calendar_id": calendarID}).
		OrderBy("start_time ASC")
}
