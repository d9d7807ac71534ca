package interview

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

const table = "interviews"

var columns = []string{
	"id",
	"calendar_id",
	"slot_id",
	"application_id",
	"start_time",
	"end_time",
	"canceled",
	"canceled_at",
	"created_at",
}

// Repository репозиторий для работы с интервью
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория интервью
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountActive количество не отменённых интервью календаря, начинающихся ровно в start
func (r *Repository) CountActive(ctx context.Context, calendarID int64, start time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := countActiveQuery(calendarID, start).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - execute query: %w", ErrExecQuery, err)
	}
	return count, nil
}

func countActiveQuery(calendarID int64, start time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{
			"calendar_id": calendarID,
			"start_time":  start.UTC(),
			"canceled":    false,
		})
}

// LockSlotInstant берёт транзакционную advisory-блокировку на пару (календарь, время начала).
// Все записи на одно и то же время календаря выполняются последовательно;
// блокировка снимается при завершении транзакции.
func (r *Repository) LockSlotInstant(ctx context.Context, calendarID int64, start time.Time) error {
	return r.advisoryLock(ctx, "LockSlotInstant", slotInstantKey(calendarID, start))
}

// LockApplication сериализует записи одной заявки (отмена прежних интервью)
func (r *Repository) LockApplication(ctx context.Context, applicationID int64) error {
	return r.advisoryLock(ctx, "LockApplication", applicationKey(applicationID))
}

func (r *Repository) advisoryLock(ctx context.Context, op, key string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := lockQuery(key).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	return nil
}

func slotInstantKey(calendarID int64, start time.Time) string {
	return fmt.Sprintf("interview:%d:%d", calendarID, start.Unix())
}

func applicationKey(applicationID int64) string {
	return fmt.Sprintf("interview-application:%d", applicationID)
}

func lockQuery(key string) squirrel.SelectBuilder {
	return psqlbuilder.Select().Column(squirrel.Expr("pg_advisory_xact_lock(hashtextextended(?, 0))", key))
}

// Create сохраняет новое интервью
func (r *Repository) Create(ctx context.Context, interview *domain.Interview) (*domain.Interview, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var endTime *time.Time
	if interview.EndTime != nil {
		endTime = ptr.Ptr(interview.EndTime.UTC())
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"calendar_id",
			"slot_id",
			"application_id",
			"start_time",
			"end_time",
		).
		Values(
			interview.CalendarID,
			interview.SlotID,
			interview.ApplicationID,
			interview.StartTime.UTC(),
			endTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&interview.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	interview.CreatedAt = createdAt.Time

	return interview, nil
}

// GetByID получает интервью по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	interview, err := scanInterview(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan interview: %w", ErrScanRow, err)
	}
	return interview, nil
}

// List возвращает интервью по фильтру, по возрастанию времени начала
func (r *Repository) List(ctx context.Context, filter domain.InterviewsFilter) ([]*domain.Interview, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	interviews := make([]*domain.Interview, 0)
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan interview: %v", ErrScanRow, err)
		}
		interviews = append(interviews, interview)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrScanRow, err)
	}

	return interviews, nil
}

func listQuery(filter domain.InterviewsFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.CalendarID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"calendar_id": *filter.CalendarID})
	}
	if filter.ApplicationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"application_id": *filter.ApplicationID})
	}
	if filter.StartFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": filter.StartFrom.UTC()})
	}
	if filter.StartTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_time": filter.StartTo.UTC()})
	}
	if !filter.IncludeCanceled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"canceled": false})
	}

	return selectBuilder.OrderBy("start_time ASC", "id ASC")
}

// Cancel отменяет интервью: canceled = true, canceled_at = at
func (r *Repository) Cancel(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("canceled", true).
		Set("canceled_at", at.UTC()).
		Where(squirrel.Eq{"id": id, "canceled": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - rows affected: %v", ErrExecQuery, err)
	}
	if affected > 0 {
		return nil
	}

	// Ничего не обновили: либо нет такого интервью, либо оно уже отменено
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrAlreadyCanceled
}

// CancelActiveForApplication отменяет активные интервью заявки, кроме exceptID.
// Вызывается после записи на новое время (перенос).
func (r *Repository) CancelActiveForApplication(ctx context.Context, applicationID, exceptID int64, at time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("canceled", true).
		Set("canceled_at", at.UTC()).
		Where(squirrel.Eq{"application_id": applicationID, "canceled": false}).
		Where(squirrel.NotEq{"id": exceptID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelActiveForApplication - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelActiveForApplication - execute update: %w", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelActiveForApplication - rows affected: %v", ErrExecQuery, err)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInterview(row rowScanner) (*domain.Interview, error) {
	var (
		interview     domain.Interview
		applicationID sql.NullInt64
		endTime       sql.NullTime
		canceledAt    sql.NullTime
		createdAt     sql.NullTime
	)

	err := row.Scan(
		&interview.ID,
		&interview.CalendarID,
		&interview.SlotID,
		&applicationID,
		&interview.StartTime,
		&endTime,
		&interview.Canceled,
		&canceledAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if applicationID.Valid {
		interview.ApplicationID = ptr.Ptr(applicationID.Int64)
	}
	if endTime.Valid {
		interview.EndTime = ptr.Ptr(endTime.Time)
	}
	if canceledAt.Valid {
		interview.CanceledAt = ptr.Ptr(canceledAt.Time)
	}
	interview.CreatedAt = createdAt.Time

	return &interview, nil
}
