package queue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	"github.com/m04kA/SMC-QueueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-QueueService/pkg/psqlbuilder"
)

var entryColumns = []string{
	"id",
	"customer_name",
	"customer_phone",
	"customer_id",
	"requested_barber_id",
	"service_notes",
	"position",
	"status",
	"estimated_wait",
	"check_in_time",
	"called_time",
	"completed_time",
}

// Repository репозиторий для работы с очередью walk-in клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория очереди
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в очередь
// Позиция и зафиксированная оценка ожидания вычисляются вызывающим кодом
// (use case постановки в очередь) внутри сериализуемой транзакции,
// чтобы два конкурентных добавления не получили одну позицию
func (r *Repository) Create(ctx context.Context, entry *domain.QueueEntry) (*domain.QueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("walkin_queue").
		Columns(
			"customer_name",
			"customer_phone",
			"customer_id",
			"requested_barber_id",
			"service_notes",
			"position",
			"status",
			"estimated_wait",
		).
		Values(
			entry.CustomerName,
			entry.CustomerPhone,
			entry.CustomerID,
			entry.RequestedBarberID,
			entry.ServiceNotes,
			entry.Position,
			entry.Status,
			entry.EstimatedWait,
		).
		Suffix("RETURNING id, check_in_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.CheckInTime,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// GetByID получает запись очереди по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.QueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("walkin_queue").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := r.scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// ListActive получает активные записи (waiting, called) по возрастанию позиции
// Повторный вызов без изменений очереди возвращает идентичный результат
func (r *Repository) ListActive(ctx context.Context) ([]*domain.QueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("walkin_queue").
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// ListActiveByBarber получает активные записи, ожидающие конкретного мастера
func (r *Repository) ListActiveByBarber(ctx context.Context, barberID int64) ([]*domain.QueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("walkin_queue").
		Where(squirrel.Eq{
			"requested_barber_id": barberID,
			"status":              domain.ActiveStatuses,
		}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByBarber - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByBarber - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// FindActiveByPhone ищет активную запись по подстроке номера телефона
// Записи в терминальных статусах не рассматриваются
func (r *Repository) FindActiveByPhone(ctx context.Context, phone string) (*domain.QueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("walkin_queue").
		Where(squirrel.Like{"customer_phone": "%" + phone + "%"}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("position ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByPhone - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := r.scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByPhone - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// MaxActivePosition возвращает максимальную позицию среди активных записей
// (0, если активных записей нет)
func (r *Repository) MaxActivePosition(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(position), 0)").
		From("walkin_queue").
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MaxActivePosition - build select query: %v", ErrBuildQuery, err)
	}

	var maxPosition int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&maxPosition); err != nil {
		return 0, fmt.Errorf("%w: MaxActivePosition - scan: %v", ErrScanRow, err)
	}

	return maxPosition, nil
}

// CountByStatus возвращает количество записей в указанном статусе
func (r *Repository) CountByStatus(ctx context.Context, status domain.QueueStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("walkin_queue").
		Where(squirrel.Eq{"status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountWaitingAhead возвращает количество ожидающих клиентов с позицией
// строго меньше указанной
func (r *Repository) CountWaitingAhead(ctx context.Context, position int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("walkin_queue").
		Where(squirrel.Eq{"status": domain.StatusWaiting}).
		Where(squirrel.Lt{"position": position}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountWaitingAhead - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountWaitingAhead - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус записи очереди
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.QueueStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("walkin_queue").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// SetCalled переводит запись в статус called и фиксирует время вызова
func (r *Repository) SetCalled(ctx context.Context, id int64, calledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("walkin_queue").
		Set("status", domain.StatusCalled).
		Set("called_time", calledAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCalled - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetCalled")
}

// SetCompleted переводит запись в статус completed и фиксирует время завершения
func (r *Repository) SetCompleted(ctx context.Context, id int64, completedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("walkin_queue").
		Set("status", domain.StatusCompleted).
		Set("completed_time", completedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCompleted - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetCompleted")
}

// ShiftPositionsAfter сдвигает на единицу вниз позиции всех активных записей
// с позицией строго больше указанной
// Вызывается внутри сериализуемой транзакции после ухода клиента из очереди,
// чтобы последовательность позиций осталась непрерывной (1..N)
func (r *Repository) ShiftPositionsAfter(ctx context.Context, position int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("walkin_queue").
		Set("position", squirrel.Expr("position - 1")).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		Where(squirrel.Gt{"position": position}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ShiftPositionsAfter - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ShiftPositionsAfter - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ListCheckedInBetween получает все записи, вставшие в очередь в интервале [from, to)
// Используется для дневной статистики (распределение по часам)
func (r *Repository) ListCheckedInBetween(ctx context.Context, from, to time.Time) ([]*domain.QueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("walkin_queue").
		Where(squirrel.GtOrEq{"check_in_time": from}).
		Where(squirrel.Lt{"check_in_time": to}).
		OrderBy("check_in_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCheckedInBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCheckedInBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// AverageCalledWaitMinutes возвращает среднее время от постановки в очередь
// до вызова (в минутах) по завершенным записям, вставшим в очередь после since
// Возвращает 0, если выборка пуста
func (r *Repository) AverageCalledWaitMinutes(ctx context.Context, since time.Time) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COALESCE(AVG(EXTRACT(EPOCH FROM (called_time - check_in_time)) / 60), 0)",
	).
		From("walkin_queue").
		Where(squirrel.Eq{"status": domain.StatusCompleted}).
		Where(squirrel.GtOrEq{"check_in_time": since}).
		Where(squirrel.NotEq{"called_time": nil}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: AverageCalledWaitMinutes - build select query: %v", ErrBuildQuery, err)
	}

	var avg float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&avg); err != nil {
		return 0, fmt.Errorf("%w: AverageCalledWaitMinutes - scan: %v", ErrScanRow, err)
	}

	return avg, nil
}

// execExpectingRow выполняет запрос, который должен затронуть ровно одну строку
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEntry сканирует одну запись очереди
func (r *Repository) scanEntry(row rowScanner) (*domain.QueueEntry, error) {
	var entry domain.QueueEntry

	err := row.Scan(
		&entry.ID,
		&entry.CustomerName,
		&entry.CustomerPhone,
		&entry.CustomerID,
		&entry.RequestedBarberID,
		&entry.ServiceNotes,
		&entry.Position,
		&entry.Status,
		&entry.EstimatedWait,
		&entry.CheckInTime,
		&entry.CalledTime,
		&entry.CompletedTime,
	)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// scanEntries сканирует результаты запроса в слайс записей очереди
func (r *Repository) scanEntries(rows *sql.Rows) ([]*domain.QueueEntry, error) {
	entries := make([]*domain.QueueEntry, 0)

	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
