package barber

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

// Repository репозиторий для работы с мастерами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"phone",
		"email",
		"commission_rate",
		"specialties",
		"is_active",
		"is_available",
		"created_at",
	).
		From("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Barber
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Name,
		&b.Phone,
		&b.Email,
		&b.CommissionRate,
		&b.Specialties,
		&b.IsActive,
		&b.IsAvailable,
		&b.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan barber: %v", ErrScanRow, err)
	}

	return &b, nil
}

// CountAvailable возвращает количество активных и доступных мастеров
// Используется как знаменатель в формулах оценки ожидания
func (r *Repository) CountAvailable(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("barbers").
		Where(squirrel.Eq{
			"is_active":    true,
			"is_available": true,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountAvailable - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountAvailable - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// HasOpenTimeClock проверяет, есть ли у мастера открытая запись о смене,
// начатая не раньше dayStart
func (r *Repository) HasOpenTimeClock(ctx context.Context, barberID int64, dayStart time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("timeclock").
		Where(squirrel.Eq{
			"barber_id": barberID,
			"clock_out": nil,
		}).
		Where(squirrel.GtOrEq{"clock_in": dayStart}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasOpenTimeClock - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasOpenTimeClock - scan: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// HasOpenBreak проверяет, есть ли у мастера незавершенный перерыв
func (r *Repository) HasOpenBreak(ctx context.Context, barberID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("barber_breaks").
		Where(squirrel.Eq{
			"barber_id": barberID,
			"end_time":  nil,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasOpenBreak - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasOpenBreak - scan: %v", ErrScanRow, err)
	}

	return count > 0, nil
}
