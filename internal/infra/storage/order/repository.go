// Package order read-only доступ к истории заказов
// Очередь использует заказы только как источник исторической статистики
// длительности обслуживания
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-QueueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-QueueService/pkg/psqlbuilder"
)

const statusInProgress = "in_progress"
const statusCompleted = "completed"

// Repository репозиторий истории заказов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// AverageServiceMinutes возвращает среднюю длительность обслуживания в минутах
// по завершенным заказам, законченным после since (учитываются только заказы
// с заполненными started_at и completed_at), и размер выборки
func (r *Repository) AverageServiceMinutes(ctx context.Context, since time.Time) (float64, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COALESCE(AVG(EXTRACT(EPOCH FROM (completed_at - started_at)) / 60), 0)",
	).
		From("orders").
		Where(squirrel.Eq{"status": statusCompleted}).
		Where(squirrel.GtOrEq{"completed_at": since}).
		Where(squirrel.NotEq{"started_at": nil}).
		ToSql()

	if err != nil {
		return 0, 0, fmt.Errorf("%w: AverageServiceMinutes - build select query: %v", ErrBuildQuery, err)
	}

	var (
		samples int
		avg     float64
	)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&samples, &avg); err != nil {
		return 0, 0, fmt.Errorf("%w: AverageServiceMinutes - scan: %v", ErrScanRow, err)
	}

	return avg, samples, nil
}

// CountInProgressByBarber возвращает количество заказов мастера в работе
// Один из сигналов для вычисления производного статуса мастера
func (r *Repository) CountInProgressByBarber(ctx context.Context, barberID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("orders").
		Where(squirrel.Eq{
			"barber_id": barberID,
			"status":    statusInProgress,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountInProgressByBarber - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountInProgressByBarber - scan: %v", ErrScanRow, err)
	}

	return count, nil
}
