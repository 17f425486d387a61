// Package get_wait_times use case подробной сводки ожидания
package get_wait_times

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

// UseCase use case подробной сводки: детальная оценка ожидания
// плюс статистика чекинов за сегодня
type UseCase struct {
	estimator    Estimator
	queueRepo    QueueRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	estimator Estimator,
	queueRepo QueueRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		estimator:    estimator,
		queueRepo:    queueRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute собирает сводку ожидания
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	estimate, err := uc.estimator.Detailed(ctx)
	if err != nil {
		uc.logger.Error("GetWaitTimes: failed to build detailed estimate: %v", err)
		return nil, fmt.Errorf("%w: failed to build estimate: %v", ErrInternal, err)
	}

	today, err := uc.todayStats(ctx)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetWaitTimes: waiting=%d, in_service=%d, barbers=%d, total_minutes=%.1f",
		estimate.Waiting, estimate.InService, estimate.ActiveBarbers, estimate.TotalMinutes)

	return &Response{
		CurrentQueue: CurrentQueue{
			Waiting:       estimate.Waiting,
			InService:     estimate.InService,
			ActiveBarbers: estimate.ActiveBarbers,
		},
		Estimates: Estimates{
			NewWalkinWaitMinutes: int(math.Round(estimate.TotalMinutes)),
			AvgServiceMinutes:    int(math.Round(estimate.AvgServiceMinutes)),
			HistoryWindowDays:    domain.HistoryWindowDays,
			SampleCount:          estimate.SampleCount,
		},
		TodayStats:     *today,
		Recommendation: estimate.Recommendation,
	}, nil
}

// todayStats распределение чекинов за сегодня по часам и самый загруженный час
func (uc *UseCase) todayStats(ctx context.Context) (*TodayStats, error) {
	now := uc.timeProvider.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	entries, err := uc.queueRepo.ListCheckedInBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		uc.logger.Error("GetWaitTimes: failed to list today's check-ins: %v", err)
		return nil, fmt.Errorf("%w: failed to list check-ins: %v", ErrInternal, err)
	}

	distribution := make(map[string]int)
	for _, entry := range entries {
		hour := fmt.Sprintf("%d:00", entry.CheckInTime.In(now.Location()).Hour())
		distribution[hour]++
	}

	var busiest *string
	best := 0
	for hour, count := range distribution {
		if count > best {
			best = count
			h := hour
			busiest = &h
		}
	}

	return &TodayStats{
		TotalCustomers:     len(entries),
		BusiestHour:        busiest,
		HourlyDistribution: distribution,
	}, nil
}
