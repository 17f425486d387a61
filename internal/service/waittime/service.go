// Package waittime оценка времени ожидания в очереди
//
// Поддерживаются два режима:
//   - простой: фиксированные 25 минут на человека, деление на количество
//     доступных мастеров (знаменатель не меньше 1), округление вниз;
//   - детальный: средняя длительность обслуживания по завершенным заказам
//     за трейлинг-окно, уже идущие обслуживания считаются наполовину
//     завершенными.
package waittime

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	"github.com/m04kA/SMC-QueueService/internal/service/waittime/models"
)

// Simple простой режим оценки: floor(peopleAhead * 25 / max(barbers, 1))
// Никогда не возвращает отрицательное значение и не делит на ноль
func Simple(peopleAhead, activeBarbers int) int {
	if peopleAhead <= 0 {
		return 0
	}
	if activeBarbers < 1 {
		activeBarbers = 1
	}
	return peopleAhead * domain.FixedServiceMinutes / activeBarbers
}

// Service сервис оценки времени ожидания
type Service struct {
	queueRepo    QueueRepository
	barberRepo   BarberRepository
	orderRepo    OrderRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса оценки ожидания
func NewService(
	queueRepo QueueRepository,
	barberRepo BarberRepository,
	orderRepo OrderRepository,
	logger Logger,
) *Service {
	return &Service{
		queueRepo:    queueRepo,
		barberRepo:   barberRepo,
		orderRepo:    orderRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// EstimateForNewJoin оценивает ожидание для нового клиента простым режимом:
// впереди него окажутся все клиенты в статусе waiting
func (s *Service) EstimateForNewJoin(ctx context.Context) (int, error) {
	waiting, err := s.queueRepo.CountByStatus(ctx, domain.StatusWaiting)
	if err != nil {
		s.logger.Error("EstimateForNewJoin: failed to count waiting entries: %v", err)
		return 0, fmt.Errorf("%w: EstimateForNewJoin - count waiting: %v", ErrInternal, err)
	}

	activeBarbers, err := s.barberRepo.CountAvailable(ctx)
	if err != nil {
		s.logger.Error("EstimateForNewJoin: failed to count available barbers: %v", err)
		return 0, fmt.Errorf("%w: EstimateForNewJoin - count barbers: %v", ErrInternal, err)
	}

	return Simple(waiting, activeBarbers), nil
}

// Detailed детальный режим оценки для аналитического endpoint'а
//
// avg = средняя длительность обслуживания за последние HistoryWindowDays дней
// current_wait = in_service * avg * 0.5 / barbers
// queue_wait   = waiting * avg / barbers
// Если доступных мастеров нет, оценка вырождается в waiting * avg
func (s *Service) Detailed(ctx context.Context) (*models.DetailedEstimate, error) {
	now := s.timeProvider.Now()

	waiting, err := s.queueRepo.CountByStatus(ctx, domain.StatusWaiting)
	if err != nil {
		s.logger.Error("Detailed: failed to count waiting entries: %v", err)
		return nil, fmt.Errorf("%w: Detailed - count waiting: %v", ErrInternal, err)
	}

	inService, err := s.queueRepo.CountByStatus(ctx, domain.StatusInService)
	if err != nil {
		s.logger.Error("Detailed: failed to count in_service entries: %v", err)
		return nil, fmt.Errorf("%w: Detailed - count in_service: %v", ErrInternal, err)
	}

	activeBarbers, err := s.barberRepo.CountAvailable(ctx)
	if err != nil {
		s.logger.Error("Detailed: failed to count available barbers: %v", err)
		return nil, fmt.Errorf("%w: Detailed - count barbers: %v", ErrInternal, err)
	}

	since := now.AddDate(0, 0, -domain.HistoryWindowDays)
	avg, samples, err := s.orderRepo.AverageServiceMinutes(ctx, since)
	if err != nil {
		s.logger.Error("Detailed: failed to get average service time: %v", err)
		return nil, fmt.Errorf("%w: Detailed - average service time: %v", ErrInternal, err)
	}

	// Fallback на фиксированную длительность при пустой выборке
	if samples == 0 {
		avg = domain.FixedServiceMinutes
	}

	estimate := s.blend(waiting, inService, activeBarbers, avg)
	estimate.SampleCount = samples

	s.logger.Info("Detailed: waiting=%d, in_service=%d, barbers=%d, avg=%.1f, total=%.1f, level=%s",
		waiting, inService, activeBarbers, avg, estimate.TotalMinutes, estimate.Recommendation.Level)

	return estimate, nil
}

// blend вычисляет детальную оценку из подготовленных входов
func (s *Service) blend(waiting, inService, activeBarbers int, avgServiceMinutes float64) *models.DetailedEstimate {
	est := &models.DetailedEstimate{
		Waiting:           waiting,
		InService:         inService,
		ActiveBarbers:     activeBarbers,
		AvgServiceMinutes: avgServiceMinutes,
	}

	if activeBarbers > 0 {
		est.CurrentWaitMinutes = float64(inService) * avgServiceMinutes * domain.InProgressCompletionFactor / float64(activeBarbers)
		est.QueueWaitMinutes = float64(waiting) * avgServiceMinutes / float64(activeBarbers)
		est.TotalMinutes = est.CurrentWaitMinutes + est.QueueWaitMinutes
	} else {
		est.QueueWaitMinutes = float64(waiting) * avgServiceMinutes
		est.TotalMinutes = est.QueueWaitMinutes
	}

	est.Recommendation = domain.RecommendationForWait(est.TotalMinutes)
	return est
}
