// Package queue жизненный цикл записей walk-in очереди
//
// Переходы статусов строго валидируются по таблице domain.transitionMap:
// waiting -> called -> in_service -> completed, уход из очереди (left)
// возможен из waiting и called. Позиции активных записей образуют
// непрерывную последовательность 1..N; при уходе клиента хвост очереди
// перенумеровывается в сериализуемой транзакции.
package queue

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	barberRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/barber"
	queueRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/queue"
	"github.com/m04kA/SMC-QueueService/internal/service/queue/models"
	"github.com/m04kA/SMC-QueueService/internal/service/waittime"
)

// Service сервис управления очередью
type Service struct {
	queueRepo    QueueRepository
	barberRepo   BarberRepository
	orderRepo    OrderRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса очереди
func NewService(
	queueRepo QueueRepository,
	barberRepo BarberRepository,
	orderRepo OrderRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		queueRepo:    queueRepo,
		barberRepo:   barberRepo,
		orderRepo:    orderRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListActive возвращает активные записи очереди по возрастанию позиции
func (s *Service) ListActive(ctx context.Context) (*models.QueueListResponse, error) {
	entries, err := s.queueRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.QueueListResponse{
		Entries: make([]models.QueueEntryResponse, 0, len(entries)),
	}

	for _, entry := range entries {
		barberName := s.resolveBarberName(ctx, entry.RequestedBarberID)
		resp.Entries = append(resp.Entries, models.FromDomainEntry(entry, barberName, now))
	}

	s.logger.Info("ListActive: returned %d entries", len(resp.Entries))
	return resp, nil
}

// Call вызывает клиента (его очередь подошла)
// Допустим только из статуса waiting
func (s *Service) Call(ctx context.Context, entryID int64) (*models.CallResponse, error) {
	s.logger.Info("Call: calling entry id=%d", entryID)

	entry, err := s.getEntry(ctx, "Call", entryID)
	if err != nil {
		return nil, err
	}

	if !domain.ValidTransition(domain.ActionCall, entry.Status) {
		s.logger.Warn("Call: invalid transition for entry id=%d, status=%s", entryID, entry.Status)
		return nil, fmt.Errorf("%w: cannot call entry in status %s", ErrInvalidTransition, entry.Status)
	}

	if err := s.queueRepo.SetCalled(ctx, entryID, s.timeProvider.Now()); err != nil {
		if errors.Is(err, queueRepo.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("Call: repository error for entry id=%d: %v", entryID, err)
		return nil, fmt.Errorf("%w: Call - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Call: entry id=%d called", entryID)
	return &models.CallResponse{Status: string(domain.StatusCalled)}, nil
}

// StartService начинает обслуживание клиента указанным мастером
// Мастер должен существовать; переход допустим из waiting и called
func (s *Service) StartService(ctx context.Context, entryID, barberID int64) (*models.StartServiceResponse, error) {
	s.logger.Info("StartService: entry id=%d, barber id=%d", entryID, barberID)

	entry, err := s.getEntry(ctx, "StartService", entryID)
	if err != nil {
		return nil, err
	}

	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("StartService: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("StartService: failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: StartService - failed to get barber: %v", ErrInternal, err)
	}

	if !domain.ValidTransition(domain.ActionStartService, entry.Status) {
		s.logger.Warn("StartService: invalid transition for entry id=%d, status=%s", entryID, entry.Status)
		return nil, fmt.Errorf("%w: cannot start service for entry in status %s", ErrInvalidTransition, entry.Status)
	}

	if err := s.queueRepo.UpdateStatus(ctx, entryID, domain.StatusInService); err != nil {
		if errors.Is(err, queueRepo.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("StartService: repository error for entry id=%d: %v", entryID, err)
		return nil, fmt.Errorf("%w: StartService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("StartService: entry id=%d in service with barber id=%d", entryID, barberID)
	return &models.StartServiceResponse{
		CustomerName: entry.CustomerName,
		BarberName:   barber.Name,
	}, nil
}

// Complete завершает обслуживание клиента
// Допустим только из статуса in_service
func (s *Service) Complete(ctx context.Context, entryID int64) error {
	s.logger.Info("Complete: entry id=%d", entryID)

	entry, err := s.getEntry(ctx, "Complete", entryID)
	if err != nil {
		return err
	}

	if !domain.ValidTransition(domain.ActionComplete, entry.Status) {
		s.logger.Warn("Complete: invalid transition for entry id=%d, status=%s", entryID, entry.Status)
		return fmt.Errorf("%w: cannot complete entry in status %s", ErrInvalidTransition, entry.Status)
	}

	if err := s.queueRepo.SetCompleted(ctx, entryID, s.timeProvider.Now()); err != nil {
		if errors.Is(err, queueRepo.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("Complete: repository error for entry id=%d: %v", entryID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: entry id=%d completed", entryID)
	return nil
}

// Remove убирает клиента из очереди (ушел, не дождавшись)
// Запись переводится в left, позиции всех активных записей правее
// сдвигаются на единицу вниз: последовательность 1..N остается непрерывной
// Вся операция выполняется в сериализуемой транзакции, чтобы конкурентные
// удаления применяли перенумерацию последовательно
func (s *Service) Remove(ctx context.Context, entryID int64) error {
	s.logger.Info("Remove: entry id=%d", entryID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		entry, err := s.getEntry(txCtx, "Remove", entryID)
		if err != nil {
			return err
		}

		if !domain.ValidTransition(domain.ActionLeave, entry.Status) {
			s.logger.Warn("Remove: invalid transition for entry id=%d, status=%s", entryID, entry.Status)
			return fmt.Errorf("%w: cannot remove entry in status %s", ErrInvalidTransition, entry.Status)
		}

		if err := s.queueRepo.UpdateStatus(txCtx, entryID, domain.StatusLeft); err != nil {
			if errors.Is(err, queueRepo.ErrEntryNotFound) {
				return ErrEntryNotFound
			}
			s.logger.Error("Remove: repository error for entry id=%d: %v", entryID, err)
			return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
		}

		if err := s.queueRepo.ShiftPositionsAfter(txCtx, entry.Position); err != nil {
			s.logger.Error("Remove: failed to shift positions after %d: %v", entry.Position, err)
			return fmt.Errorf("%w: Remove - failed to shift positions: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Remove: entry id=%d removed from queue", entryID)
	return nil
}

// EntryStatus возвращает текущую позицию и свежую оценку ожидания
// для самопроверки клиента
func (s *Service) EntryStatus(ctx context.Context, entryID int64) (*models.EntryStatusResponse, error) {
	entry, err := s.getEntry(ctx, "EntryStatus", entryID)
	if err != nil {
		return nil, err
	}

	ahead, err := s.queueRepo.CountWaitingAhead(ctx, entry.Position)
	if err != nil {
		s.logger.Error("EntryStatus: failed to count people ahead for entry id=%d: %v", entryID, err)
		return nil, fmt.Errorf("%w: EntryStatus - count people ahead: %v", ErrInternal, err)
	}

	activeBarbers, err := s.barberRepo.CountAvailable(ctx)
	if err != nil {
		s.logger.Error("EntryStatus: failed to count available barbers: %v", err)
		return nil, fmt.Errorf("%w: EntryStatus - count barbers: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	return &models.EntryStatusResponse{
		ID:                   entry.ID,
		CustomerName:         entry.CustomerName,
		Position:             entry.Position,
		PeopleAhead:          ahead,
		Status:               string(entry.Status),
		EstimatedWaitMinutes: waittime.Simple(ahead, activeBarbers),
		CheckInTime:          entry.CheckInTime,
		WaitTimeSoFar:        entry.WaitSoFarMinutes(now),
	}, nil
}

// LookupByPhone ищет активную запись по подстроке номера телефона
// Терминальные записи не учитываются: для них возвращается found=false
func (s *Service) LookupByPhone(ctx context.Context, phone string) (*models.LookupResponse, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	entry, err := s.queueRepo.FindActiveByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, queueRepo.ErrEntryNotFound) {
			s.logger.Info("LookupByPhone: no active entry for phone=%s", phone)
			return &models.LookupResponse{
				Found:   false,
				Message: "No active queue entry found for this phone number",
			}, nil
		}
		s.logger.Error("LookupByPhone: repository error: %v", err)
		return nil, fmt.Errorf("%w: LookupByPhone - repository error: %v", ErrInternal, err)
	}

	ahead, err := s.queueRepo.CountWaitingAhead(ctx, entry.Position)
	if err != nil {
		s.logger.Error("LookupByPhone: failed to count people ahead: %v", err)
		return nil, fmt.Errorf("%w: LookupByPhone - count people ahead: %v", ErrInternal, err)
	}

	activeBarbers, err := s.barberRepo.CountAvailable(ctx)
	if err != nil {
		s.logger.Error("LookupByPhone: failed to count available barbers: %v", err)
		return nil, fmt.Errorf("%w: LookupByPhone - count barbers: %v", ErrInternal, err)
	}

	estimated := waittime.Simple(ahead, activeBarbers)
	status := string(entry.Status)

	return &models.LookupResponse{
		Found:                true,
		ID:                   &entry.ID,
		CustomerName:         &entry.CustomerName,
		Position:             &entry.Position,
		PeopleAhead:          &ahead,
		Status:               &status,
		EstimatedWaitMinutes: &estimated,
	}, nil
}

// Stats возвращает сводную статистику очереди
// Среднее ожидание считается по завершенным записям, вставшим в очередь
// сегодня (от check_in_time до called_time)
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	waiting, err := s.queueRepo.CountByStatus(ctx, domain.StatusWaiting)
	if err != nil {
		s.logger.Error("Stats: failed to count waiting: %v", err)
		return nil, fmt.Errorf("%w: Stats - count waiting: %v", ErrInternal, err)
	}

	called, err := s.queueRepo.CountByStatus(ctx, domain.StatusCalled)
	if err != nil {
		s.logger.Error("Stats: failed to count called: %v", err)
		return nil, fmt.Errorf("%w: Stats - count called: %v", ErrInternal, err)
	}

	inService, err := s.queueRepo.CountByStatus(ctx, domain.StatusInService)
	if err != nil {
		s.logger.Error("Stats: failed to count in_service: %v", err)
		return nil, fmt.Errorf("%w: Stats - count in_service: %v", ErrInternal, err)
	}

	activeBarbers, err := s.barberRepo.CountAvailable(ctx)
	if err != nil {
		s.logger.Error("Stats: failed to count available barbers: %v", err)
		return nil, fmt.Errorf("%w: Stats - count barbers: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	avgWait, err := s.queueRepo.AverageCalledWaitMinutes(ctx, dayStart)
	if err != nil {
		s.logger.Error("Stats: failed to get average wait: %v", err)
		return nil, fmt.Errorf("%w: Stats - average wait: %v", ErrInternal, err)
	}

	return &models.StatsResponse{
		Waiting:            waiting,
		Called:             called,
		InService:          inService,
		ActiveBarbers:      activeBarbers,
		AverageWaitMinutes: math.Round(avgWait*10) / 10,
		EstimatedWaitNew:   waittime.Simple(waiting, activeBarbers),
	}, nil
}

// BarberQueue возвращает очередь к конкретному мастеру
func (s *Service) BarberQueue(ctx context.Context, barberID int64) (*models.BarberQueueResponse, error) {
	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("BarberQueue: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("BarberQueue: failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: BarberQueue - failed to get barber: %v", ErrInternal, err)
	}

	entries, err := s.queueRepo.ListActiveByBarber(ctx, barberID)
	if err != nil {
		s.logger.Error("BarberQueue: repository error for barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: BarberQueue - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	customers := make([]models.BarberQueueCustomer, 0, len(entries))
	for _, entry := range entries {
		customers = append(customers, models.BarberQueueCustomer{
			ID:           entry.ID,
			CustomerName: entry.CustomerName,
			Position:     entry.Position,
			ServiceNotes: entry.ServiceNotes,
			WaitTime:     entry.WaitSoFarMinutes(now),
		})
	}

	return &models.BarberQueueResponse{
		BarberID:      barber.ID,
		BarberName:    barber.Name,
		IsAvailable:   barber.IsAvailable,
		QueueCount:    len(entries),
		EstimatedWait: len(entries) * domain.FixedServiceMinutes,
		Customers:     customers,
	}, nil
}

// BarberStatus возвращает производный статус мастера
// Сигналы (флаг доступности, открытая смена, перерыв, заказы в работе)
// собираются здесь, а сводятся в статус единственной функцией
// domain.DeriveBarberStatus
func (s *Service) BarberStatus(ctx context.Context, barberID int64) (*models.BarberStatusResponse, error) {
	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("BarberStatus: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("BarberStatus: failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: BarberStatus - failed to get barber: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	clockedIn, err := s.barberRepo.HasOpenTimeClock(ctx, barberID, dayStart)
	if err != nil {
		s.logger.Error("BarberStatus: failed to check timeclock for barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: BarberStatus - check timeclock: %v", ErrInternal, err)
	}

	onBreak, err := s.barberRepo.HasOpenBreak(ctx, barberID)
	if err != nil {
		s.logger.Error("BarberStatus: failed to check break for barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: BarberStatus - check break: %v", ErrInternal, err)
	}

	inProgress, err := s.orderRepo.CountInProgressByBarber(ctx, barberID)
	if err != nil {
		s.logger.Error("BarberStatus: failed to count orders for barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: BarberStatus - count orders: %v", ErrInternal, err)
	}

	status := domain.DeriveBarberStatus(domain.BarberSignals{
		IsAvailable:      barber.IsAvailable,
		ClockedIn:        clockedIn,
		OnBreak:          onBreak,
		InProgressOrders: inProgress,
	})

	return &models.BarberStatusResponse{
		BarberID:         barber.ID,
		BarberName:       barber.Name,
		Status:           string(status),
		InProgressOrders: inProgress,
	}, nil
}

// getEntry получает запись очереди, конвертируя ошибку отсутствия
func (s *Service) getEntry(ctx context.Context, method string, entryID int64) (*domain.QueueEntry, error) {
	entry, err := s.queueRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, queueRepo.ErrEntryNotFound) {
			s.logger.Warn("%s: entry id=%d not found", method, entryID)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("%s: repository error for entry id=%d: %v", method, entryID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return entry, nil
}

// resolveBarberName возвращает имя запрошенного мастера или nil
// Ошибки поиска не прерывают выдачу очереди
func (s *Service) resolveBarberName(ctx context.Context, barberID *int64) *string {
	if barberID == nil {
		return nil
	}

	barber, err := s.barberRepo.GetByID(ctx, *barberID)
	if err != nil {
		if !errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("resolveBarberName: failed to get barber id=%d: %v", *barberID, err)
		}
		return nil
	}

	return &barber.Name
}
