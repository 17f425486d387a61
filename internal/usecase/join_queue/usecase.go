// Package join_queue use case постановки walk-in клиента в очередь
package join_queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	barberRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/barber"
	"github.com/m04kA/SMC-QueueService/internal/service/waittime"
)

// UseCase use case постановки в очередь
// Назначение позиции выполняется в сериализуемой транзакции:
// два конкурентных добавления не могут получить одну позицию
type UseCase struct {
	queueRepo  QueueRepository
	barberRepo BarberRepository
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	queueRepo QueueRepository,
	barberRepo BarberRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		queueRepo:  queueRepo,
		barberRepo: barberRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute ставит клиента в очередь
//
// Позиция назначается как max(позиция среди активных записей) + 1.
// Оценка ожидания фиксируется в записи один раз — простым режимом
// по количеству ожидающих до вставки; дальше она не пересчитывается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("JoinQueue: customer=%s, barber=%v", req.CustomerName, req.RequestedBarberID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("JoinQueue: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование запрошенного мастера (если указан)
	if req.RequestedBarberID != nil {
		if _, err := uc.barberRepo.GetByID(ctx, *req.RequestedBarberID); err != nil {
			if errors.Is(err, barberRepo.ErrBarberNotFound) {
				uc.logger.Warn("JoinQueue: requested barber id=%d not found", *req.RequestedBarberID)
				return nil, ErrBarberNotFound
			}
			uc.logger.Error("JoinQueue: failed to get barber id=%d: %v", *req.RequestedBarberID, err)
			return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
		}
	}

	// 3. Количество доступных мастеров для оценки ожидания
	activeBarbers, err := uc.barberRepo.CountAvailable(ctx)
	if err != nil {
		uc.logger.Error("JoinQueue: failed to count available barbers: %v", err)
		return nil, fmt.Errorf("%w: failed to count barbers: %v", ErrInternal, err)
	}

	var result *domain.QueueEntry

	// 4. Назначаем позицию и создаем запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Ожидающие до вставки — вход простого режима оценки
		waiting, err := uc.queueRepo.CountByStatus(txCtx, domain.StatusWaiting)
		if err != nil {
			uc.logger.Error("JoinQueue: failed to count waiting entries: %v", err)
			return fmt.Errorf("%w: failed to count waiting: %v", ErrInternal, err)
		}

		// 4.2. Следующая позиция: max среди активных + 1 (1 для пустой очереди)
		maxPosition, err := uc.queueRepo.MaxActivePosition(txCtx)
		if err != nil {
			uc.logger.Error("JoinQueue: failed to get max position: %v", err)
			return fmt.Errorf("%w: failed to get max position: %v", ErrInternal, err)
		}

		entry := &domain.QueueEntry{
			CustomerName:      req.CustomerName,
			CustomerPhone:     req.CustomerPhone,
			CustomerID:        req.CustomerID,
			RequestedBarberID: req.RequestedBarberID,
			ServiceNotes:      req.ServiceNotes,
			Position:          maxPosition + 1,
			Status:            domain.StatusWaiting,
			EstimatedWait:     waittime.Simple(waiting, activeBarbers),
		}

		created, err := uc.queueRepo.Create(txCtx, entry)
		if err != nil {
			uc.logger.Error("JoinQueue: failed to create entry: %v", err)
			return fmt.Errorf("%w: failed to create entry: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("JoinQueue: customer=%s added at position=%d, estimated_wait=%d",
		result.CustomerName, result.Position, result.EstimatedWait)

	return &Response{
		ID:            result.ID,
		Position:      result.Position,
		EstimatedWait: result.EstimatedWait,
	}, nil
}
