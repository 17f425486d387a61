// Package notifications подготовка SMS-уведомлений для клиентов очереди
//
// Сервис формирует payload, пригодный для отправки внешним SMS-шлюзом,
// и, если настроен брокер, публикует его в topic exchange. Ошибки
// публикации логируются, но не прерывают запрос: подготовленный payload
// в любом случае возвращается вызывающему
package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	queueRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/queue"
	"github.com/m04kA/SMC-QueueService/internal/service/notifications/models"
)

// Routing keys для публикации в брокер
const (
	routingKeyReady = "queue.notification.ready"
	routingKeySoon  = "queue.notification.soon"
)

const (
	statusPrepared = "prepared"

	msgReadyToSend = "Notification ready to send"
	msgNoPhone     = "No phone number on file"
)

// Service сервис подготовки уведомлений
type Service struct {
	queueRepo QueueRepository
	publisher Publisher // может быть nil, если брокер не настроен
	logger    Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(queueRepo QueueRepository, publisher Publisher, logger Logger) *Service {
	return &Service{
		queueRepo: queueRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// PrepareReady готовит уведомление "ваша очередь подошла"
func (s *Service) PrepareReady(ctx context.Context, entryID int64) (*models.NotificationResponse, error) {
	entry, err := s.getEntry(ctx, "PrepareReady", entryID)
	if err != nil {
		return nil, err
	}

	payload := models.NotificationPayload{
		MessageID:    uuid.NewString(),
		ToPhone:      entry.CustomerPhone,
		CustomerName: entry.CustomerName,
		Message: fmt.Sprintf(
			"Hi %s! You're next in line at the barbershop. Please come to the front.",
			entry.CustomerName,
		),
		Type:    models.TypeReady,
		EntryID: entry.ID,
	}

	s.publish(ctx, routingKeyReady, payload)

	return s.response(payload), nil
}

// PrepareSoon готовит уведомление "скоро ваша очередь" с количеством
// клиентов впереди
func (s *Service) PrepareSoon(ctx context.Context, entryID int64) (*models.NotificationResponse, error) {
	entry, err := s.getEntry(ctx, "PrepareSoon", entryID)
	if err != nil {
		return nil, err
	}

	ahead, err := s.queueRepo.CountWaitingAhead(ctx, entry.Position)
	if err != nil {
		s.logger.Error("PrepareSoon: failed to count people ahead for entry id=%d: %v", entryID, err)
		return nil, fmt.Errorf("%w: PrepareSoon - count people ahead: %v", ErrInternal, err)
	}

	people := "people"
	if ahead == 1 {
		people = "person"
	}

	payload := models.NotificationPayload{
		MessageID:    uuid.NewString(),
		ToPhone:      entry.CustomerPhone,
		CustomerName: entry.CustomerName,
		Message: fmt.Sprintf(
			"Hi %s! Just %d %s ahead of you. Please head back to the shop!",
			entry.CustomerName, ahead, people,
		),
		Type:        models.TypeSoon,
		PeopleAhead: &ahead,
		EntryID:     entry.ID,
	}

	s.publish(ctx, routingKeySoon, payload)

	return s.response(payload), nil
}

// publish отправляет payload в брокер, если он настроен и у клиента есть телефон
func (s *Service) publish(ctx context.Context, routingKey string, payload models.NotificationPayload) {
	if s.publisher == nil || payload.ToPhone == nil {
		return
	}

	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		s.logger.Error("publish: failed to publish %s notification for entry id=%d: %v",
			payload.Type, payload.EntryID, err)
		return
	}

	s.logger.Info("publish: %s notification published for entry id=%d", payload.Type, payload.EntryID)
}

func (s *Service) response(payload models.NotificationPayload) *models.NotificationResponse {
	message := msgReadyToSend
	if payload.ToPhone == nil {
		message = msgNoPhone
	}

	return &models.NotificationResponse{
		Notification: payload,
		Status:       statusPrepared,
		Message:      message,
	}
}

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
