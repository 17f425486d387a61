package models

import (
	"time"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

// QueueEntryResponse запись очереди в списочных ответах
type QueueEntryResponse struct {
	ID                  int64     `json:"id"`
	CustomerName        string    `json:"customerName"`
	CustomerPhone       *string   `json:"customerPhone,omitempty"`
	CustomerID          *int64    `json:"customerId,omitempty"`
	RequestedBarberID   *int64    `json:"requestedBarberId,omitempty"`
	RequestedBarberName *string   `json:"requestedBarberName,omitempty"`
	ServiceNotes        *string   `json:"serviceNotes,omitempty"`
	Position            int       `json:"position"`
	Status              string    `json:"status"`
	EstimatedWait       int       `json:"estimatedWait"`
	CheckInTime         time.Time `json:"checkInTime"`
	CalledTime          *string   `json:"calledTime,omitempty"` // ISO 8601
	WaitTimeMinutes     int       `json:"waitTimeMinutes"`      // сколько уже ждет
}

// QueueListResponse ответ со списком активных записей очереди
type QueueListResponse struct {
	Entries []QueueEntryResponse `json:"entries"`
}

// FromDomainEntry конвертирует domain модель в DTO
// waitSoFar и имя запрошенного мастера вычисляются сервисом
func FromDomainEntry(e *domain.QueueEntry, barberName *string, now time.Time) QueueEntryResponse {
	resp := QueueEntryResponse{
		ID:                  e.ID,
		CustomerName:        e.CustomerName,
		CustomerPhone:       e.CustomerPhone,
		CustomerID:          e.CustomerID,
		RequestedBarberID:   e.RequestedBarberID,
		RequestedBarberName: barberName,
		ServiceNotes:        e.ServiceNotes,
		Position:            e.Position,
		Status:              string(e.Status),
		EstimatedWait:       e.EstimatedWait,
		CheckInTime:         e.CheckInTime,
		WaitTimeMinutes:     e.WaitSoFarMinutes(now),
	}

	if e.CalledTime != nil {
		calledStr := e.CalledTime.Format(time.RFC3339)
		resp.CalledTime = &calledStr
	}

	return resp
}

// CallResponse ответ на вызов клиента
type CallResponse struct {
	Status string `json:"status"`
}

// StartServiceResponse ответ на начало обслуживания
type StartServiceResponse struct {
	CustomerName string `json:"customerName"`
	BarberName   string `json:"barberName"`
}

// EntryStatusResponse ответ самопроверки позиции клиента
// EstimatedWaitMinutes пересчитывается на каждый запрос и может отличаться
// от зафиксированной при постановке оценки
type EntryStatusResponse struct {
	ID                   int64     `json:"id"`
	CustomerName         string    `json:"customerName"`
	Position             int       `json:"position"`
	PeopleAhead          int       `json:"peopleAhead"`
	Status               string    `json:"status"`
	EstimatedWaitMinutes int       `json:"estimatedWaitMinutes"`
	CheckInTime          time.Time `json:"checkInTime"`
	WaitTimeSoFar        int       `json:"waitTimeSoFar"`
}

// LookupResponse ответ поиска по номеру телефона
type LookupResponse struct {
	Found                bool    `json:"found"`
	Message              string  `json:"message,omitempty"`
	ID                   *int64  `json:"id,omitempty"`
	CustomerName         *string `json:"customerName,omitempty"`
	Position             *int    `json:"position,omitempty"`
	PeopleAhead          *int    `json:"peopleAhead,omitempty"`
	Status               *string `json:"status,omitempty"`
	EstimatedWaitMinutes *int    `json:"estimatedWaitMinutes,omitempty"`
}

// StatsResponse статистика очереди
type StatsResponse struct {
	Waiting            int     `json:"waiting"`
	Called             int     `json:"called"`
	InService          int     `json:"inService"`
	ActiveBarbers      int     `json:"activeBarbers"`
	AverageWaitMinutes float64 `json:"averageWaitMinutes"`
	EstimatedWaitNew   int     `json:"estimatedWaitNew"`
}

// BarberQueueCustomer клиент в очереди к конкретному мастеру
type BarberQueueCustomer struct {
	ID           int64   `json:"id"`
	CustomerName string  `json:"customerName"`
	Position     int     `json:"position"`
	ServiceNotes *string `json:"serviceNotes,omitempty"`
	WaitTime     int     `json:"waitTime"`
}

// BarberQueueResponse очередь к конкретному мастеру
type BarberQueueResponse struct {
	BarberID      int64                 `json:"barberId"`
	BarberName    string                `json:"barberName"`
	IsAvailable   bool                  `json:"isAvailable"`
	QueueCount    int                   `json:"queueCount"`
	EstimatedWait int                   `json:"estimatedWait"`
	Customers     []BarberQueueCustomer `json:"customers"`
}

// BarberStatusResponse производный статус мастера
type BarberStatusResponse struct {
	BarberID         int64  `json:"barberId"`
	BarberName       string `json:"barberName"`
	Status           string `json:"status"`
	InProgressOrders int    `json:"inProgressOrders"`
}
