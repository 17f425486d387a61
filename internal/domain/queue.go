package domain

import "time"

// QueueStatus статус записи в очереди walk-in клиентов
type QueueStatus string

const (
	StatusWaiting   QueueStatus = "waiting"
	StatusCalled    QueueStatus = "called"
	StatusInService QueueStatus = "in_service"
	StatusCompleted QueueStatus = "completed"
	StatusLeft      QueueStatus = "left"
)

// QueueEntry запись walk-in клиента в очереди
// Терминальные записи (completed, left) физически не удаляются:
// они используются для исторической статистики времени ожидания
type QueueEntry struct {
	ID                int64
	CustomerName      string
	CustomerPhone     *string
	CustomerID        *int64 // слабая ссылка на карточку клиента
	RequestedBarberID *int64
	ServiceNotes      *string

	// Позиция среди активных записей (waiting, called): 1..N без пропусков.
	// Назначается один раз при добавлении, меняется только перенумерацией
	// при уходе клиента из очереди
	Position int

	Status QueueStatus

	// EstimatedWait оценка ожидания в минутах, зафиксированная в момент
	// постановки в очередь. Не пересчитывается; актуальную оценку
	// считают endpoints статуса
	EstimatedWait int

	CheckInTime   time.Time
	CalledTime    *time.Time
	CompletedTime *time.Time
}

// IsActive возвращает true, если запись находится в активной части очереди
func (e *QueueEntry) IsActive() bool {
	return e.Status == StatusWaiting || e.Status == StatusCalled
}

// IsTerminal возвращает true для конечных статусов
func (e *QueueEntry) IsTerminal() bool {
	return e.Status == StatusCompleted || e.Status == StatusLeft
}

// WaitSoFarMinutes возвращает, сколько минут клиент уже провел в очереди
func (e *QueueEntry) WaitSoFarMinutes(now time.Time) int {
	minutes := int(now.Sub(e.CheckInTime).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// ActiveStatuses статусы записей, занимающих позицию в очереди
var ActiveStatuses = []QueueStatus{
	StatusWaiting,
	StatusCalled,
}

// TerminalStatuses конечные статусы, исключаемые из активных выборок
var TerminalStatuses = []QueueStatus{
	StatusCompleted,
	StatusLeft,
}
