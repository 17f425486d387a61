package domain

// QueueAction операция жизненного цикла записи в очереди
type QueueAction string

const (
	ActionCall         QueueAction = "call"
	ActionStartService QueueAction = "start_service"
	ActionComplete     QueueAction = "complete"
	ActionLeave        QueueAction = "leave"
)

// transitionMap допустимые исходные статусы для каждой операции
// Переходы монотонны: вернуться в waiting из более позднего статуса нельзя
var transitionMap = map[QueueAction][]QueueStatus{
	ActionCall:         {StatusWaiting},
	ActionStartService: {StatusWaiting, StatusCalled},
	ActionComplete:     {StatusInService},
	ActionLeave:        {StatusWaiting, StatusCalled},
}

// targetStatus статус, в который переводит операция
var targetStatus = map[QueueAction]QueueStatus{
	ActionCall:         StatusCalled,
	ActionStartService: StatusInService,
	ActionComplete:     StatusCompleted,
	ActionLeave:        StatusLeft,
}

// ValidTransition проверяет, допустима ли операция из текущего статуса
func ValidTransition(action QueueAction, from QueueStatus) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}

// TargetStatus возвращает статус, в который переводит операция
func TargetStatus(action QueueAction) (QueueStatus, bool) {
	status, ok := targetStatus[action]
	return status, ok
}
