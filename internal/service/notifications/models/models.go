package models

// Типы исходящих уведомлений
const (
	TypeReady = "ready"
	TypeSoon  = "soon"
)

// NotificationPayload данные SMS-уведомления, готовые к отправке
// Сервис только формирует payload; доставкой занимается внешний шлюз
type NotificationPayload struct {
	MessageID    string  `json:"messageId"`
	ToPhone      *string `json:"toPhone"`
	CustomerName string  `json:"customerName"`
	Message      string  `json:"message"`
	Type         string  `json:"type"`
	PeopleAhead  *int    `json:"peopleAhead,omitempty"`
	EntryID      int64   `json:"entryId"`
}

// NotificationResponse результат подготовки уведомления
type NotificationResponse struct {
	Notification NotificationPayload `json:"notification"`
	Status       string              `json:"status"`
	Message      string              `json:"message"`
}
