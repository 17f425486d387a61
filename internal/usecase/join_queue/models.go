package join_queue

// Request запрос на постановку клиента в очередь
type Request struct {
	CustomerName      string
	CustomerPhone     *string
	CustomerID        *int64
	RequestedBarberID *int64
	ServiceNotes      *string
}

// Response результат постановки в очередь
// EstimatedWait — оценка простого режима, зафиксированная в записи
type Response struct {
	ID            int64
	Position      int
	EstimatedWait int
}
