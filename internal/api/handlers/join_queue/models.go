package join_queue

import (
	usecase "github.com/m04kA/SMC-QueueService/internal/usecase/join_queue"
)

// JoinQueueRequest тело запроса постановки в очередь
type JoinQueueRequest struct {
	CustomerName      string  `json:"customerName"`
	CustomerPhone     *string `json:"customerPhone,omitempty"`
	CustomerID        *int64  `json:"customerId,omitempty"`
	RequestedBarberID *int64  `json:"requestedBarberId,omitempty"`
	ServiceNotes      *string `json:"serviceNotes,omitempty"`
}

// ToUseCaseRequest конвертирует DTO в модель use case
func (r *JoinQueueRequest) ToUseCaseRequest() *usecase.Request {
	return &usecase.Request{
		CustomerName:      r.CustomerName,
		CustomerPhone:     r.CustomerPhone,
		CustomerID:        r.CustomerID,
		RequestedBarberID: r.RequestedBarberID,
		ServiceNotes:      r.ServiceNotes,
	}
}

// JoinQueueResponse ответ с назначенной позицией
type JoinQueueResponse struct {
	ID            int64 `json:"id"`
	Position      int   `json:"position"`
	EstimatedWait int   `json:"estimatedWait"`
}

// FromUseCaseResponse конвертирует модель use case в DTO
func FromUseCaseResponse(resp *usecase.Response) *JoinQueueResponse {
	return &JoinQueueResponse{
		ID:            resp.ID,
		Position:      resp.Position,
		EstimatedWait: resp.EstimatedWait,
	}
}
