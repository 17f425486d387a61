package start_service

// StartServiceRequest тело запроса начала обслуживания
type StartServiceRequest struct {
	BarberID int64 `json:"barberId"`
}
