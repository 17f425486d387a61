package start_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
	"github.com/m04kA/SMC-QueueService/internal/service/queue"
)

const (
	msgInvalidEntryID     = "некорректный ID записи очереди"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBarberID    = "некорректный ID мастера"
	msgEntryNotFound      = "запись очереди не найдена"
	msgBarberNotFound     = "мастер не найден"
	msgInvalidTransition  = "обслуживание нельзя начать из текущего статуса"
)

type Handler struct {
	service QueueService
	logger  Logger
}

func NewHandler(service QueueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/queue/{entryId}/start
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /queue/{id}/start - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	var req StartServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /queue/{id}/start - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.BarberID <= 0 {
		h.logger.Warn("POST /queue/{id}/start - Invalid barber ID: %d", req.BarberID)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	resp, err := h.service.StartService(r.Context(), entryID, req.BarberID)
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrEntryNotFound):
			h.logger.Warn("POST /queue/{id}/start - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, queue.ErrBarberNotFound):
			h.logger.Warn("POST /queue/{id}/start - Barber not found: barber_id=%d", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, queue.ErrInvalidTransition):
			h.logger.Warn("POST /queue/{id}/start - Invalid transition: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /queue/{id}/start - Failed to start service: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue/{id}/start - Service started: entry_id=%d, barber_id=%d", entryID, req.BarberID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
