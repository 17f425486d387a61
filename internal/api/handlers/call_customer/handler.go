package call_customer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
	"github.com/m04kA/SMC-QueueService/internal/service/queue"
)

const (
	msgInvalidEntryID    = "некорректный ID записи очереди"
	msgNotFound          = "запись очереди не найдена"
	msgInvalidTransition = "клиента нельзя вызвать из текущего статуса"
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

// Handle POST /api/v1/queue/{entryId}/call
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /queue/{id}/call - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	resp, err := h.service.Call(r.Context(), entryID)
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrEntryNotFound):
			h.logger.Warn("POST /queue/{id}/call - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, queue.ErrInvalidTransition):
			h.logger.Warn("POST /queue/{id}/call - Invalid transition: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /queue/{id}/call - Failed to call customer: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue/{id}/call - Customer called: entry_id=%d", entryID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
