package complete_entry

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
	msgInvalidTransition = "завершить можно только обслуживаемую запись"
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

// Handle POST /api/v1/queue/{entryId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /queue/{id}/complete - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	if err := h.service.Complete(r.Context(), entryID); err != nil {
		switch {
		case errors.Is(err, queue.ErrEntryNotFound):
			h.logger.Warn("POST /queue/{id}/complete - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, queue.ErrInvalidTransition):
			h.logger.Warn("POST /queue/{id}/complete - Invalid transition: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /queue/{id}/complete - Failed to complete entry: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue/{id}/complete - Entry completed: entry_id=%d", entryID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
