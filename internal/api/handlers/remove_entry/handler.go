package remove_entry

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
	msgInvalidTransition = "запись нельзя убрать из текущего статуса"
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

// Handle POST /api/v1/queue/{entryId}/remove
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /queue/{id}/remove - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	if err := h.service.Remove(r.Context(), entryID); err != nil {
		switch {
		case errors.Is(err, queue.ErrEntryNotFound):
			h.logger.Warn("POST /queue/{id}/remove - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, queue.ErrInvalidTransition):
			h.logger.Warn("POST /queue/{id}/remove - Invalid transition: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /queue/{id}/remove - Failed to remove entry: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue/{id}/remove - Entry removed: entry_id=%d", entryID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
