package notify_customer

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
	"github.com/m04kA/SMC-QueueService/internal/service/notifications"
	notifModels "github.com/m04kA/SMC-QueueService/internal/service/notifications/models"
)

const (
	msgInvalidEntryID = "некорректный ID записи очереди"
	msgNotFound       = "запись очереди не найдена"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleReady POST /api/v1/queue/{entryId}/notify-ready
func (h *Handler) HandleReady(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "notify-ready", h.service.PrepareReady)
}

// HandleSoon POST /api/v1/queue/{entryId}/notify-soon
func (h *Handler) HandleSoon(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "notify-soon", h.service.PrepareSoon)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	prepare func(ctx context.Context, entryID int64) (*notifModels.NotificationResponse, error),
) {
	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /queue/{id}/%s - Invalid entry ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	resp, err := prepare(r.Context(), entryID)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrEntryNotFound):
			h.logger.Warn("POST /queue/{id}/%s - Entry not found: entry_id=%d", route, entryID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /queue/{id}/%s - Failed to prepare notification: entry_id=%d, error=%v",
				route, entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue/{id}/%s - Notification prepared: entry_id=%d", route, entryID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
