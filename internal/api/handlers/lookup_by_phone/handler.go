package lookup_by_phone

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
	"github.com/m04kA/SMC-QueueService/internal/service/queue"
)

const (
	msgPhoneRequired = "номер телефона обязателен"
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

// Handle GET /api/v1/queue/lookup/{phone}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	phone := vars["phone"]

	resp, err := h.service.LookupByPhone(r.Context(), phone)
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrInvalidInput):
			h.logger.Warn("GET /queue/lookup/{phone} - Phone is empty")
			handlers.RespondBadRequest(w, msgPhoneRequired)

		default:
			h.logger.Error("GET /queue/lookup/{phone} - Failed to lookup: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
