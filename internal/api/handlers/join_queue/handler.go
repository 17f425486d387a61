package join_queue

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
	usecase "github.com/m04kA/SMC-QueueService/internal/usecase/join_queue"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные клиента"
	msgBarberNotFound     = "мастер не найден"
)

type Handler struct {
	useCase JoinQueueUseCase
	logger  Logger
}

func NewHandler(useCase JoinQueueUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/queue
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req JoinQueueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /queue - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNameRequired),
			errors.Is(err, usecase.ErrNameTooLong),
			errors.Is(err, usecase.ErrPhoneTooLong),
			errors.Is(err, usecase.ErrNotesTooLong):
			h.logger.Warn("POST /queue - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, usecase.ErrBarberNotFound):
			h.logger.Warn("POST /queue - Requested barber not found")
			handlers.RespondNotFound(w, msgBarberNotFound)

		default:
			h.logger.Error("POST /queue - Failed to join queue: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue - Customer added: id=%d, position=%d", resp.ID, resp.Position)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
