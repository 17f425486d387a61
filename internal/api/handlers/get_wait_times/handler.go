package get_wait_times

import (
	"net/http"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
)

type Handler struct {
	useCase GetWaitTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetWaitTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/queue/wait-times
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("GET /queue/wait-times - Failed to build summary: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
