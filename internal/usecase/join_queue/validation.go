package join_queue

import (
	"strings"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

// validateRequest проверяет входные данные постановки в очередь
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return ErrNameRequired
	}

	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return ErrNameTooLong
	}

	if req.CustomerPhone != nil && len(*req.CustomerPhone) > domain.MaxPhoneLength {
		return ErrPhoneTooLong
	}

	if req.ServiceNotes != nil && len(*req.ServiceNotes) > domain.MaxServiceNotesLength {
		return ErrNotesTooLong
	}

	return nil
}
