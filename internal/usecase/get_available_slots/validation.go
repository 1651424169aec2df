package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopID == "" {
		return fmt.Errorf("%w: shopId is required", ErrInvalidInput)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID == "" {
		return fmt.Errorf("%w: staffId must not be empty", ErrInvalidInput)
	}

	if req.Date != nil {
		if _, err := types.ParseDate(*req.Date); err != nil {
			return fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
