package preview_recurring_series

import (
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopID == "" {
		return fmt.Errorf("%w: shopId is required", ErrInvalidInput)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.SlotID == "" {
		return fmt.Errorf("%w: slotId is required", ErrInvalidInput)
	}

	if !domain.RecurringInterval(req.Interval).IsValid() {
		return fmt.Errorf("%w: unknown interval %q", ErrInvalidInput, req.Interval)
	}

	return nil
}
