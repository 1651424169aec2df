package cancel_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ShopBooking/internal/lifecycle"
)

// validateRequest валидирует входные данные и подставляет режим по умолчанию
func validateRequest(req *Request) error {
	if req.ShopID == "" {
		return fmt.Errorf("%w: shopId is required", ErrInvalidInput)
	}

	if req.BookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	if req.Mode == "" {
		req.Mode = string(lifecycle.CancelSingle)
	}

	switch lifecycle.CancelMode(req.Mode) {
	case lifecycle.CancelSingle, lifecycle.CancelFuture:
		return nil
	}

	return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
}
