package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

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

	if err := validateClient(req.ClientName, req.ClientEmail); err != nil {
		return err
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.RecurringInterval != nil && !domain.RecurringInterval(*req.RecurringInterval).IsValid() {
		return fmt.Errorf("%w: unknown recurring interval %q", ErrInvalidInput, *req.RecurringInterval)
	}

	return nil
}

func validateClient(name, email string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName must be at most %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid clientEmail: %v", ErrInvalidInput, err)
	}

	return nil
}
