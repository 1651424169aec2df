package waitlist

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/service/waitlist/models"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

func validateCreate(req *models.CreateEntryRequest) error {
	if req.ShopID == "" {
		return fmt.Errorf("%w: shopId is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName must be at most %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if _, err := mail.ParseAddress(req.ClientEmail); err != nil {
		return fmt.Errorf("%w: invalid clientEmail: %v", ErrInvalidInput, err)
	}

	if req.PreferredDate != nil {
		if _, err := types.ParseDate(*req.PreferredDate); err != nil {
			return fmt.Errorf("%w: preferredDate must be YYYY-MM-DD", ErrInvalidInput)
		}
	}

	return nil
}
