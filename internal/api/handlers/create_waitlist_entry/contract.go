package create_waitlist_entry

import (
	"context"

	"github.com/m04kA/SMC-ShopBooking/internal/service/waitlist/models"
)

type WaitlistService interface {
	Create(ctx context.Context, req *models.CreateEntryRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
