package get_booking

import (
	"context"

	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetByRefCode(ctx context.Context, shopID, refCode string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
