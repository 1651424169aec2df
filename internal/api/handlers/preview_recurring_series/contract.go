package preview_recurring_series

import (
	"context"

	previewRecurringSeries "github.com/m04kA/SMC-ShopBooking/internal/usecase/preview_recurring_series"
)

type PreviewRecurringSeriesUseCase interface {
	Execute(ctx context.Context, req *previewRecurringSeries.Request) (*previewRecurringSeries.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
