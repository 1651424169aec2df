package preview_recurring_series

import "github.com/m04kA/SMC-ShopBooking/pkg/types"

// Request модель запроса на предпросмотр серии
type Request struct {
	ShopID    string
	ServiceID string
	SlotID    string // первый слот серии
	Interval  string // weekly | biweekly | fourweekly | monthly
}

// Response итог планирования: показывается клиенту до подтверждения
type Response struct {
	Interval      string
	IntervalLabel string
	FirstDate     string
	StartTime     types.TimeString
	Accepted      []string // даты, которые будут созданы
	Skipped       []string // даты с конфликтами
	Total         int      // принятые + первое вхождение
	EndDate       string
}
