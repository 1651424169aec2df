package get_available_slots

import "github.com/m04kA/SMC-ShopBooking/pkg/types"

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopID    string  // ID магазина
	ServiceID string  // ID услуги (определяет длительность)
	StaffID   *string // Мастер (nil - любой)
	Date      *string // Фильтр по дню YYYY-MM-DD (nil - весь горизонт)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ShopID    string
	ServiceID string
	StaffID   *string
	Slots     []Slot
}

// Slot модель доступного слота
type Slot struct {
	ID              string           // id ручного слота или синтетический gen_...
	Date            string           // YYYY-MM-DD
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность
	StaffID         *string
	StaffName       *string
	Generated       bool // true - слот из расписания мастера
}
