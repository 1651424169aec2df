package preview_recurring_series

import (
	previewRecurringSeries "github.com/m04kA/SMC-ShopBooking/internal/usecase/preview_recurring_series"
)

// PreviewRequest HTTP request model
type PreviewRequest struct {
	ServiceID string `json:"serviceId"`
	SlotID    string `json:"slotId"`
	Interval  string `json:"interval"`
}

// PreviewResponse HTTP response model
type PreviewResponse struct {
	Interval      string   `json:"interval"`
	IntervalLabel string   `json:"intervalLabel"`
	FirstDate     string   `json:"firstDate"`
	StartTime     string   `json:"startTime"`
	Accepted      []string `json:"accepted"`
	Skipped       []string `json:"skipped"`
	Total         int      `json:"total"`
	EndDate       string   `json:"endDate"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PreviewRequest) ToUseCaseRequest(shopID string) *previewRecurringSeries.Request {
	return &previewRecurringSeries.Request{
		ShopID:    shopID,
		ServiceID: r.ServiceID,
		SlotID:    r.SlotID,
		Interval:  r.Interval,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *previewRecurringSeries.Response) *PreviewResponse {
	return &PreviewResponse{
		Interval:      resp.Interval,
		IntervalLabel: resp.IntervalLabel,
		FirstDate:     resp.FirstDate,
		StartTime:     resp.StartTime.String(),
		Accepted:      nonNil(resp.Accepted),
		Skipped:       nonNil(resp.Skipped),
		Total:         resp.Total,
		EndDate:       resp.EndDate,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
