package slots

import "github.com/m04kA/SMC-ShopBooking/internal/domain"

// MergeSlots объединяет сгенерированные и ручные слоты.
// Ручные идут первыми без изменений, затем сгенерированные, чья координата
// (мастер, дата, время) не занята ручным слотом. Порядок внутри групп сохраняется.
func MergeSlots(generated, manual []domain.Slot) []domain.Slot {
	taken := make(map[string]struct{}, len(manual))
	for i := range manual {
		taken[manual[i].Key()] = struct{}{}
	}

	result := make([]domain.Slot, 0, len(manual)+len(generated))
	result = append(result, manual...)

	for i := range generated {
		if _, ok := taken[generated[i].Key()]; ok {
			continue
		}
		result = append(result, generated[i])
	}

	return result
}
