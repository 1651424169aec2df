package lifecycle

import "github.com/m04kA/SMC-ShopBooking/internal/domain"

// WriteKind тип операции записи в хранилище
type WriteKind string

const (
	WriteClaimSlot         WriteKind = "claim_slot"
	WriteReleaseSlot       WriteKind = "release_slot"
	WriteCreateBooking     WriteKind = "create_booking"
	WriteRescheduleBooking WriteKind = "reschedule_booking"
	WriteCancelBooking     WriteKind = "cancel_booking"
)

// Write одна запись, вычисленная координатором. Исполняется Applier'ом.
type Write struct {
	Kind      WriteKind
	ShopID    string
	SlotID    string          // claim/release
	BookingID string          // cancel
	Booking   *domain.Booking // create/reschedule: итоговое состояние
}

func claimSlot(shopID, slotID string) Write {
	return Write{Kind: WriteClaimSlot, ShopID: shopID, SlotID: slotID}
}

func releaseSlot(shopID, slotID string) Write {
	return Write{Kind: WriteReleaseSlot, ShopID: shopID, SlotID: slotID}
}

func createBooking(b *domain.Booking) Write {
	return Write{Kind: WriteCreateBooking, ShopID: b.ShopID, BookingID: b.ID, Booking: b}
}

func rescheduleBooking(b *domain.Booking) Write {
	return Write{Kind: WriteRescheduleBooking, ShopID: b.ShopID, BookingID: b.ID, Booking: b}
}

func cancelBooking(shopID, bookingID string) Write {
	return Write{Kind: WriteCancelBooking, ShopID: shopID, BookingID: bookingID}
}

// releaseIfManual добавляет освобождение слота, только если у слота есть хранимая запись
func releaseIfManual(writes []Write, shopID, slotID string) []Write {
	if domain.IsManualSlotID(slotID) {
		return append(writes, releaseSlot(shopID, slotID))
	}
	return writes
}

func claimIfManual(writes []Write, shopID, slotID string) []Write {
	if domain.IsManualSlotID(slotID) {
		return append(writes, claimSlot(shopID, slotID))
	}
	return writes
}
