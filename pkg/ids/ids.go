package ids

import "github.com/google/uuid"

// UUID генератор идентификаторов бронирований, серий и записей листа ожидания
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}
