package refcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet символы кода без визуально неоднозначных I, O, 0, 1
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length количество случайных символов после префикса
const Length = 4

const (
	PrefixBooking  = "BK"
	PrefixWaitlist = "WL"
)

// Generator генерирует короткие коды для поиска бронирования без авторизации.
// Уникальность не гарантируется - коллизии обрабатывает хранилище.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Booking возвращает новый код бронирования (BKxxxx)
func (g *Generator) Booking() string {
	return Generate(PrefixBooking)
}

// Waitlist возвращает новый код записи в лист ожидания (WLxxxx)
func (g *Generator) Waitlist() string {
	return Generate(PrefixWaitlist)
}

// Generate возвращает prefix + Length символов из Alphabet
func Generate(prefix string) string {
	var sb strings.Builder
	sb.Grow(len(prefix) + Length)
	sb.WriteString(prefix)

	max := big.NewInt(int64(len(Alphabet)))
	for i := 0; i < Length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand на поддерживаемых платформах не возвращает ошибок
			panic(fmt.Sprintf("refcode: read random: %v", err))
		}
		sb.WriteByte(Alphabet[n.Int64()])
	}

	return sb.String()
}

// IsValid проверяет форму кода: известный префикс и символы из Alphabet
func IsValid(code string) bool {
	if len(code) != len(PrefixBooking)+Length {
		return false
	}
	prefix := code[:2]
	if prefix != PrefixBooking && prefix != PrefixWaitlist {
		return false
	}
	for _, c := range code[2:] {
		if !strings.ContainsRune(Alphabet, c) {
			return false
		}
	}
	return true
}
