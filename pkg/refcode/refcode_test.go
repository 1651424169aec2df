package refcode

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var codeShape = regexp.MustCompile(`^(BK|WL)[ABCDEFGHJKLMNPQRSTUVWXYZ2-9]{4}$`)

func TestGenerate_Shape(t *testing.T) {
	g := NewGenerator()

	for i := 0; i < 500; i++ {
		bk := g.Booking()
		wl := g.Waitlist()

		assert.Regexp(t, codeShape, bk)
		assert.Regexp(t, codeShape, wl)
		assert.True(t, strings.HasPrefix(bk, PrefixBooking))
		assert.True(t, strings.HasPrefix(wl, PrefixWaitlist))
		assert.NotContainsf(t, bk[2:], "O", "ambiguous char in %s", bk)
		assert.True(t, IsValid(bk))
	}
}

func TestAlphabet_ExcludesAmbiguous(t *testing.T) {
	for _, c := range "IO01" {
		assert.False(t, strings.ContainsRune(Alphabet, c), string(c))
	}
	assert.Len(t, Alphabet, 32)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("BKAB23"))
	assert.True(t, IsValid("WLZZ99"))
	assert.False(t, IsValid("XXAB23"))
	assert.False(t, IsValid("BKAB2"))
	assert.False(t, IsValid("BKAO23"))
	assert.False(t, IsValid("BKab23"))
}
