package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		in   TimeString
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"12:30", 750},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Minutes())
		})
	}
}

func TestFromMinutes(t *testing.T) {
	assert.Equal(t, TimeString("00:00"), FromMinutes(0))
	assert.Equal(t, TimeString("09:05"), FromMinutes(545))
	assert.Equal(t, TimeString("16:00"), FromMinutes(960))
	// не заворачивается на следующие сутки
	assert.Equal(t, TimeString("24:30"), FromMinutes(1470))
}

func TestTimeString_RoundTrip(t *testing.T) {
	for m := 0; m < minutesPerDay; m += 7 {
		assert.Equal(t, m, FromMinutes(m).Minutes())
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(75)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	got, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrOutOfDayRange)
}

func TestTimeString_Validate(t *testing.T) {
	valid := []TimeString{"00:00", "09:30", "23:59"}
	for _, v := range valid {
		assert.NoError(t, v.Validate(), v)
	}

	invalid := []TimeString{"", "9:30", "24:00", "12:60", "ab:cd", "1230"}
	for _, v := range invalid {
		assert.ErrorIs(t, v.Validate(), ErrInvalidTimeString, v)
	}
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:45"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestParseDate_IsNoon(t *testing.T) {
	d, err := ParseDate("2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, 12, d.Hour())
	assert.Equal(t, "2024-03-10", FormatDate(d))
	assert.Equal(t, "2024-03-11", FormatDate(d.AddDate(0, 0, 1)))

	_, err = ParseDate("10/03/2024")
	assert.Error(t, err)
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-02-26", 14)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", got)

	got, err = AddDays("2023-12-25", 7)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got)
}

func TestFormatDate_ZeroPadded(t *testing.T) {
	assert.Equal(t, "2024-01-05", FormatDate(time.Date(2024, 1, 5, 23, 59, 0, 0, time.Local)))
}
