package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:00", want: "09:00"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid last minute", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "12:60", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	assert.Equal(t, TimeString("15:09"), NewTimeString(moment))
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 9*60+30, TimeString("09:30").Minutes())
	assert.Equal(t, 23*60+59, TimeString("23:59").Minutes())
	assert.Equal(t, 0, TimeString("bogus").Minutes())
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:15").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), got)

	got, err = TimeString("09:00").AddMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), got)

	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("bogus").AddMinutes(15)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("18:00").IsAfter("17:59"))
	assert.True(t, TimeString("12:00").Equal("12:00"))
	assert.False(t, TimeString("12:00").Equal("12:01"))
}

func TestTimeString_IsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("00:00").IsZero())
}
