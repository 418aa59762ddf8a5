package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

func mustRange(t *testing.T, start, end types.TimeString) TimeRange {
	t.Helper()
	r, err := NewTimeRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewTimeRange(t *testing.T) {
	r, err := NewTimeRange("09:00", "12:30")
	require.NoError(t, err)
	assert.Equal(t, 210, r.DurationMinutes())

	_, err = NewTimeRange("12:00", "12:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeRange("14:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeRange("9am", "12:00")
	assert.Error(t, err)
}

func TestTimeRange_Overlaps(t *testing.T) {
	base := mustRange(t, "10:00", "11:00")

	tests := []struct {
		name  string
		other TimeRange
		want  bool
	}{
		{name: "identical", other: mustRange(t, "10:00", "11:00"), want: true},
		{name: "contained", other: mustRange(t, "10:15", "10:45"), want: true},
		{name: "overlapping start", other: mustRange(t, "09:30", "10:30"), want: true},
		{name: "overlapping end", other: mustRange(t, "10:30", "11:30"), want: true},
		{name: "touching before", other: mustRange(t, "09:00", "10:00"), want: false},
		{name: "touching after", other: mustRange(t, "11:00", "12:00"), want: false},
		{name: "disjoint", other: mustRange(t, "14:00", "15:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeRange_Subtract(t *testing.T) {
	base := mustRange(t, "09:00", "13:00")

	t.Run("cut in the middle leaves two pieces", func(t *testing.T) {
		got := base.Subtract(mustRange(t, "10:00", "11:00"))
		require.Len(t, got, 2)
		assert.Equal(t, mustRange(t, "09:00", "10:00"), got[0])
		assert.Equal(t, mustRange(t, "11:00", "13:00"), got[1])
	})

	t.Run("cut at the start leaves the tail", func(t *testing.T) {
		got := base.Subtract(mustRange(t, "09:00", "10:00"))
		require.Len(t, got, 1)
		assert.Equal(t, mustRange(t, "10:00", "13:00"), got[0])
	})

	t.Run("cut at the end leaves the head", func(t *testing.T) {
		got := base.Subtract(mustRange(t, "12:00", "13:00"))
		require.Len(t, got, 1)
		assert.Equal(t, mustRange(t, "09:00", "12:00"), got[0])
	})

	t.Run("covering cut leaves nothing", func(t *testing.T) {
		got := base.Subtract(mustRange(t, "08:00", "14:00"))
		assert.Empty(t, got)
	})

	t.Run("disjoint cut is a no-op", func(t *testing.T) {
		got := base.Subtract(mustRange(t, "14:00", "15:00"))
		require.Len(t, got, 1)
		assert.Equal(t, base, got[0])
	})
}

func TestSubtractAll(t *testing.T) {
	open := []TimeRange{
		mustRange(t, "09:00", "12:30"),
		mustRange(t, "14:00", "19:00"),
	}

	got := SubtractAll(open, mustRange(t, "12:00", "15:00"))
	require.Len(t, got, 2)
	assert.Equal(t, mustRange(t, "09:00", "12:00"), got[0])
	assert.Equal(t, mustRange(t, "15:00", "19:00"), got[1])
}

func TestMergeRanges(t *testing.T) {
	t.Run("overlapping and touching fold together", func(t *testing.T) {
		got := MergeRanges([]TimeRange{
			mustRange(t, "14:00", "16:00"),
			mustRange(t, "09:00", "10:00"),
			mustRange(t, "10:00", "11:00"),
			mustRange(t, "15:00", "17:00"),
		})
		require.Len(t, got, 2)
		assert.Equal(t, mustRange(t, "09:00", "11:00"), got[0])
		assert.Equal(t, mustRange(t, "14:00", "17:00"), got[1])
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		once := MergeRanges([]TimeRange{
			mustRange(t, "09:00", "11:00"),
			mustRange(t, "10:00", "12:00"),
		})
		twice := MergeRanges(once)
		assert.Equal(t, once, twice)
	})

	t.Run("empty and single pass through", func(t *testing.T) {
		assert.Empty(t, MergeRanges(nil))
		single := []TimeRange{mustRange(t, "09:00", "10:00")}
		assert.Equal(t, single, MergeRanges(single))
	})
}

func TestGenerateSlots(t *testing.T) {
	t.Run("slots fit entirely inside the range", func(t *testing.T) {
		got := GenerateSlots([]TimeRange{mustRange(t, "09:00", "12:30")}, 60, 60)
		require.Len(t, got, 3)
		assert.Equal(t, mustRange(t, "09:00", "10:00"), got[0])
		assert.Equal(t, mustRange(t, "10:00", "11:00"), got[1])
		assert.Equal(t, mustRange(t, "11:00", "12:00"), got[2])
	})

	t.Run("stride shorter than duration overlaps slots", func(t *testing.T) {
		got := GenerateSlots([]TimeRange{mustRange(t, "09:00", "10:30")}, 60, 30)
		require.Len(t, got, 2)
		assert.Equal(t, mustRange(t, "09:00", "10:00"), got[0])
		assert.Equal(t, mustRange(t, "09:30", "10:30"), got[1])
	})

	t.Run("range shorter than duration yields nothing", func(t *testing.T) {
		got := GenerateSlots([]TimeRange{mustRange(t, "09:00", "09:45")}, 60, 60)
		assert.Empty(t, got)
	})

	t.Run("invalid parameters yield nothing", func(t *testing.T) {
		ranges := []TimeRange{mustRange(t, "09:00", "12:00")}
		assert.Empty(t, GenerateSlots(ranges, 0, 60))
		assert.Empty(t, GenerateSlots(ranges, 60, 0))
	})
}
