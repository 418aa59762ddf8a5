package domain

import (
	"fmt"
	"sort"

	"github.com/roccadavide/beauty-room-sub000/pkg/types"
)

// TimeRange is a half-open interval [Start, End) of local time of day.
// Half-open semantics let adjacent ranges abut without overlapping.
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeRange builds a validated range. Start must be strictly before End.
func NewTimeRange(start, end types.TimeString) (TimeRange, error) {
	if err := start.Validate(); err != nil {
		return TimeRange{}, err
	}
	if err := end.Validate(); err != nil {
		return TimeRange{}, err
	}
	if !start.IsBefore(end) {
		return TimeRange{}, fmt.Errorf("%w: %s >= %s", ErrInvalidTimeRange, start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

// DurationMinutes returns the length of the range in minutes.
func (r TimeRange) DurationMinutes() int {
	return r.End.Minutes() - r.Start.Minutes()
}

// Overlaps reports whether r and other share at least one minute.
// Touching ranges ([9:00,10:00) and [10:00,11:00)) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// Subtract removes cut from r, returning the 0, 1 or 2 remaining pieces.
func (r TimeRange) Subtract(cut TimeRange) []TimeRange {
	if !r.Overlaps(cut) {
		return []TimeRange{r}
	}

	remainders := make([]TimeRange, 0, 2)
	if cut.Start.IsAfter(r.Start) {
		remainders = append(remainders, TimeRange{Start: r.Start, End: cut.Start})
	}
	if cut.End.IsBefore(r.End) {
		remainders = append(remainders, TimeRange{Start: cut.End, End: r.End})
	}
	return remainders
}

// SubtractAll removes cut from every range in the list and returns the
// merged remainder.
func SubtractAll(ranges []TimeRange, cut TimeRange) []TimeRange {
	result := make([]TimeRange, 0, len(ranges)+1)
	for _, r := range ranges {
		result = append(result, r.Subtract(cut)...)
	}
	return MergeRanges(result)
}

// MergeRanges sorts the ranges by start and folds overlapping or touching
// neighbours into single ranges. The result contains no two ranges that
// overlap or touch.
func MergeRanges(ranges []TimeRange) []TimeRange {
	if len(ranges) <= 1 {
		return append([]TimeRange(nil), ranges...)
	}

	sorted := append([]TimeRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Minutes() < sorted[j].Start.Minutes()
	})

	merged := []TimeRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Start.Minutes() <= last.End.Minutes() {
			if r.End.Minutes() > last.End.Minutes() {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// GenerateSlots emits fixed-length slots over the given ranges. Within each
// range the cursor starts at the range start and advances by stride; a slot
// is emitted only while it fits entirely inside the range. A range shorter
// than the duration yields no slots.
func GenerateSlots(ranges []TimeRange, durationMinutes, strideMinutes int) []TimeRange {
	if durationMinutes <= 0 || strideMinutes <= 0 {
		return []TimeRange{}
	}

	slots := make([]TimeRange, 0)
	for _, r := range ranges {
		for cursor := r.Start.Minutes(); cursor+durationMinutes <= r.End.Minutes(); cursor += strideMinutes {
			slots = append(slots, TimeRange{
				Start: timeFromMinutes(cursor),
				End:   timeFromMinutes(cursor + durationMinutes),
			})
		}
	}
	return slots
}

// timeFromMinutes converts minutes since midnight to a TimeString. Callers
// guarantee the value stays within a single day.
func timeFromMinutes(minutes int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}
