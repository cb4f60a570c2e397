package models

const (
	MinSlotsPerDay     = 2
	MaxSlotsPerDay     = 6
	DefaultSlotsPerDay = 5
)

// ClampSlotsPerDay clamps a slot count to the supported range.
// Out-of-range values are clamped silently, never rejected.
func ClampSlotsPerDay(count int) int {
	if count < MinSlotsPerDay {
		return MinSlotsPerDay
	}
	if count > MaxSlotsPerDay {
		return MaxSlotsPerDay
	}
	return count
}
