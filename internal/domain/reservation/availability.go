package reservation

import (
	"car-rental-platform/internal/domain/daterange"
)

// Interval is the part of an existing reservation that matters for availability.
type Interval struct {
	Range  daterange.DateRange
	Status Status
}

// AvailabilityPolicy decides how boundary days are treated.
// With AllowSameDayTurnover, a pickup on another rental's return day (or the reverse) is not a conflict.
type AvailabilityPolicy struct {
	AllowSameDayTurnover bool
}

// IsAvailable reports whether candidate is free of every blocking interval.
// Ranges are closed, so by default sharing a single boundary day is a conflict.
func (p AvailabilityPolicy) IsAvailable(candidate daterange.DateRange, existing []Interval) bool {
	for _, iv := range existing {
		if !iv.Status.Blocks() {
			continue
		}
		if p.conflicts(candidate, iv.Range) {
			return false
		}
	}
	return true
}

// Conflicts returns the blocking intervals that overlap candidate.
func (p AvailabilityPolicy) Conflicts(candidate daterange.DateRange, existing []Interval) []Interval {
	var out []Interval
	for _, iv := range existing {
		if iv.Status.Blocks() && p.conflicts(candidate, iv.Range) {
			out = append(out, iv)
		}
	}
	return out
}

func (p AvailabilityPolicy) conflicts(candidate, existing daterange.DateRange) bool {
	overlap := existing.Contains(candidate.Start()) ||
		existing.Contains(candidate.End()) ||
		candidate.Covers(existing)
	if !overlap {
		return false
	}
	if !p.AllowSameDayTurnover {
		return true
	}
	// Only a shared handover day between two multi-day rentals is forgiven.
	touching := candidate.Start() == existing.End() || candidate.End() == existing.Start()
	return !(touching && candidate.Days() > 1 && existing.Days() > 1)
}

// IsAvailable applies the default closed-interval policy.
func IsAvailable(candidate daterange.DateRange, existing []Interval) bool {
	return AvailabilityPolicy{}.IsAvailable(candidate, existing)
}
