package domain

import "time"

// ValidityWindow is the period during which a special price may apply.
// The window is INCLUSIVE on both ends: from <= t <= until.
type ValidityWindow struct {
	from  time.Time
	until time.Time
}

// NewValidityWindow creates a window, rejecting one that ends before it starts.
func NewValidityWindow(from, until time.Time) (ValidityWindow, error) {
	if until.Before(from) {
		return ValidityWindow{}, ErrInvalidValidityWindow
	}
	return ValidityWindow{from: from, until: until}, nil
}

// From returns the first instant of the window.
func (w ValidityWindow) From() time.Time { return w.from }

// Until returns the last instant of the window.
func (w ValidityWindow) Until() time.Time { return w.until }

// Contains reports whether t falls inside the window.
func (w ValidityWindow) Contains(t time.Time) bool {
	return !t.Before(w.from) && !t.After(w.until)
}

// ValidityPolicy decides the window given to newly created special prices.
// Calendar arithmetic is used so "12 months" from Feb 29 lands on Mar 1.
type ValidityPolicy struct {
	Years  int
	Months int
	Days   int
}

// DefaultValidityPolicy is one calendar year.
var DefaultValidityPolicy = ValidityPolicy{Years: 1}

// WindowFrom returns the window starting at from.
func (p ValidityPolicy) WindowFrom(from time.Time) ValidityWindow {
	return ValidityWindow{from: from, until: from.AddDate(p.Years, p.Months, p.Days)}
}

// IsZero reports whether the policy would produce an empty window.
func (p ValidityPolicy) IsZero() bool {
	return p.Years == 0 && p.Months == 0 && p.Days == 0
}
