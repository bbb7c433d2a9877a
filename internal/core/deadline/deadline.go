// Package deadline contains the pure business logic for intake deadlines:
// budget arithmetic, percentage-of-budget bucketing, and the finish
// categories recorded in the service log. No I/O, only pure functions.
package deadline

import (
	"fmt"
	"time"
)

// Budget is the elapsed-time allowance attached to an intake.
type Budget struct {
	Days    int
	Hours   int
	Minutes int
}

// Duration converts the budget to a time.Duration.
func (b Budget) Duration() time.Duration {
	return time.Duration(b.Days)*24*time.Hour +
		time.Duration(b.Hours)*time.Hour +
		time.Duration(b.Minutes)*time.Minute
}

// IsPositive reports whether the budget allows any time at all.
func (b Budget) IsPositive() bool {
	return b.Duration() > 0
}

// Band is the urgency bucket a running deadline falls into, derived from
// the percentage of budget consumed.
type Band string

const (
	BandOnTime  Band = "on-time" // < 33%
	BandCaution Band = "caution" // [33, 66)
	BandUrgent  Band = "urgent"  // [66, 100)
	BandOverdue Band = "overdue" // >= 100%
)

// Category is the final bucket recorded when a deadline is finished.
// The values are the stored Spanish names.
type Category string

const (
	CategoryEarly  Category = "TEMPRANO" // < 33%
	CategoryNormal Category = "NORMAL"   // [33, 66)
	CategoryUrgent Category = "URGENTE"  // [66, 100)
	CategoryLate   Category = "ATRASADO" // >= 100%
)

// Percent computes the percentage of budget consumed. A non-positive budget
// yields 0 so callers never divide by zero; guards reject such budgets
// before they are ever tracked.
func Percent(elapsed, budget time.Duration) float64 {
	if budget <= 0 {
		return 0
	}
	return elapsed.Seconds() / budget.Seconds() * 100
}

// BandFor maps a consumed percentage to its display band. Boundaries are
// strict: exactly 33 is caution, exactly 66 is urgent, exactly 100 is overdue.
func BandFor(percent float64) Band {
	switch {
	case percent < 33:
		return BandOnTime
	case percent < 66:
		return BandCaution
	case percent < 100:
		return BandUrgent
	default:
		return BandOverdue
	}
}

// CategoryFor maps a final consumed percentage to its finish category,
// using the same strict boundaries as BandFor.
func CategoryFor(percent float64) Category {
	switch {
	case percent < 33:
		return CategoryEarly
	case percent < 66:
		return CategoryNormal
	case percent < 100:
		return CategoryUrgent
	default:
		return CategoryLate
	}
}

// FinishResult captures the outcome of finishing a deadline.
type FinishResult struct {
	Percent  float64
	Category Category
	Overrun  time.Duration // > 0 only when the category is ATRASADO
}

// Finish computes the final percentage, category and overrun for an active
// deadline given its start, budget and the current time.
func Finish(start time.Time, budget time.Duration, now time.Time) FinishResult {
	elapsed := now.Sub(start)
	pct := Percent(elapsed, budget)

	result := FinishResult{
		Percent:  pct,
		Category: CategoryFor(pct),
	}
	if result.Category == CategoryLate {
		result.Overrun = elapsed - budget
	}
	return result
}

// Summary renders the human-readable finish message recorded in the
// service log alongside the category.
func (r FinishResult) Summary() string {
	switch r.Category {
	case CategoryEarly:
		return "El trabajo se completó con tiempo de sobra"
	case CategoryNormal:
		return "El trabajo se completó en tiempo adecuado"
	case CategoryUrgent:
		return "El trabajo se completó justo a tiempo"
	default:
		return fmt.Sprintf("El trabajo se completó con retraso de %s", FormatDuration(r.Overrun))
	}
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanSetDeadline evaluates whether a deadline budget can be attached.
// Rules:
// - The combined budget must be greater than zero
func CanSetDeadline(b Budget) GuardResult {
	if b.Days < 0 || b.Hours < 0 || b.Minutes < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "deadline budget components must not be negative",
		}
	}
	if !b.IsPositive() {
		return GuardResult{
			Allowed: false,
			Reason:  "deadline budget must be greater than zero",
		}
	}
	return GuardResult{Allowed: true}
}

// CanFinishDeadline evaluates whether a deadline can be finished.
// Rules:
// - The intake must have an active deadline
func CanFinishDeadline(intakeID string, active bool) GuardResult {
	if !active {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("intake %s has no active deadline", intakeID),
		}
	}
	return GuardResult{Allowed: true}
}

// FormatDuration renders a duration the way the countdown column shows it:
// days, hours, minutes and seconds, omitting leading zero components.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	default:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
}
