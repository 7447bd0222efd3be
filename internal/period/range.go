package period

import (
	"fmt"
	"time"
)

// Bounds is a requested date window. Interpretation of End depends on the
// BoundaryMode in force at the call site.
type Bounds struct {
	Start time.Time
	End   time.Time
}

// BoundaryMode selects how the End bound of a window is treated.
//
// Consumers disagree on whether End is the first excluded month or the last
// included date, so the policy travels with each request instead of being
// silently standardized; ExcludeEnd is the production default.
type BoundaryMode int

const (
	// ExcludeEnd treats End as the first excluded month: start <= d < end.
	// "Through December 2024" therefore needs End = 2025-01-01.
	ExcludeEnd BoundaryMode = iota
	// IncludeEnd treats End as the last included date: start <= d <= end.
	IncludeEnd
)

func (m BoundaryMode) String() string {
	switch m {
	case ExcludeEnd:
		return "exclusive"
	case IncludeEnd:
		return "inclusive"
	default:
		return fmt.Sprintf("BoundaryMode(%d)", int(m))
	}
}

// ParseBoundaryMode maps a wire/config value to a BoundaryMode. The empty
// string selects the production default.
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch s {
	case "", "exclusive":
		return ExcludeEnd, nil
	case "inclusive":
		return IncludeEnd, nil
	default:
		return ExcludeEnd, fmt.Errorf("unknown boundary mode %q", s)
	}
}

// InRange reports whether d falls inside b under the given mode.
func InRange(d time.Time, b Bounds, mode BoundaryMode) bool {
	if d.Before(b.Start) {
		return false
	}
	if mode == IncludeEnd {
		return !d.After(b.End)
	}
	return d.Before(b.End)
}
