// Package schedule holds the time codec, the course time-window rules and the
// per-person duplicate/conflict gate that guards link creation.
package schedule

import (
	"fmt"

	"github.com/registrar-labs/course-registry-api/pkg/config"
	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

// Window is a course time interval in minutes since midnight.
type Window struct {
	Start int
	End   int
}

// Duration returns the window length in minutes.
func (w Window) Duration() int {
	return w.End - w.Start
}

// CourseWindow pairs a window with the course that owns it, for conflict
// checks against a person's existing links.
type CourseWindow struct {
	CourseID int64
	Window
}

// Bounds restricts course windows to the school day.
type Bounds struct {
	MinStart  int
	MaxEnd    int
	MinLength int
	MaxLength int
}

// BoundsFromConfig copies the configured schedule limits.
func BoundsFromConfig(cfg config.ScheduleConfig) Bounds {
	return Bounds{
		MinStart:  cfg.MinStart,
		MaxEnd:    cfg.MaxEnd,
		MinLength: cfg.MinLength,
		MaxLength: cfg.MaxLength,
	}
}

// Validate checks a candidate window against the bounds. The check depends
// only on the window itself, never on other records.
func (b Bounds) Validate(w Window) error {
	duration := w.Duration()
	if duration < 1 || duration < b.MinLength || duration > b.MaxLength ||
		w.Start < b.MinStart || w.End > b.MaxEnd {
		return appErrors.Clone(appErrors.ErrInvalidTime, fmt.Sprintf(
			"course must run %d-%d minutes between %s and %s",
			b.MinLength, b.MaxLength, FormatMinutes(b.MinStart), FormatMinutes(b.MaxEnd)))
	}
	return nil
}

// CheckLinks rejects a candidate link when the person is already linked to the
// same course, or when the candidate window starts or ends strictly inside an
// existing window. The comparison is intentionally endpoint-only: a candidate
// identical to or fully containing an existing window passes, and day-of-week
// is not consulted.
func CheckLinks(candidateCourse int64, candidate Window, existing []CourseWindow) error {
	for _, link := range existing {
		if link.CourseID == candidateCourse {
			return appErrors.ErrDuplicate
		}
		if (candidate.Start > link.Start && candidate.Start < link.End) ||
			(candidate.End > link.Start && candidate.End < link.End) {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf(
				"the course overlaps the person's %s-%s course",
				FormatMinutes(link.Start), FormatMinutes(link.End)))
		}
	}
	return nil
}
