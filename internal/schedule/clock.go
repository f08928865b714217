package schedule

import (
	"fmt"
	"regexp"
	"strconv"

	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

// clockPattern accepts 24-hour wall-clock strings of the literal HH:MM form.
var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ParseClock converts "HH:MM" to minutes since midnight. The shape is checked
// first, so callers get BAD_TIME for malformed input rather than BAD_INT.
func ParseClock(s string) (int, error) {
	if !clockPattern.MatchString(s) {
		return 0, appErrors.Clone(appErrors.ErrBadTime, fmt.Sprintf("%q is not a valid 24-hour HH:MM time", s))
	}
	return ToMinutes(s)
}

// ToMinutes converts an already HH:MM-shaped string to minutes since midnight.
// Used where the caller has established the shape and only the numeric
// components can still fail.
func ToMinutes(s string) (int, error) {
	if len(s) < 5 {
		return 0, appErrors.Clone(appErrors.ErrBadInt, fmt.Sprintf("%q is too short to hold an HH:MM time", s))
	}
	hours, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrBadInt, fmt.Sprintf("hour component of %q is not an integer", s))
	}
	minutes, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrBadInt, fmt.Sprintf("minute component of %q is not an integer", s))
	}
	return hours*60 + minutes, nil
}

// FormatMinutes renders minutes since midnight back to "HH:MM".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
