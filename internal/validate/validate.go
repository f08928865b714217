// Package validate implements the field-level format checks applied to
// submitted person and course values.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

var (
	phoneDashed = regexp.MustCompile(`^[0-9]{3}-[0-9]{3}-[0-9]{4}$`)
	phoneBare   = regexp.MustCompile(`^[0-9]{10}$`)
	emailShape  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)*\.[a-zA-Z]{2,7}$`)
)

// Phone accepts NNN-NNN-NNNN or ten bare digits and normalizes to the
// bare-digit form.
func Phone(s string) (string, error) {
	switch {
	case phoneBare.MatchString(s):
		return s, nil
	case phoneDashed.MatchString(s):
		return strings.ReplaceAll(s, "-", ""), nil
	default:
		return "", appErrors.Clone(appErrors.ErrBadPhone, fmt.Sprintf("%q is not an accepted phone number", s))
	}
}

// Email applies a conservative address check (single @, dotted domain, 2-7
// letter TLD) and normalizes to lowercase.
func Email(s string) (string, error) {
	if !emailShape.MatchString(s) || strings.Count(s, "@") != 1 {
		return "", appErrors.Clone(appErrors.ErrBadEmail, fmt.Sprintf("%q is not a valid email address", s))
	}
	return strings.ToLower(s), nil
}

// Days checks a submitted day value against the allowed weekday names and
// canonicalizes each entry to the configured spelling. The value must be a
// list, every member must match an allowed day case-insensitively, and no day
// may appear twice.
func Days(raw interface{}, allowed []string) ([]string, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrDayList, "days must be a list of weekday names")
	}
	if len(list) == 0 {
		return nil, appErrors.Clone(appErrors.ErrDayList, "days must not be empty")
	}

	canonical := make(map[string]string, len(allowed))
	for _, day := range allowed {
		canonical[strings.ToLower(day)] = day
	}

	seen := make(map[string]struct{}, len(list))
	days := make([]string, 0, len(list))
	for _, entry := range list {
		name, ok := entry.(string)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrDayList, "days must contain only strings")
		}
		key := strings.ToLower(name)
		day, ok := canonical[key]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrBadDay, fmt.Sprintf("%q is not an allowed weekday", name))
		}
		if _, dup := seen[key]; dup {
			return nil, appErrors.Clone(appErrors.ErrDupDay, fmt.Sprintf("%q is listed more than once", name))
		}
		seen[key] = struct{}{}
		days = append(days, day)
	}
	return days, nil
}
