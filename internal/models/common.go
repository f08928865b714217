package models

import (
	"fmt"

	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

// Detail selects the projection applied to listed records.
type Detail string

// Supported detail levels.
const (
	DetailFull  Detail = "full"
	DetailShort Detail = "short"
)

// ParseDetail validates a detail query argument, defaulting to full.
func ParseDetail(raw string) (Detail, error) {
	switch raw {
	case "":
		return DetailFull, nil
	case string(DetailFull):
		return DetailFull, nil
	case string(DetailShort):
		return DetailShort, nil
	default:
		return "", appErrors.Clone(appErrors.ErrBadDetail, fmt.Sprintf("%q is not a detail level", raw))
	}
}

// Pagination reports the window applied to a listed result set. TotalCount is
// measured before slicing.
type Pagination struct {
	Page       int `json:"page,omitempty"`
	PageSize   int `json:"page_size,omitempty"`
	TotalCount int `json:"total_count"`
}

// PersonSummary is the related-entity form persons take inside a full course
// projection, and courses' people listings.
type PersonSummary struct {
	UID   int64  `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
