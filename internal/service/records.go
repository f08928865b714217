package service

import (
	"fmt"
	"strconv"

	"github.com/registrar-labs/course-registry-api/internal/models"
	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

// ParsePage interprets the page query argument. An empty value means the
// caller wants the full set; anything else must be an integer >= 1.
func ParsePage(raw string) (int, bool, error) {
	if raw == "" {
		return 0, false, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, appErrors.Clone(appErrors.ErrBadPage, fmt.Sprintf("%q is not an integer page number", raw))
	}
	if page < 1 {
		return 0, false, appErrors.Clone(appErrors.ErrBadPage, fmt.Sprintf("page %d is below 1", page))
	}
	return page, true, nil
}

// paginate slices the projected list to the requested page window. The total
// is counted before slicing; an empty result, paged or not, is NoRecords.
func paginate[T any](items []T, page, pageSize int) ([]T, *models.Pagination, error) {
	total := len(items)

	if page == 0 {
		if total == 0 {
			return nil, nil, appErrors.ErrNoRecords
		}
		return items, &models.Pagination{TotalCount: total}, nil
	}

	low := (page - 1) * pageSize
	high := page * pageSize
	if low >= total {
		return nil, nil, appErrors.Clone(appErrors.ErrNoRecords, fmt.Sprintf("page %d is past the end of the list", page))
	}
	if high > total {
		high = total
	}
	window := items[low:high]
	if len(window) == 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrNoRecords, fmt.Sprintf("page %d is past the end of the list", page))
	}

	return window, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// paginateToData pages the projected list and erases its element type so the
// per-detail branches of a list operation share one return shape.
func paginateToData[T any](items []T, page, pageSize int) (interface{}, *models.Pagination, error) {
	window, pagination, err := paginate(items, page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return window, pagination, nil
}

// stringField extracts a submitted field that must carry a string value.
func stringField(body map[string]interface{}, key string) (string, error) {
	value, ok := body[key].(string)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrBadKey, fmt.Sprintf("field %q must be a string", key))
	}
	return value, nil
}
