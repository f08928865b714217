package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

// idParam parses the :id path segment. A non-integer id can never name a
// record, so it reads as not found.
func idParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrNoRecord, "record ids are integers")
	}
	return id, nil
}

// bindBody decodes the raw JSON object so the shape validator can inspect the
// submitted field set.
func bindBody(c *gin.Context) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, appErrors.Clone(appErrors.ErrBadKey, "request body must be a JSON object")
	}
	return body, nil
}
