package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/examsync/examsync-api/pkg/errors"
	"github.com/examsync/examsync-api/pkg/response"
)

// pathID parses a numeric path parameter, responding with a validation error
// when it is malformed. Callers must return immediately when ok is false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}

// queryInt64 parses an optional numeric query parameter, returning nil when
// absent or malformed.
func queryInt64(c *gin.Context, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// pageParams reads page and limit query parameters. Repositories clamp the
// values, so malformed input just falls back to the defaults.
func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, size
}

// queryBool parses an optional boolean query parameter.
func queryBool(c *gin.Context, name string) *bool {
	switch c.Query(name) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}
