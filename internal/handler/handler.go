package handler

import (
	"path"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/httputil"
)

// ParseID reads a positive integer path parameter. On failure it writes a 400
// and returns false.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid "+name, err))
		return 0, false
	}
	return id, true
}

// Location builds the URL of a resource created under the current request path.
func Location(c *gin.Context, id int64) string {
	return path.Join(c.Request.URL.Path, strconv.FormatInt(id, 10))
}
