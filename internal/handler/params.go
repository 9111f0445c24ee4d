package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paginationFromQuery reads page/page_size query parameters, falling back to
// the first page of 50 items.
func paginationFromQuery(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if err != nil || size < 1 || size > 200 {
		size = 50
	}
	return page, size
}
