package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/safety-storefront/app/responses"
)

// WeakETag ETag yếu từ nội dung response
func WeakETag(body []byte) string {
	return fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(body))
}

// respondCached trả JSON kèm ETag; If-None-Match khớp thì trả 304 không body
func respondCached(c *gin.Context, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   responses.CodeInternal,
			Message: "Lỗi encode response",
		})
		return
	}

	tag := WeakETag(data)
	c.Header("ETag", tag)
	c.Header("Cache-Control", "no-cache")

	if etagMatches(c.GetHeader("If-None-Match"), tag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func etagMatches(header, tag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == tag || "W/"+candidate == tag {
			return true
		}
	}
	return false
}
