package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/rangequery/response"
)

// HTTPErrorHandler 处理器通过 c.Error 登记错误且尚未写响应时，以最后一个错误输出统一错误信封。
func HTTPErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		if last := c.Errors.Last(); last != nil {
			response.Error(c, last.Err)
		}
	}
}
