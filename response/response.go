// Package response 提供统一的 JSON 响应信封：{code, msg, data} 与 {code, msg, detail}。
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/rangequery/xerrors"
)

// HTTPStatusProvider 能够给出 HTTP 状态码的错误。
type HTTPStatusProvider interface {
	HTTPStatus() int
}

// Success 返回 HTTP 200，业务码 0。
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"msg":  "success",
		"data": data,
	})
}

// SuccessWithStatus 以指定状态码返回成功响应。
func SuccessWithStatus(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, gin.H{
		"code": 0,
		"msg":  msg,
		"data": data,
	})
}

// SuccessWithRawData 直接输出 data，不包装信封，用于健康检查等系统接口。
func SuccessWithRawData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error 根据错误类型映射状态码：*xerrors.Error 使用其业务码与 HTTPStatus，其余错误兜底为 500。
func Error(c *gin.Context, err error) {
	if err == nil {
		Success(c, nil)
		return
	}

	var xe *xerrors.Error
	if errors.As(err, &xe) {
		c.JSON(xe.HTTPStatus(), gin.H{
			"code":   xe.Code,
			"msg":    xe.Message,
			"detail": xe.Detail,
		})
		return
	}

	status := http.StatusInternalServerError
	var sp HTTPStatusProvider
	if errors.As(err, &sp) {
		status = sp.HTTPStatus()
	}
	c.JSON(status, gin.H{
		"code":   status,
		"msg":    err.Error(),
		"detail": "",
	})
}

// ErrorWithStatus 以指定状态码、消息与详情返回错误响应。
func ErrorWithStatus(c *gin.Context, status int, msg string, detail string) {
	c.JSON(status, gin.H{
		"code":   status,
		"msg":    msg,
		"detail": detail,
	})
}
