package controller

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
)

// Envelope 目录读取接口统一响应；失败同样返回 200，由 success/error 表示
type Envelope struct {
	Success        bool        `json:"success"`
	Data           interface{} `json:"data"`
	Error          *string     `json:"error"`
	URL            string      `json:"url"`
	ProcessingTime float64     `json:"processing_time"`
}

func NewEnvelope[T any](info catalog_models.PageInfo[T]) Envelope {
	env := Envelope{
		Success:        info.Success(),
		URL:            info.URL,
		ProcessingTime: info.ProcessingTime.Seconds(),
	}
	if info.Err != nil {
		msg := info.Err.Error()
		env.Error = &msg
	}
	// 失败时仍保留部分结果（如远端统计失败时的本地统计）
	if info.Err == nil || !isZero(info.Data) {
		env.Data = info.Data
	}
	return env
}

func PageResponse[T any](ctx *gin.Context, info catalog_models.PageInfo[T]) {
	ctx.JSON(http.StatusOK, NewEnvelope(info))
}

func SuccessResponse(ctx *gin.Context, key string, data interface{}, count int) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			key:     data,
			"count": count,
		},
	})
}

func ErrorResponse(ctx *gin.Context, status int, code string, message string) {
	ctx.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ParseID 路径参数中的目录 id，非正整数时写入 400 并返回 false
func ParseID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(ctx, http.StatusBadRequest, "INVALID_ID", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func isZero(v interface{}) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
