// Package handler 将 RangeService 暴露为 HTTP 接口。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/rangequery/response"
	"github.com/wyfcoding/rangequery/segtree"
	"github.com/wyfcoding/rangequery/service"
	"github.com/wyfcoding/rangequery/xerrors"
)

// RangeHandler HTTP 处理器集合。
type RangeHandler struct {
	svc *service.RangeService
}

// NewRangeHandler 创建处理器。
func NewRangeHandler(svc *service.RangeService) *RangeHandler {
	return &RangeHandler{svc: svc}
}

// Register 在 r 上注册 /v1 路由与 /healthz。
func (h *RangeHandler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Health)

	v1 := r.Group("/v1")
	v1.GET("/range/:aggregate", h.QueryRange)
	v1.GET("/summary", h.Summary)
	v1.GET("/values", h.Values)
	v1.PUT("/values/:index", h.Update)
	v1.POST("/rebuild", h.Rebuild)
	v1.GET("/trees/:aggregate", h.Tree)
	v1.GET("/compare", h.Compare)
}

type rangeQuery struct {
	Left  *int `form:"left"  binding:"required"`
	Right *int `form:"right" binding:"required"`
}

type compareQuery struct {
	A *int64 `form:"a" binding:"required"`
	B *int64 `form:"b" binding:"required"`
}

type indexURI struct {
	Index int `uri:"index"`
}

type updateRequest struct {
	Value *int64 `json:"value" binding:"required"`
}

type rebuildRequest struct {
	Values []int64 `json:"values" binding:"required,min=1"`
}

func badRequest(c *gin.Context, err error) {
	response.Error(c, xerrors.InvalidParams(err))
}

func (h *RangeHandler) Health(c *gin.Context) {
	response.SuccessWithRawData(c, gin.H{
		"status":         "ok",
		"size":           h.svc.Size(),
		"representation": h.svc.Representation().String(),
	})
}

// QueryRange GET /v1/range/:aggregate?left=&right=
func (h *RangeHandler) QueryRange(c *gin.Context) {
	kind, err := segtree.ParseKind(c.Param("aggregate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	v, err := h.svc.Query(c.Request.Context(), kind, *q.Left, *q.Right)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"aggregate": kind.String(),
		"left":      *q.Left,
		"right":     *q.Right,
		"value":     v,
	})
}

// Summary GET /v1/summary?left=&right=
func (h *RangeHandler) Summary(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.svc.Summary(c.Request.Context(), *q.Left, *q.Right)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"min": s.Min, "max": s.Max, "sum": s.Sum})
}

// Values GET /v1/values
func (h *RangeHandler) Values(c *gin.Context) {
	values := h.svc.Values(c.Request.Context())
	response.Success(c, gin.H{"size": len(values), "values": values})
}

// Update PUT /v1/values/:index
func (h *RangeHandler) Update(c *gin.Context) {
	var uri indexURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.Update(c.Request.Context(), uri.Index, *req.Value); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"index": uri.Index, "value": *req.Value})
}

// Rebuild POST /v1/rebuild
func (h *RangeHandler) Rebuild(c *gin.Context) {
	var req rebuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.Rebuild(c.Request.Context(), req.Values); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithStatus(c, http.StatusOK, "rebuilt", gin.H{"size": len(req.Values)})
}

// Tree GET /v1/trees/:aggregate
func (h *RangeHandler) Tree(c *gin.Context) {
	kind, err := segtree.ParseKind(c.Param("aggregate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	str, err := h.svc.TreeString(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"aggregate":      kind.String(),
		"representation": h.svc.Representation().String(),
		"tree":           str,
	})
}

// Compare GET /v1/compare?a=&b=
func (h *RangeHandler) Compare(c *gin.Context) {
	var q compareQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	response.Success(c, gin.H{"a": *q.A, "b": *q.B, "result": h.svc.Compare(*q.A, *q.B)})
}
