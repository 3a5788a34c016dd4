package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javfg/indico/internal/dto"
	"github.com/javfg/indico/internal/service"
	"github.com/javfg/indico/pkg/response"
)

// AspectHandler 地图视角模块 HTTP 处理器
type AspectHandler struct {
	aspectSvc service.AspectService
}

// NewAspectHandler 创建 AspectHandler
func NewAspectHandler(aspectSvc service.AspectService) *AspectHandler {
	return &AspectHandler{aspectSvc: aspectSvc}
}

// ListAspects 获取地点的视角列表
// GET /api/v1/locations/:id/aspects
func (h *AspectHandler) ListAspects(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	aspects, err := h.aspectSvc.List(c.Request.Context(), id)
	if err != nil {
		h.handleAspectError(c, err)
		return
	}

	response.OK(c, gin.H{"list": aspects})
}

// GetAspect 获取视角详情
// GET /api/v1/locations/:id/aspects/:aspect_id
func (h *AspectHandler) GetAspect(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	aspectID, ok := parseIDParam(c, "aspect_id")
	if !ok {
		return
	}

	aspect, err := h.aspectSvc.GetByID(c.Request.Context(), id, aspectID)
	if err != nil {
		h.handleAspectError(c, err)
		return
	}

	response.OK(c, aspect)
}

// AddAspect 为地点追加视角
// POST /api/v1/locations/:id/aspects
func (h *AspectHandler) AddAspect(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateAspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	aspect, err := h.aspectSvc.Add(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAspectError(c, err)
		return
	}

	response.Created(c, aspect)
}

// RemoveAspect 摘除并删除视角
// DELETE /api/v1/locations/:id/aspects/:aspect_id
func (h *AspectHandler) RemoveAspect(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	aspectID, ok := parseIDParam(c, "aspect_id")
	if !ok {
		return
	}

	if err := h.aspectSvc.Remove(c.Request.Context(), id, aspectID); err != nil {
		h.handleAspectError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetDefaultAspect 获取地点默认视角
// GET /api/v1/locations/:id/aspects/default
func (h *AspectHandler) GetDefaultAspect(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	aspect, err := h.aspectSvc.GetDefault(c.Request.Context(), id)
	if err != nil {
		h.handleAspectError(c, err)
		return
	}

	response.OK(c, aspect)
}

// SetDefaultAspect 设置地点默认视角（仅接受本地点的视角）
// PUT /api/v1/locations/:id/aspects/:aspect_id/default
func (h *AspectHandler) SetDefaultAspect(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	aspectID, ok := parseIDParam(c, "aspect_id")
	if !ok {
		return
	}

	if err := h.aspectSvc.SetDefault(c.Request.Context(), id, aspectID); err != nil {
		h.handleAspectError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetMapAvailability 地图可用性（存在至少一个视角）
// GET /api/v1/locations/:id/map-availability
func (h *AspectHandler) GetMapAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	available, err := h.aspectSvc.IsMapAvailable(c.Request.Context(), id)
	if err != nil {
		h.handleAspectError(c, err)
		return
	}

	response.OK(c, dto.MapAvailabilityResponse{Available: available})
}

// handleAspectError 统一处理视角模块业务错误
func (h *AspectHandler) handleAspectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, 16001, "地点不存在")
	case errors.Is(err, service.ErrAspectNotFound):
		response.NotFound(c, 17001, "视角不存在")
	case errors.Is(err, service.ErrNoDefaultAspect):
		response.NotFound(c, 17002, "尚未设置默认视角")
	case errors.Is(err, service.ErrAspectNotOwned):
		response.UnprocessableEntity(c, 17003, "视角不属于该地点")
	default:
		response.InternalError(c)
	}
}
