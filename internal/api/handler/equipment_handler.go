package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javfg/indico/internal/dto"
	"github.com/javfg/indico/internal/service"
	"github.com/javfg/indico/pkg/response"
)

// EquipmentHandler 设备种类模块 HTTP 处理器
type EquipmentHandler struct {
	equipmentSvc service.EquipmentService
}

// NewEquipmentHandler 创建 EquipmentHandler
func NewEquipmentHandler(equipmentSvc service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentSvc: equipmentSvc}
}

// ListEquipment 获取地点的设备种类
// GET /api/v1/locations/:id/equipment
// ?names_only=true 时仅返回名称列表
func (h *EquipmentHandler) ListEquipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if c.Query("names_only") == "true" {
		names, err := h.equipmentSvc.ListNames(c.Request.Context(), id)
		if err != nil {
			h.handleEquipmentError(c, err)
			return
		}
		response.OK(c, gin.H{"list": names})
		return
	}

	list, err := h.equipmentSvc.List(c.Request.Context(), id)
	if err != nil {
		h.handleEquipmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetEquipment 按名称查找设备种类（限本地点）
// GET /api/v1/locations/:id/equipment/:name
func (h *EquipmentHandler) GetEquipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	name := c.Param("name")

	eq, err := h.equipmentSvc.GetByName(c.Request.Context(), id, name)
	if err != nil {
		h.handleEquipmentError(c, err)
		return
	}

	response.OK(c, eq)
}

// AddEquipment 添加设备种类（insert-if-absent，响应标明是否新建）
// POST /api/v1/locations/:id/equipment
func (h *EquipmentHandler) AddEquipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.equipmentSvc.Add(c.Request.Context(), id, req.Name)
	if err != nil {
		h.handleEquipmentError(c, err)
		return
	}

	if result.Created {
		response.Created(c, result)
		return
	}
	response.OK(c, result)
}

// RemoveEquipment 删除设备种类（不存在时静默成功）
// DELETE /api/v1/locations/:id/equipment/:name
func (h *EquipmentHandler) RemoveEquipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	name := c.Param("name")

	if err := h.equipmentSvc.Remove(c.Request.Context(), id, name); err != nil {
		h.handleEquipmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleEquipmentError 统一处理设备模块业务错误
func (h *EquipmentHandler) handleEquipmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, 16001, "地点不存在")
	case errors.Is(err, service.ErrEquipmentNotFound):
		response.NotFound(c, 19001, "设备种类不存在")
	default:
		response.InternalError(c)
	}
}
