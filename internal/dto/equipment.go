package dto

// ── 设备种类与属性定义 DTO ──

// AddEquipmentRequest 添加设备种类请求
type AddEquipmentRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AddEquipmentResponse 添加结果；Created 指示是否新建了记录
type AddEquipmentResponse struct {
	ID      uint   `json:"id,omitempty"`
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

// EquipmentResponse 设备种类响应
type EquipmentResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CreateAttributeRequest 创建属性定义请求
type CreateAttributeRequest struct {
	Name       string `json:"name"  binding:"required,min=1,max=100"`
	Title      string `json:"title" binding:"omitempty,max=200"`
	Type       string `json:"type"  binding:"omitempty,oneof=str int bool"`
	IsRequired bool   `json:"is_required"`
	IsHidden   bool   `json:"is_hidden"`
}

// AttributeResponse 属性定义响应
type AttributeResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	IsRequired bool   `json:"is_required"`
	IsHidden   bool   `json:"is_hidden"`
}
