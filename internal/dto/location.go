package dto

// ── 地点模块 DTO ──

// CreateLocationRequest 创建地点请求
type CreateLocationRequest struct {
	Name          string   `json:"name"           binding:"required,min=1,max=100"`
	SupportEmails []string `json:"support_emails" binding:"omitempty"`
	IsDefault     bool     `json:"is_default"`
}

// UpdateLocationRequest 更新地点请求
type UpdateLocationRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

// LocationResponse 地点信息响应
type LocationResponse struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	SupportEmails   []string `json:"support_emails"`
	IsDefault       bool     `json:"is_default"`
	DefaultAspectID *uint    `json:"default_aspect_id,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// ── 支持邮箱 DTO ──

// SetSupportEmailsRequest 整体设置支持邮箱
// Emails 与 Raw 二选一：列表以逗号串入库，原始串原样入库
type SetSupportEmailsRequest struct {
	Emails *[]string `json:"emails"`
	Raw    *string   `json:"raw"`
}

// ModifySupportEmailsRequest 增量添加/移除支持邮箱
// 邮箱格式不在此校验，由调用方保证
type ModifySupportEmailsRequest struct {
	Emails []string `json:"emails" binding:"required,min=1"`
}

// SupportEmailsResponse 支持邮箱两种形态
// 未设置时 Emails 为空列表、Raw 为空串
type SupportEmailsResponse struct {
	Emails []string `json:"emails"`
	Raw    string   `json:"raw"`
}
