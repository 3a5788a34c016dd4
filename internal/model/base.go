package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
// 地点及其子实体采用硬删除（级联删除需对外可见），故不嵌入软删除字段
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
