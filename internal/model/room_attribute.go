package model

// RoomAttribute 属性定义表 — 对应 room_attributes
// 按地点划分的命名类型化元数据条目
type RoomAttribute struct {
	ID         uint   `gorm:"primaryKey"                                             json:"id"`
	LocationID uint   `gorm:"not null;index;uniqueIndex:uq_room_attributes_loc_name" json:"location_id"`
	Name       string `gorm:"type:varchar(100);not null;uniqueIndex:uq_room_attributes_loc_name" json:"name"`
	Title      string `gorm:"type:varchar(200);not null;default:''" json:"title"`
	Type       string `gorm:"type:varchar(32);not null;default:'str'" json:"type"`
	IsRequired bool   `gorm:"not null;default:false" json:"is_required"`
	IsHidden   bool   `gorm:"not null;default:false" json:"is_hidden"`

	BaseModel
}

// TableName 指定表名
func (RoomAttribute) TableName() string { return "room_attributes" }
