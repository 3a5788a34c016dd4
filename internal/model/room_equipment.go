package model

// EquipmentVideoConference 楼栋聚合按此设备名过滤候选房间
const EquipmentVideoConference = "Video conference"

// RoomEquipment 设备种类表 — 对应 room_equipment
// 设备种类按地点划分，名称在同一地点内唯一；房间通过关联表引用设备种类
// 地点删除时随删除事务一并清除（关联关系不做 DB 级联，见迁移脚本）
type RoomEquipment struct {
	ID         uint   `gorm:"primaryKey"                                              json:"id"`
	LocationID uint   `gorm:"not null;index;uniqueIndex:uq_room_equipment_loc_name"   json:"location_id"`
	Name       string `gorm:"type:varchar(100);not null;uniqueIndex:uq_room_equipment_loc_name" json:"name"`

	BaseModel
}

// TableName 指定表名
func (RoomEquipment) TableName() string { return "room_equipment" }
