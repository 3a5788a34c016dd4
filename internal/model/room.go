package model

// Room 房间表 — 对应 rooms
// 每个房间属于唯一地点，带楼栋号与展示用经纬度
// 经纬度为字符串且非 NULL：未设置时为空串，聚合查询据此判断"无坐标"
type Room struct {
	ID         uint `gorm:"primaryKey"     json:"id"`
	LocationID uint `gorm:"not null;index" json:"location_id"`

	Name      string `gorm:"type:varchar(100);not null"           json:"name"`
	Building  string `gorm:"type:varchar(32);not null;index"      json:"building"`
	Floor     string `gorm:"type:varchar(16);not null;default:''" json:"floor"`
	Number    string `gorm:"type:varchar(16);not null;default:''" json:"number"`
	Longitude string `gorm:"type:varchar(32);not null;default:''" json:"longitude"`
	Latitude  string `gorm:"type:varchar(32);not null;default:''" json:"latitude"`
	Capacity  int    `gorm:"not null;default:0"                   json:"capacity"`

	Equipment []RoomEquipment `gorm:"many2many:room_equipment_rooms" json:"equipment,omitempty"`

	BaseModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }

// HasGeoData 房间是否带完整坐标对
func (r *Room) HasGeoData() bool {
	return r.Longitude != "" && r.Latitude != ""
}
